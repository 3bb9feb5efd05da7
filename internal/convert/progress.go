package convert

import (
	"bufio"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Progress is a point-in-time report from a running conversion.
type Progress struct {
	JobID    string
	OutTime  time.Duration // position reached in the output
	Duration time.Duration // input duration, 0 if unknown
	Speed    float64       // multiple of realtime, 0 if unknown
	Done     bool          // ffmpeg reported progress=end
}

// Fraction returns completion in [0,1], or 0 when the duration is unknown.
func (p Progress) Fraction() float64 {
	if p.Done {
		return 1
	}
	if p.Duration <= 0 {
		return 0
	}
	return min(float64(p.OutTime)/float64(p.Duration), 1)
}

// scanProgress reads ffmpeg -progress key=value blocks from r and calls
// emit at the end of each block. It returns when r is exhausted.
func scanProgress(r io.Reader, emit func(Progress)) {
	var p Progress
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		key, value, ok := strings.Cut(strings.TrimSpace(sc.Text()), "=")
		if !ok {
			continue
		}
		switch key {
		case "out_time_us", "out_time_ms":
			// both keys are microseconds in ffmpeg output
			if us, err := strconv.ParseInt(value, 10, 64); err == nil && us >= 0 {
				p.OutTime = time.Duration(us) * time.Microsecond
			}
		case "speed":
			if s, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(value), "x"), 64); err == nil {
				p.Speed = s
			}
		case "progress":
			p.Done = value == "end"
			emit(p)
		}
	}
}

var durationPattern = regexp.MustCompile(`Duration:\s*(\d+):(\d{2}):(\d{2}(?:\.\d+)?)`)

// parseDuration extracts the input duration from an ffmpeg log line.
func parseDuration(line string) (time.Duration, bool) {
	m := durationPattern.FindStringSubmatch(line)
	if m == nil {
		return 0, false
	}
	h, _ := strconv.Atoi(m[1])
	mins, _ := strconv.Atoi(m[2])
	secs, err := strconv.ParseFloat(m[3], 64)
	if err != nil {
		return 0, false
	}
	d := time.Duration(h)*time.Hour + time.Duration(mins)*time.Minute +
		time.Duration(secs*float64(time.Second))
	return d, true
}
