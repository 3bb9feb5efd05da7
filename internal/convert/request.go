package convert

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
)

// ErrInvalidRequest wraps every request validation failure.
var ErrInvalidRequest = errors.New("invalid conversion request")

// Kind selects what a conversion does.
type Kind string

const (
	KindAudio  Kind = "audio"  // extract the audio track
	KindResize Kind = "resize" // rescale the video to a preset height
	KindRotate Kind = "rotate" // rotate the video
)

// Kinds lists the supported kinds.
var Kinds = []Kind{KindAudio, KindResize, KindRotate}

// ParseKind parses a kind name.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if !slices.Contains(Kinds, k) {
		return "", fmt.Errorf("%w: unknown kind %q", ErrInvalidRequest, s)
	}
	return k, nil
}

// Resolution presets map a name to an output height.
var resolutions = map[string]int{
	"360p":  360,
	"480p":  480,
	"720p":  720,
	"1080p": 1080,
	"1440p": 1440,
	"2160p": 2160,
}

// Resolutions returns the preset names from lowest to highest.
func Resolutions() []string {
	names := make([]string, 0, len(resolutions))
	for name := range resolutions {
		names = append(names, name)
	}
	slices.SortFunc(names, func(a, b string) int { return resolutions[a] - resolutions[b] })
	return names
}

// transpose filters for each supported clockwise rotation.
var rotations = map[int]string{
	90:  "transpose=1",
	180: "transpose=1,transpose=1",
	270: "transpose=2",
}

// audioCodecs picks the encoder from the destination extension.
var audioCodecs = map[string]string{
	".mp3":  "libmp3lame",
	".m4a":  "aac",
	".aac":  "aac",
	".ogg":  "libvorbis",
	".opus": "libopus",
	".flac": "flac",
	".wav":  "pcm_s16le",
}

// lossless codecs take no bitrate.
var lossless = map[string]bool{"flac": true, "pcm_s16le": true}

var bitratePattern = regexp.MustCompile(`^[1-9][0-9]*[kKmM]?$`)

const (
	DefaultAudioBitrate = "192k"
	DefaultVideoBitrate = "2M"
)

// Request describes one conversion.
type Request struct {
	// ID identifies the job. Empty means one is generated.
	ID   string
	Kind Kind
	Src  string
	Dst  string

	// Bitrate is an ffmpeg bitrate ("192k", "4M"). Audio conversions use it
	// for the audio stream, resizes for the video stream. Empty means the
	// kind's default.
	Bitrate string
	// Resolution is a preset name used by KindResize.
	Resolution string
	// Rotate is the clockwise angle used by KindRotate.
	Rotate int
}

// Validate checks the request against the filesystem and its kind.
func (r Request) Validate() error {
	if r.Src == "" || r.Dst == "" {
		return fmt.Errorf("%w: source and destination are required", ErrInvalidRequest)
	}
	info, err := os.Stat(r.Src)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", ErrInvalidRequest, r.Src)
	}
	if samePath(r.Src, r.Dst) {
		return fmt.Errorf("%w: destination is the source file", ErrInvalidRequest)
	}
	if r.Bitrate != "" && !bitratePattern.MatchString(r.Bitrate) {
		return fmt.Errorf("%w: bad bitrate %q", ErrInvalidRequest, r.Bitrate)
	}

	switch r.Kind {
	case KindAudio:
		if _, ok := audioCodecs[strings.ToLower(filepath.Ext(r.Dst))]; !ok {
			return fmt.Errorf("%w: unsupported audio format %q", ErrInvalidRequest, filepath.Ext(r.Dst))
		}
	case KindResize:
		if _, ok := resolutions[r.Resolution]; !ok {
			return fmt.Errorf("%w: unknown resolution %q", ErrInvalidRequest, r.Resolution)
		}
	case KindRotate:
		if _, ok := rotations[r.Rotate]; !ok {
			return fmt.Errorf("%w: rotation must be 90, 180 or 270", ErrInvalidRequest)
		}
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidRequest, r.Kind)
	}
	return nil
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}

// Label is a short description for progress displays.
func (r Request) Label() string {
	name := filepath.Base(r.Src)
	switch r.Kind {
	case KindAudio:
		return fmt.Sprintf("%s → %s audio", name, strings.TrimPrefix(filepath.Ext(r.Dst), "."))
	case KindResize:
		return fmt.Sprintf("%s → %s", name, r.Resolution)
	case KindRotate:
		return fmt.Sprintf("%s ↻ %d°", name, r.Rotate)
	default:
		return name
	}
}

const (
	overwriteArg = "-y"
	hideBanner   = "-hide_banner"
	noStatsArg   = "-nostats"
	progressArg  = "-progress"
	progressPipe = "pipe:1"
	inputArg     = "-i"
)

// args builds the ffmpeg arguments for a validated request writing to out.
func (r Request) args(out string) []string {
	args := []string{hideBanner, noStatsArg, overwriteArg, progressArg, progressPipe, inputArg, r.Src}

	switch r.Kind {
	case KindAudio:
		codec := audioCodecs[strings.ToLower(filepath.Ext(r.Dst))]
		args = append(args, "-vn", "-codec:a", codec, "-map_metadata", "0")
		if !lossless[codec] {
			args = append(args, "-b:a", orDefault(r.Bitrate, DefaultAudioBitrate))
		}
	case KindResize:
		// -2 keeps the aspect ratio with an even width
		args = append(args,
			"-vf", fmt.Sprintf("scale=-2:%d", resolutions[r.Resolution]),
			"-b:v", orDefault(r.Bitrate, DefaultVideoBitrate),
			"-codec:a", "copy",
		)
	case KindRotate:
		args = append(args,
			"-vf", rotations[r.Rotate],
			"-codec:a", "copy",
			"-metadata:s:v", "rotate=0",
		)
	}

	return append(args, out)
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
