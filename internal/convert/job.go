package convert

import (
	"fmt"
	"sync"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/llehouerou/reel/internal/ui/jobbar"
)

// Job tracks the progress of one conversion for display.
type Job struct {
	mu   sync.Mutex
	bar  *jobbar.Job
	req  Request
	err  error
	last Progress
}

// NewJob creates a job for req, assigning it an id if it has none.
func NewJob(req Request) *Job {
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	return &Job{
		bar: &jobbar.Job{
			ID:    req.ID,
			Label: req.Label(),
		},
		req: req,
	}
}

// ID returns the job id.
func (j *Job) ID() string {
	return j.req.ID
}

// Request returns the request with its id set.
func (j *Job) Request() Request {
	return j.req
}

// JobBar returns a copy of the display record.
func (j *Job) JobBar() jobbar.Job {
	j.mu.Lock()
	defer j.mu.Unlock()
	return *j.bar
}

// Update records a progress report.
func (j *Job) Update(p Progress) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.last = p
	if p.Duration > 0 {
		j.bar.Total = 100
		j.bar.Current = int(p.Fraction() * 100)
	}
	if p.Speed > 0 {
		j.bar.Detail = fmt.Sprintf("%s %.1fx", formatClock(p.OutTime.Seconds()), p.Speed)
	} else {
		j.bar.Detail = formatClock(p.OutTime.Seconds())
	}
}

// Last returns the latest progress report.
func (j *Job) Last() Progress {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.last
}

// Complete marks the job as done with the conversion outcome.
func (j *Job) Complete(res Result, err error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.err = err
	j.bar.Done = true
	switch {
	case err == nil:
		j.bar.Label = fmt.Sprintf("Converted %s (%s)", j.req.Label(), humanize.Bytes(uint64(max(res.Size, 0))))
	case isCanceled(err):
		j.bar.Label = "Conversion canceled"
	default:
		j.bar.Label = "Conversion failed: " + j.req.Label()
	}
}

// Err returns the conversion error once the job is complete.
func (j *Job) Err() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.err
}

func formatClock(secs float64) string {
	total := int(secs)
	h, m, s := total/3600, (total/60)%60, total%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
