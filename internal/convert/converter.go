// Package convert wraps ffmpeg to extract audio, resize and rotate media files.
package convert

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrBusy is returned when a conversion is already running.
	ErrBusy = errors.New("a conversion is already running")
	// ErrCanceled is returned when a conversion was canceled.
	ErrCanceled = errors.New("conversion canceled")
)

const (
	defaultFFmpeg = "ffmpeg"
	stderrTail    = 8
	killGrace     = 2 * time.Second
)

// Result describes a finished conversion.
type Result struct {
	JobID   string
	Dst     string
	Size    int64
	Elapsed time.Duration
}

// Converter runs at most one ffmpeg process at a time.
type Converter struct {
	ffmpeg string
	logger *slog.Logger

	mu     sync.Mutex
	busy   bool
	jobID  string
	cancel context.CancelFunc
}

// Option configures a Converter.
type Option func(*Converter)

// WithFFmpeg sets the ffmpeg binary. Empty keeps the default from PATH.
func WithFFmpeg(path string) Option {
	return func(c *Converter) {
		if path != "" {
			c.ffmpeg = path
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Converter) { c.logger = l }
}

// NewConverter creates a Converter.
func NewConverter(opts ...Option) *Converter {
	c := &Converter{ffmpeg: defaultFFmpeg, logger: slog.Default()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Busy reports whether a conversion is running.
func (c *Converter) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.busy
}

// Cancel kills the running conversion. It returns false if none is running.
func (c *Converter) Cancel() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.busy {
		return false
	}
	c.logger.Info("canceling conversion", "job", c.jobID)
	c.cancel()
	return true
}

func (c *Converter) acquire(ctx context.Context, id string) (context.Context, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.busy {
		return nil, ErrBusy
	}
	ctx, cancel := context.WithCancel(ctx)
	c.busy = true
	c.jobID = id
	c.cancel = cancel
	return ctx, nil
}

func (c *Converter) release() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancel()
	c.busy = false
	c.jobID = ""
	c.cancel = nil
}

// Convert runs req and blocks until ffmpeg exits. progress, if non-nil, is
// called from the calling goroutine for each ffmpeg progress block.
// ffmpeg writes to a temporary file next to the destination, which is
// renamed onto it on success and removed on failure or cancellation. An
// existing destination is only replaced by a finished conversion.
func (c *Converter) Convert(ctx context.Context, req Request, progress func(Progress)) (Result, error) {
	if err := req.Validate(); err != nil {
		return Result{}, err
	}
	id := req.ID
	if id == "" {
		id = uuid.NewString()
	}

	ctx, err := c.acquire(ctx, id)
	if err != nil {
		return Result{}, err
	}
	defer c.release()

	if err := os.MkdirAll(filepath.Dir(req.Dst), 0o755); err != nil {
		return Result{}, fmt.Errorf("create directory: %w", err)
	}

	start := time.Now()
	c.logger.Info("conversion started", "job", id, "kind", string(req.Kind), "src", req.Src, "dst", req.Dst)

	part, err := partFile(req.Dst)
	if err != nil {
		return Result{}, fmt.Errorf("create output: %w", err)
	}

	err = c.run(ctx, id, req, part, progress)
	if err == nil {
		if err = os.Rename(part, req.Dst); err != nil {
			err = fmt.Errorf("move output: %w", err)
		}
	}
	if err != nil {
		_ = os.Remove(part)
		if ctx.Err() != nil {
			err = fmt.Errorf("%w: %w", ErrCanceled, context.Cause(ctx))
		}
		c.logger.Warn("conversion failed", "job", id, "error", err)
		return Result{JobID: id, Dst: req.Dst}, err
	}

	res := Result{JobID: id, Dst: req.Dst, Elapsed: time.Since(start)}
	if info, statErr := os.Stat(req.Dst); statErr == nil {
		res.Size = info.Size()
	}
	c.logger.Info("conversion finished", "job", id, "elapsed", res.Elapsed, "size", res.Size)
	return res, nil
}

// partFile creates an empty temporary file next to dst. It keeps dst's
// extension so ffmpeg still picks the output format from the name.
func partFile(dst string) (string, error) {
	ext := filepath.Ext(dst)
	stem := strings.TrimSuffix(filepath.Base(dst), ext)
	f, err := os.CreateTemp(filepath.Dir(dst), "."+stem+".*.part"+ext)
	if err != nil {
		return "", err
	}
	name := f.Name()
	if err := f.Close(); err != nil {
		_ = os.Remove(name)
		return "", err
	}
	return name, nil
}

func (c *Converter) run(ctx context.Context, id string, req Request, out string, progress func(Progress)) error {
	outR, outW := io.Pipe()
	errR, errW := io.Pipe()

	cmd := exec.CommandContext(ctx, c.ffmpeg, req.args(out)...)
	cmd.Stdout = outW
	cmd.Stderr = errW
	cmd.WaitDelay = killGrace

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start ffmpeg: %w", err)
	}

	var duration atomic.Int64
	var tail []string
	stderrDone := make(chan struct{})
	go func() {
		defer close(stderrDone)
		sc := bufio.NewScanner(errR)
		for sc.Scan() {
			line := sc.Text()
			if d, ok := parseDuration(line); ok && duration.Load() == 0 {
				duration.Store(int64(d))
			}
			tail = append(tail, line)
			if len(tail) > stderrTail {
				tail = tail[1:]
			}
		}
		_, _ = io.Copy(io.Discard, errR)
	}()

	waitErr := make(chan error, 1)
	go func() {
		err := cmd.Wait()
		outW.Close()
		errW.Close()
		waitErr <- err
	}()

	scanProgress(outR, func(p Progress) {
		p.JobID = id
		p.Duration = time.Duration(duration.Load())
		if progress != nil {
			progress(p)
		}
	})
	_, _ = io.Copy(io.Discard, outR)

	err := <-waitErr
	<-stderrDone
	if err != nil {
		msg := strings.TrimSpace(strings.Join(tail, "\n"))
		if msg == "" {
			return fmt.Errorf("ffmpeg: %w", err)
		}
		return fmt.Errorf("ffmpeg: %w\n%s", err, msg)
	}
	return nil
}
