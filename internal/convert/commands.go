package convert

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
)

// ProgressMsg reports conversion progress for UI updates.
type ProgressMsg struct {
	Job      *Job
	Progress Progress
	next     <-chan tea.Msg
}

// DoneMsg signals the conversion finished, failed or was canceled.
type DoneMsg struct {
	Job    *Job
	Result Result
	Err    error
}

// Canceled reports whether the conversion was canceled.
func (m DoneMsg) Canceled() bool {
	return isCanceled(m.Err)
}

// Next returns the command waiting for the following update.
func (m ProgressMsg) Next() tea.Cmd {
	return waitCmd(m.next)
}

// Start runs req on c in the background. The returned command delivers the
// first ProgressMsg or the DoneMsg; chain ProgressMsg.Next to keep listening.
func Start(ctx context.Context, c *Converter, req Request) (*Job, tea.Cmd) {
	job := NewJob(req)
	updates := make(chan tea.Msg, 1)

	go func() {
		res, err := c.Convert(ctx, job.Request(), func(p Progress) {
			job.Update(p)
			msg := ProgressMsg{Job: job, Progress: p, next: updates}
			// Drop stale progress when the UI is behind
			select {
			case updates <- msg:
			default:
			}
		})
		job.Complete(res, err)
		updates <- DoneMsg{Job: job, Result: res, Err: err}
		close(updates)
	}()

	return job, waitCmd(updates)
}

func waitCmd(ch <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return nil
		}
		return msg
	}
}

func isCanceled(err error) bool {
	return errors.Is(err, ErrCanceled) || errors.Is(err, context.Canceled)
}
