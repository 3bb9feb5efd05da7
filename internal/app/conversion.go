package app

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/llehouerou/reel/internal/config"
	"github.com/llehouerou/reel/internal/convert"
	"github.com/llehouerou/reel/internal/errmsg"
	"github.com/llehouerou/reel/internal/keymap"
	"github.com/llehouerou/reel/internal/media"
	"github.com/llehouerou/reel/internal/notify"
	"github.com/llehouerou/reel/internal/ui/jobbar"
	"github.com/llehouerou/reel/internal/ui/textinput"
)

const (
	defaultAudioFormat = "mp3"
	defaultResolution  = "720p"
	defaultRotation    = "90"
)

// convertPrompt is the textinput context of a conversion prompt.
type convertPrompt struct {
	Kind convert.Kind
	File media.File
}

var kindForAction = map[keymap.Action]convert.Kind{
	keymap.ActionExtractAudio: convert.KindAudio,
	keymap.ActionResize:       convert.KindResize,
	keymap.ActionRotate:       convert.KindRotate,
}

// promptConversion asks for the one option each kind needs, for the file
// under the cursor.
func (m Model) promptConversion(a keymap.Action) (Model, tea.Cmd) {
	f, ok := m.panel.CursorFile()
	if !ok {
		return m, nil
	}
	if m.converter.Busy() {
		m.errorMsg = errmsg.Format(errmsg.OpConvertStart, convert.ErrBusy)
		return m, nil
	}

	kind := kindForAction[a]
	var p *textinput.Model
	switch kind {
	case convert.KindAudio:
		p = textinput.New("Extract audio: "+f.Name, defaultAudioFormat, convertPrompt{Kind: kind, File: f})
		p.SetHint("Format: mp3, m4a, aac, ogg, opus, flac, wav")
	case convert.KindResize:
		p = textinput.New("Resize: "+f.Name, defaultResolution, convertPrompt{Kind: kind, File: f})
		p.SetHint("Resolution: " + strings.Join(convert.Resolutions(), ", "))
	case convert.KindRotate:
		p = textinput.New("Rotate: "+f.Name, defaultRotation, convertPrompt{Kind: kind, File: f})
		p.SetHint("Clockwise degrees: 90, 180, 270")
	}
	return m.openPopup(p)
}

// startConversion builds the request from the prompt answer and runs it.
func (m Model) startConversion(p convertPrompt, answer string) (Model, tea.Cmd) {
	req, err := BuildRequest(p.Kind, p.File.FullPath, answer, m.convertCfg)
	if err == nil {
		err = req.Validate()
	}
	if err != nil {
		m.errorMsg = errmsg.FormatWith(errmsg.OpConvertStart, p.File.Name, err)
		return m, nil
	}

	job, cmd := convert.Start(m.ctx, m.converter, req)
	m.setJob(job.JobBar())
	m.logger.Info("conversion started", "job", job.ID(), "kind", req.Kind, "src", req.Src, "dst", req.Dst)
	return m, cmd
}

func (m Model) handleConversionDone(msg convert.DoneMsg) (Model, tea.Cmd) {
	bar := msg.Job.JobBar()
	m.setJob(bar)
	m.dropDoneJobs()

	req := msg.Job.Request()
	switch {
	case msg.Err == nil:
		m.logger.Info("conversion finished", "job", bar.ID, "dst", msg.Result.Dst, "elapsed", msg.Result.Elapsed)
		detail := humanize.Bytes(uint64(max(msg.Result.Size, 0)))
		return m, m.notifyCmd(notify.Conversion(req.Label(), detail, nil))
	case msg.Canceled():
		m.logger.Info("conversion canceled", "job", bar.ID)
		return m, nil
	default:
		m.logger.Error("conversion failed", "job", bar.ID, "err", msg.Err)
		m.errorMsg = errmsg.FormatWith(errmsg.OpConvertRun, req.Label(), msg.Err)
		return m, m.notifyCmd(notify.Conversion(req.Label(), "", msg.Err))
	}
}

// setJob adds or replaces a job in the job bar.
func (m *Model) setJob(j jobbar.Job) {
	for i := range m.jobs.Jobs {
		if m.jobs.Jobs[i].ID == j.ID {
			m.jobs.Jobs[i] = j
			return
		}
	}
	m.jobs.Jobs = append(m.jobs.Jobs, j)
}

func (m *Model) dropDoneJobs() {
	m.jobs.Jobs = m.jobs.Active()
}

// BuildRequest turns a conversion kind and its option into a request for
// src. The destination goes to cfg.OutputDir, or next to src when unset.
func BuildRequest(kind convert.Kind, src, option string, cfg config.ConvertConfig) (convert.Request, error) {
	option = strings.TrimSpace(option)
	req := convert.Request{Kind: kind, Src: src}

	switch kind {
	case convert.KindAudio:
		format := strings.ToLower(strings.TrimPrefix(option, "."))
		if format == "" {
			format = defaultAudioFormat
		}
		req.Bitrate = cfg.AudioBitrate
		req.Dst = outputPath(src, cfg.OutputDir, "", "."+format)
	case convert.KindResize:
		req.Resolution = strings.ToLower(option)
		req.Bitrate = cfg.VideoBitrate
		req.Dst = outputPath(src, cfg.OutputDir, "-"+req.Resolution, filepath.Ext(src))
	case convert.KindRotate:
		deg, err := strconv.Atoi(strings.TrimSuffix(option, "°"))
		if err != nil {
			return convert.Request{}, fmt.Errorf("%w: rotation %q is not a number", convert.ErrInvalidRequest, option)
		}
		req.Rotate = deg
		req.Dst = outputPath(src, cfg.OutputDir, fmt.Sprintf("-rot%d", deg), filepath.Ext(src))
	default:
		return convert.Request{}, fmt.Errorf("%w: unknown kind %q", convert.ErrInvalidRequest, kind)
	}
	return req, nil
}

func outputPath(src, dir, suffix, ext string) string {
	if dir == "" {
		dir = filepath.Dir(src)
	}
	base := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
	return filepath.Join(dir, base+suffix+ext)
}
