package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/reel/internal/config"
	"github.com/llehouerou/reel/internal/convert"
	"github.com/llehouerou/reel/internal/logging"
	"github.com/llehouerou/reel/internal/playback"
	"github.com/llehouerou/reel/internal/playlist"
	"github.com/llehouerou/reel/internal/state"
)

func mediaFiles(t *testing.T, names ...string) []string {
	t.Helper()
	dir := t.TempDir()
	paths := make([]string, len(names))
	for i, name := range names {
		paths[i] = filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(paths[i], []byte("data"), 0o644))
	}
	return paths
}

func testService(t *testing.T, st state.Interface) playback.Service {
	t.Helper()
	svc, err := newService(&config.Config{}, st, logging.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { _ = svc.Close() })
	return svc
}

func TestRestoreSession_ArgsReplaceSaved(t *testing.T) {
	st := state.NewMock()
	st.SaveSession(state.Session{Paths: mediaFiles(t, "old.mp4"), CurrentIndex: 0})
	args := mediaFiles(t, "a.mp4", "b.mp4")
	svc := testService(t, st)

	require.NoError(t, restoreSession(context.Background(), svc, st, args))

	assert.Equal(t, 2, svc.Len())
	assert.Equal(t, playback.StatePlaying, svc.State())

	sess, err := st.GetSession()
	require.NoError(t, err)
	assert.Equal(t, args, sess.Paths)
}

func TestRestoreSession_SavesAbsolutePaths(t *testing.T) {
	paths := mediaFiles(t, "a.mp4", "b.mp4")
	t.Chdir(filepath.Dir(paths[0]))
	st := state.NewMock()
	svc := testService(t, st)

	require.NoError(t, restoreSession(context.Background(), svc, st, []string{"a.mp4", "./b.mp4"}))

	sess, err := st.GetSession()
	require.NoError(t, err)
	assert.Equal(t, paths, sess.Paths)
}

func TestRestoreSession_SkipsMissingAndKeepsCurrent(t *testing.T) {
	paths := mediaFiles(t, "a.mp4", "b.mp4", "c.mp4")
	require.NoError(t, os.Remove(paths[0]))

	st := state.NewMock()
	st.SaveSession(state.Session{Paths: paths, CurrentIndex: 2})
	svc := testService(t, st)

	require.NoError(t, restoreSession(context.Background(), svc, st, nil))

	assert.Equal(t, 2, svc.Len())
	assert.Equal(t, paths[2], svc.Current().FullPath)
	assert.Equal(t, playback.StateStopped, svc.State())
}

func TestRestoreSession_Empty(t *testing.T) {
	st := state.NewMock()
	svc := testService(t, st)

	require.NoError(t, restoreSession(context.Background(), svc, st, nil))
	assert.True(t, svc.IsEmpty())
}

func TestRestoreSession_AllMissing(t *testing.T) {
	st := state.NewMock()
	st.SaveSession(state.Session{Paths: []string{"/nowhere/a.mp4"}, CurrentIndex: 0})
	svc := testService(t, st)

	require.NoError(t, restoreSession(context.Background(), svc, st, nil))
	assert.True(t, svc.IsEmpty())
}

func TestNewService_AppliesSettings(t *testing.T) {
	st := state.NewMock()
	require.NoError(t, st.SaveSettings(state.Settings{SortOrder: string(playlist.DateAsc), Shuffle: true}))

	svc := testService(t, st)
	assert.Equal(t, playlist.DateAsc, svc.SortOrder())
	assert.True(t, svc.Shuffle())
}

func TestNewService_FallsBackToConfigOrder(t *testing.T) {
	st := state.NewMock()
	require.NoError(t, st.SaveSettings(state.Settings{SortOrder: "bogus"}))

	cfg := &config.Config{Playlist: config.PlaylistConfig{SortOrder: string(playlist.NameDesc), Language: "xx-invalid-!"}}
	svc, err := newService(cfg, st, logging.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { _ = svc.Close() })

	assert.Equal(t, playlist.NameDesc, svc.SortOrder())
}

func TestRunList(t *testing.T) {
	paths := mediaFiles(t, "a.mp4", "b.mp4")
	now := time.Now()
	old := now.Add(-3 * time.Hour)
	require.NoError(t, os.Chtimes(paths[0], old, old))

	st := state.NewMock()
	st.SaveSession(state.Session{
		Paths:        append(paths, "/nowhere/c.mp4"),
		CurrentIndex: 1,
		SavedAt:      now.Add(-2 * time.Minute),
	})

	var out bytes.Buffer
	require.NoError(t, RunList(st, &out, now))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "3 files, saved 2 minutes ago", lines[0])
	assert.Contains(t, lines[1], "3 hours ago")
	assert.True(t, strings.HasPrefix(lines[2], ">"))
	assert.Contains(t, lines[3], "missing")
}

func TestRunList_Empty(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, RunList(state.NewMock(), &out, time.Now()))
	assert.Equal(t, "No saved session\n", out.String())
}

func TestConvertOptions_Request(t *testing.T) {
	cfg := config.ConvertConfig{AudioBitrate: "128k", VideoBitrate: "1M"}

	tests := []struct {
		name string
		opts convertOptions
		want convert.Request
	}{
		{
			name: "audio uses config bitrate",
			opts: convertOptions{kind: "audio"},
			want: convert.Request{Kind: convert.KindAudio, Src: "in.mp4", Dst: "out", Bitrate: "128k"},
		},
		{
			name: "flag bitrate wins",
			opts: convertOptions{kind: "AUDIO", bitrate: "320k"},
			want: convert.Request{Kind: convert.KindAudio, Src: "in.mp4", Dst: "out", Bitrate: "320k"},
		},
		{
			name: "resize",
			opts: convertOptions{kind: "resize", resolution: "1080p"},
			want: convert.Request{Kind: convert.KindResize, Src: "in.mp4", Dst: "out", Bitrate: "1M", Resolution: "1080p"},
		},
		{
			name: "rotate ignores bitrate default",
			opts: convertOptions{kind: "rotate", rotate: 180},
			want: convert.Request{Kind: convert.KindRotate, Src: "in.mp4", Dst: "out", Rotate: 180},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.opts.request("in.mp4", "out", cfg)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := convertOptions{kind: "gif"}.request("in.mp4", "out", cfg)
	assert.ErrorIs(t, err, convert.ErrInvalidRequest)
}

func fakeFFmpeg(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake ffmpeg needs a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "ffmpeg")
	script := "#!/bin/sh\nfor out; do :; done\n" + body + "\n"
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	return path
}

func TestRunConvert(t *testing.T) {
	ffmpeg := fakeFFmpeg(t, `
echo "  Duration: 00:00:10.00, start: 0.000000, bitrate: 1 kb/s" >&2
echo "out_time_us=5000000"
echo "speed=2.0x"
echo "progress=continue"
printf 'audio' > "$out"
echo "out_time_us=10000000"
echo "progress=end"
`)
	src := mediaFiles(t, "clip.mp4")[0]
	dst := filepath.Join(t.TempDir(), "clip.mp3")

	var out bytes.Buffer
	c := convert.NewConverter(convert.WithFFmpeg(ffmpeg), convert.WithLogger(logging.Discard()))
	err := RunConvert(context.Background(), c, convert.Request{Kind: convert.KindAudio, Src: src, Dst: dst}, &out)
	require.NoError(t, err)

	assert.FileExists(t, dst)
	assert.Contains(t, out.String(), "clip.mp4")
	assert.Contains(t, out.String(), dst+" written (5 B")
}

func TestRunConvert_InvalidRequest(t *testing.T) {
	var out bytes.Buffer
	c := convert.NewConverter(convert.WithLogger(logging.Discard()))
	err := RunConvert(context.Background(), c, convert.Request{Kind: convert.KindAudio, Src: "/nowhere.mp4", Dst: "x.mp3"}, &out)
	assert.ErrorIs(t, err, convert.ErrInvalidRequest)
	assert.Empty(t, out.String())
}

func TestProgressLine(t *testing.T) {
	p := convert.Progress{OutTime: 30 * time.Second, Duration: 2 * time.Minute, Speed: 1.5}
	assert.Equal(t, " 25%  0:30 / 2:00  1.5x", progressLine(p))
	assert.Equal(t, "1:01:05", progressLine(convert.Progress{OutTime: time.Hour + 65*time.Second}))
}

func TestVersionCmd(t *testing.T) {
	cmd := newVersionCmd("v1.2.3")
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "reel v1.2.3\n", out.String())
}

func TestRootCmd_Subcommands(t *testing.T) {
	root := NewRootCmd("dev")
	names := make([]string, 0, len(root.Commands()))
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"convert", "list", "version"})
}
