package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/llehouerou/reel/internal/config"
	"github.com/llehouerou/reel/internal/convert"
)

type convertOptions struct {
	kind       string
	bitrate    string
	resolution string
	rotate     int
}

func newConvertCmd(e *env) *cobra.Command {
	var opts convertOptions

	cmd := &cobra.Command{
		Use:   "convert SRC DST",
		Short: "Extract audio, resize or rotate a file with ffmpeg",
		Example: "  reel convert clip.mp4 clip.mp3\n" +
			"  reel convert clip.mp4 small.mp4 --kind resize --resolution 480p\n" +
			"  reel convert clip.mp4 upright.mp4 --kind rotate --rotate 270",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := opts.request(args[0], args[1], e.cfg.GetConvertConfig())
			if err != nil {
				return err
			}
			c := convert.NewConverter(
				convert.WithFFmpeg(e.cfg.FFmpegPath),
				convert.WithLogger(slog.Default()),
			)
			return RunConvert(cmd.Context(), c, req, cmd.OutOrStdout())
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.kind, "kind", "k", string(convert.KindAudio), "conversion kind: audio, resize or rotate")
	f.StringVarP(&opts.bitrate, "bitrate", "b", "", "output bitrate, e.g. 192k or 2M (default from config)")
	f.StringVarP(&opts.resolution, "resolution", "r", "720p", "target resolution for resize")
	f.IntVar(&opts.rotate, "rotate", 90, "clockwise rotation in degrees: 90, 180 or 270")
	return cmd
}

// request builds the conversion request, filling the bitrate from cfg
// when the flag is unset.
func (o convertOptions) request(src, dst string, cfg config.ConvertConfig) (convert.Request, error) {
	kind, err := convert.ParseKind(o.kind)
	if err != nil {
		return convert.Request{}, err
	}

	req := convert.Request{Kind: kind, Src: src, Dst: dst, Bitrate: o.bitrate}
	switch kind {
	case convert.KindAudio:
		if req.Bitrate == "" {
			req.Bitrate = cfg.AudioBitrate
		}
	case convert.KindResize:
		req.Resolution = o.resolution
		if req.Bitrate == "" {
			req.Bitrate = cfg.VideoBitrate
		}
	case convert.KindRotate:
		req.Rotate = o.rotate
	}
	return req, nil
}

// RunConvert runs req and prints progress to out until it finishes.
func RunConvert(ctx context.Context, c *convert.Converter, req convert.Request, out io.Writer) error {
	if err := req.Validate(); err != nil {
		return err
	}

	fmt.Fprintln(out, req.Label())
	printed := false
	res, err := c.Convert(ctx, req, func(p convert.Progress) {
		fmt.Fprintf(out, "\r%s", progressLine(p))
		printed = true
	})
	if printed {
		fmt.Fprintln(out)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "%s written (%s in %s)\n",
		res.Dst, humanize.Bytes(uint64(max(res.Size, 0))), res.Elapsed.Round(time.Millisecond))
	return nil
}

func progressLine(p convert.Progress) string {
	line := fmtDuration(p.OutTime)
	if p.Duration > 0 {
		line = fmt.Sprintf("%3.0f%%  %s / %s", p.Fraction()*100, line, fmtDuration(p.Duration))
	}
	if p.Speed > 0 {
		line += fmt.Sprintf("  %.1fx", p.Speed)
	}
	return line
}

func fmtDuration(d time.Duration) string {
	total := int(d.Seconds())
	h, m, s := total/3600, (total/60)%60, total%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
