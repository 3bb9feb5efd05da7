package cli

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/llehouerou/reel/internal/state"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print the saved session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := state.Open()
			if err != nil {
				return err
			}
			defer st.Close()
			return RunList(st, cmd.OutOrStdout(), time.Now())
		},
	}
}

// RunList prints the saved playlist with modification dates relative to now.
// The current file is marked with ">".
func RunList(st state.Interface, out io.Writer, now time.Time) error {
	sess, err := st.GetSession()
	if err != nil {
		return err
	}
	if sess.IsEmpty() {
		fmt.Fprintln(out, "No saved session")
		return nil
	}

	fmt.Fprintf(out, "%d files, saved %s\n", len(sess.Paths), humanize.RelTime(sess.SavedAt, now, "ago", "from now"))

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for i, p := range sess.Paths {
		marker := " "
		if i == sess.CurrentIndex {
			marker = ">"
		}
		modified := "missing"
		if info, err := os.Stat(p); err == nil {
			modified = humanize.RelTime(info.ModTime(), now, "ago", "from now")
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", marker, i+1, p, modified)
	}
	return tw.Flush()
}
