package commands

import (
	"fmt"
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/ecomstat/ecomclean/internal/runlog"
)

func newHistoryCommand() *cobra.Command {
	var flags configFlags
	var last int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List previous clean runs from the run log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load()
			if err != nil {
				return err
			}
			if cfg.RunLog == "" {
				return fmt.Errorf("no run_log configured")
			}

			entries, err := runlog.Read(cfg.RunLog)
			if err != nil {
				return err
			}
			if last > 0 && len(entries) > last {
				entries = entries[len(entries)-last:]
			}
			printHistory(cmd.OutOrStdout(), entries)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().IntVar(&last, "last", 0, "show only the most recent N runs")
	return cmd
}

func printHistory(w io.Writer, entries []runlog.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "no runs recorded")
		return
	}
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Time", "Run", "Output", "Records", "Rows skipped", "Cells skipped", "Duplicates"})
	for _, e := range entries {
		t.AppendRow(table.Row{
			e.Timestamp.Local().Format(time.DateTime),
			e.RunID,
			e.Output,
			e.Records,
			e.RowsSkipped,
			e.CellsSkipped,
			e.Duplicates,
		})
	}
	t.SetStyle(table.StyleLight)
	fmt.Fprintln(w, t.Render())
}
