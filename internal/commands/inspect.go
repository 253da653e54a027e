package commands

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/ecomstat/ecomclean/internal/model"
	"github.com/ecomstat/ecomclean/internal/pipeline"
)

func newInspectCommand() *cobra.Command {
	var flags configFlags

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Show how the header band of the raw table is resolved",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load()
			if err != nil {
				return err
			}
			log, err := newLogger(cmd, cfg)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			ins, err := pipeline.New(cfg, log).Inspect(cmd.Context())
			if err != nil {
				return err
			}
			printInspection(cmd.OutOrStdout(), ins)
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

func printInspection(w io.Writer, ins pipeline.Inspection) {
	res := ins.Resolution
	fmt.Fprintf(w, "grid: %d rows x %d columns\n", ins.Rows, ins.Cols)
	fmt.Fprintf(w, "year row: %d, type row: %d, data starts: %d\n", res.YearRow+1, res.TypeRow+1, res.DataStart+1)

	labels := table.NewWriter()
	labels.AppendHeader(table.Row{"Column", "Year", "Kind"})
	for _, l := range res.Labels {
		year := ""
		if l.Year != 0 {
			year = fmt.Sprint(l.Year)
		}
		labels.AppendRow(table.Row{l.Column + 1, year, l.Kind})
	}
	labels.SetStyle(table.StyleLight)
	fmt.Fprintln(w, labels.Render())

	pairs := table.NewWriter()
	pairs.AppendHeader(table.Row{"Year", "Total column", "E-commerce column"})
	for _, p := range ins.Pairs {
		pairs.AppendRow(table.Row{p.Year, columnName(p.TotalCol), columnName(p.EcomCol)})
	}
	pairs.SetStyle(table.StyleLight)
	fmt.Fprintln(w, pairs.Render())

	for _, c := range ins.Conflicts {
		fmt.Fprintf(w, "note: %d %s also in column %d, using column %d\n", c.Year, c.Kind, c.Dropped+1, c.Kept+1)
	}
}

func columnName(col int) string {
	if col == model.NoColumn {
		return "-"
	}
	return fmt.Sprint(col + 1)
}
