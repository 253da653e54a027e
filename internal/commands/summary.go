package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/ecomstat/ecomclean/internal/analysis"
	"github.com/ecomstat/ecomclean/internal/tidy"
)

func newSummaryCommand() *cobra.Command {
	var flags configFlags
	var industry string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print growth metrics from the tidy table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load()
			if err != nil {
				return err
			}

			recs, err := tidy.ReadFile(cfg.Output.Path, cfg.Output.Format)
			if err != nil {
				return fmt.Errorf("reading tidy table: %w", err)
			}

			s, err := analysis.Summarize(recs)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			printSummary(w, s)

			if industry == "" {
				return nil
			}
			tr, err := analysis.IndustryTrend(recs, industry)
			if errors.Is(err, analysis.ErrUnknownIndustry) {
				return fmt.Errorf("%w; choose one of: %s", err, strings.Join(analysis.Industries(recs), ", "))
			}
			if err != nil {
				return err
			}
			printTrend(w, tr)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&industry, "industry", "", "also show the series of one industry")
	return cmd
}

func printSummary(w io.Writer, s analysis.Summary) {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Year", "E-commerce value"})
	for _, y := range s.Years {
		t.AppendRow(table.Row{y.Year, tidy.FormatNumber(y.EcommerceValue)})
	}
	t.SetColumnConfigs([]table.ColumnConfig{{Number: 2, Align: text.AlignRight}})
	t.SetStyle(table.StyleLight)
	fmt.Fprintln(w, t.Render())

	fmt.Fprintf(w, "Period: %d-%d\n", s.StartYear, s.EndYear)
	fmt.Fprintf(w, "Start value: %s\n", tidy.FormatNumber(s.StartValue))
	fmt.Fprintf(w, "End value: %s\n", tidy.FormatNumber(s.EndValue))
	fmt.Fprintf(w, "CAGR: %s\n", percent(s.CAGRPct))
}

func printTrend(w io.Writer, tr analysis.Trend) {
	t := table.NewWriter()
	t.SetTitle(tr.Industry)
	t.AppendHeader(table.Row{"Year", "E-commerce value", "Total value", "Share"})
	for _, r := range tr.Series {
		total := "-"
		if r.TotalValue != nil {
			total = tidy.FormatNumber(*r.TotalValue)
		}
		t.AppendRow(table.Row{r.Year, tidy.FormatNumber(r.EcommerceValue), total, percent(r.EcommerceSharePct)})
	}
	t.SetStyle(table.StyleLight)
	fmt.Fprintln(w, t.Render())

	fmt.Fprintf(w, "Latest (%d): %s\n", tr.Latest.Year, tidy.FormatNumber(tr.Latest.EcommerceValue))
	fmt.Fprintf(w, "YoY growth: %s\n", percent(tr.YoYGrowth))
	fmt.Fprintf(w, "E-commerce share: %s\n", percent(tr.LatestShare))
}

func percent(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.2f%%", *v)
}
