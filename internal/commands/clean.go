package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ecomstat/ecomclean/internal/pipeline"
	"github.com/ecomstat/ecomclean/internal/runlog"
)

func newCleanCommand() *cobra.Command {
	var flags configFlags

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Parse the raw table and write the tidy (industry, year) records",
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

			rep, err := pipeline.New(cfg, log).Run(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), rep.Summary())

			if cfg.RunLog == "" {
				return nil
			}
			entry := runlog.Entry{
				Timestamp:    time.Now(),
				RunID:        rep.RunID,
				Input:        rep.Input,
				Output:       rep.Output,
				Records:      rep.Stats.Records,
				RowsSkipped:  rep.Stats.RowsSkipped,
				CellsSkipped: rep.Stats.CellsSkipped(),
				Duplicates:   rep.Stats.Duplicates,
			}
			if err := runlog.Append(cfg.RunLog, entry); err != nil {
				return fmt.Errorf("writing run log: %w", err)
			}
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}
