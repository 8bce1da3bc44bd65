package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nickc01/rvc-model-fetcher/internal/adapter/sqlite"
	"github.com/nickc01/rvc-model-fetcher/internal/config"
)

func newHistoryCmd() *cobra.Command {
	var (
		configPath string
		rootDir    string
		limit      int
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent fetch runs from the history ledger",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if rootDir != "" {
				cfg.Fetch.RootDir = rootDir
			}

			dbPath := cfg.History.Path
			if dbPath == "" {
				dbPath = filepath.Join(cfg.Fetch.RootDir, "fetch-history.db")
			}

			ledger, err := sqlite.Open(dbPath)
			if err != nil {
				return err
			}
			defer ledger.Close()

			runs, err := ledger.RecentRuns(limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No recorded runs.")
				return nil
			}

			for _, run := range runs {
				finished := "in progress"
				if run.FinishedAt != nil {
					finished = run.FinishedAt.Local().Format("2006-01-02 15:04:05")
				}
				fmt.Fprintf(out, "%s  started %s  finished %s  successful=%d failed=%d\n",
					run.ID,
					run.StartedAt.Local().Format("2006-01-02 15:04:05"),
					finished,
					run.Successful,
					run.Failed,
				)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Path to optional configuration file")
	cmd.Flags().StringVar(&rootDir, "root-dir", "", "Directory where model files are stored (overrides config)")
	cmd.Flags().IntVar(&limit, "limit", 10, "Maximum number of runs to list")

	return cmd
}
