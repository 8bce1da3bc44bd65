package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nickc01/rvc-model-fetcher/internal/adapter/filesystem"
	"github.com/nickc01/rvc-model-fetcher/internal/adapter/hfhub"
	"github.com/nickc01/rvc-model-fetcher/internal/adapter/sqlite"
	"github.com/nickc01/rvc-model-fetcher/internal/catalog"
	"github.com/nickc01/rvc-model-fetcher/internal/config"
	"github.com/nickc01/rvc-model-fetcher/internal/console"
	"github.com/nickc01/rvc-model-fetcher/internal/fetcher"
	"github.com/nickc01/rvc-model-fetcher/internal/logger"
	"github.com/nickc01/rvc-model-fetcher/internal/port"
)

type fetchOptions struct {
	configPath  string
	rootDir     string
	baseURL     string
	catalogPath string
	withONNX    bool
	noONNX      bool
	history     bool
}

func runFetch(cmd *cobra.Command, opts *fetchOptions) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}

	// Flags override the config file
	if opts.rootDir != "" {
		cfg.Fetch.RootDir = opts.rootDir
	}
	if opts.baseURL != "" {
		cfg.Remote.BaseURL = opts.baseURL
	}
	if opts.catalogPath != "" {
		cfg.Catalog.Path = opts.catalogPath
	}
	if opts.history {
		cfg.History.Enabled = true
	}

	log, err := logger.Init(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return err
	}
	defer log.Sync()

	cat := catalog.Default()
	if cfg.Catalog.Path != "" {
		cat, err = catalog.LoadFile(cfg.Catalog.Path)
		if err != nil {
			return err
		}
	}
	if opts.baseURL == "" && cfg.Remote.BaseURL == catalog.DefaultBaseURL && cat.BaseURL != "" {
		cfg.Remote.BaseURL = cat.BaseURL
	}

	includeONNX := false
	switch {
	case opts.noONNX:
		// explicit skip
	case opts.withONNX:
		includeONNX = true
	case len(cat.ONNX) > 0:
		includeONNX = promptONNX(cmd.InOrStdin(), cmd.OutOrStdout())
	}

	store, err := filesystem.New(cfg.Fetch.RootDir, cfg.Fetch.ChunkSize)
	if err != nil {
		return err
	}

	source := hfhub.New(cfg.Remote.BaseURL)

	var recorder port.RunRecorder
	if cfg.History.Enabled {
		dbPath := cfg.History.Path
		if dbPath == "" {
			dbPath = filepath.Join(store.RootDir(), "fetch-history.db")
		}
		ledger, err := sqlite.Open(dbPath)
		if err != nil {
			return err
		}
		defer ledger.Close()
		recorder = ledger

		log.Info("recording run in fetch-history ledger", zap.String("path", dbPath))
	}

	out := cmd.OutOrStdout()
	reporter := console.New(out)

	fmt.Fprintf(out, "Download destination: %s\n", store.RootDir())
	fmt.Fprintf(out, "Remote host: %s\n\n", source.BaseURL())

	f := fetcher.New(source, store, recorder, reporter, log, cfg.Fetch.GetProgressInterval())

	results, tally, err := f.EnsureBatch(cmd.Context(), cat.Specs(includeONNX))
	if err != nil {
		// Interrupted: the last in-progress destination file is the only
		// possibly-partial artifact.
		return err
	}

	reporter.Summary(results, tally)
	return nil
}
