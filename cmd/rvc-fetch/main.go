package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

// Exit codes. Per-artifact failures are reported in the summary, not via
// the exit status; only an interrupt or an unexpected top-level error is
// distinguishable to the shell.
const (
	exitOK          = 0
	exitError       = 1
	exitInterrupted = 130
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := newRootCmd()
	if err := root.ExecuteContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, "Download interrupted by user.")
			os.Exit(exitInterrupted)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitError)
	}
	os.Exit(exitOK)
}

func newRootCmd() *cobra.Command {
	opts := &fetchOptions{}

	cmd := &cobra.Command{
		Use:     "rvc-fetch",
		Short:   "Download pretrained RVC and UVR5 model weights",
		Long:    "rvc-fetch downloads the pretrained model weights a voice-conversion setup needs\ninto a local directory, skipping files that are already present. Rerunning it\nis the retry mechanism: completed files are never fetched twice.",
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFetch(cmd, opts)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().StringVar(&opts.configPath, "config", "", "Path to optional configuration file")
	cmd.Flags().StringVar(&opts.rootDir, "root-dir", "", "Directory where model files are stored (overrides config)")
	cmd.Flags().StringVar(&opts.baseURL, "base-url", "", "Base URL of the artifact host (overrides config)")
	cmd.Flags().StringVar(&opts.catalogPath, "catalog", "", "Path to a yaml catalog override (overrides config)")
	cmd.Flags().BoolVar(&opts.withONNX, "with-onnx", false, "Fetch the large ONNX dereverb model without prompting")
	cmd.Flags().BoolVar(&opts.noONNX, "no-onnx", false, "Skip the ONNX dereverb model without prompting")
	cmd.Flags().BoolVar(&opts.history, "history", false, "Record this run in the fetch-history ledger")

	cmd.AddCommand(newHistoryCmd())

	return cmd
}
