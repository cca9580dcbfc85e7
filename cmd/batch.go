package cmd

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"stylemix/internal/config"
	"stylemix/internal/worker"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Transform whole input files with one random pitch shift and stretch each",
	Long: `Batch applies a single random pitch shift (from a discrete semitone set)
followed by a single random time stretch to every WAV file in the input
directory, writing each result as generated_<name>.wav. No segmentation is
involved; files are transformed as whole tracks.`,
	RunE: runBatch,
}

var (
	batchInput  string
	batchOutput string
	batchSeed   uint64
)

func init() {
	defaults := config.Default()

	batchCmd.Flags().StringVarP(&batchInput, "input", "i", defaults.InputDir, "directory of input WAV files")
	batchCmd.Flags().StringVarP(&batchOutput, "output", "o", defaults.OutputDir, "directory for transformed files")
	batchCmd.Flags().Uint64Var(&batchSeed, "seed", 0, "random seed (0 = nondeterministic)")

	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Default()
	cfg.ApplyEnv()
	if cmd.Flags().Changed("input") {
		cfg.InputDir = batchInput
	}
	if cmd.Flags().Changed("output") {
		cfg.OutputDir = batchOutput
	}

	if err := worker.RunBatch(ctx, worker.Options{Config: cfg, Seed: runSeed(batchSeed)}); err != nil {
		return err
	}

	if !quiet {
		slog.Info("done")
	}
	return nil
}
