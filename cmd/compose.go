package cmd

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"stylemix/internal/config"
	"stylemix/internal/worker"
)

var composeCmd = &cobra.Command{
	Use:   "compose",
	Short: "Generate new tracks by recombining phrases from the input audio",
	Long: `Compose loads every WAV file in the input directory, slices each into
fixed-length phrases, pools the phrases, and generates new tracks by sampling
phrases at random and applying a slight pitch shift or time stretch to each
before splicing.`,
	RunE: runCompose,
}

var (
	composeInput    string
	composeOutput   string
	composeSegment  float64
	composePhrases  int
	composeTracks   int
	composeParallel int
	composeSeed     uint64
)

func init() {
	defaults := config.Default()

	composeCmd.Flags().StringVarP(&composeInput, "input", "i", defaults.InputDir, "directory of input WAV files")
	composeCmd.Flags().StringVarP(&composeOutput, "output", "o", defaults.OutputDir, "directory for generated tracks")
	composeCmd.Flags().Float64VarP(&composeSegment, "segment-length", "s", defaults.SegmentSeconds, "phrase length in seconds")
	composeCmd.Flags().IntVarP(&composePhrases, "phrases", "p", defaults.NumPhrases, "phrases per generated track")
	composeCmd.Flags().IntVarP(&composeTracks, "tracks", "n", defaults.TrackCount, "number of tracks to generate")
	composeCmd.Flags().IntVarP(&composeParallel, "max-concurrent", "j", defaults.MaxConcurrent, "max tracks rendered in parallel")
	composeCmd.Flags().Uint64Var(&composeSeed, "seed", 0, "random seed (0 = nondeterministic)")

	rootCmd.AddCommand(composeCmd)
}

func runCompose(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Default()
	cfg.ApplyEnv()
	// Explicit flags win over environment overrides.
	if cmd.Flags().Changed("input") {
		cfg.InputDir = composeInput
	}
	if cmd.Flags().Changed("output") {
		cfg.OutputDir = composeOutput
	}
	cfg.SegmentSeconds = composeSegment
	cfg.NumPhrases = composePhrases
	cfg.TrackCount = composeTracks
	cfg.MaxConcurrent = composeParallel

	if err := worker.Run(ctx, worker.Options{Config: cfg, Seed: runSeed(composeSeed)}); err != nil {
		return err
	}

	if !quiet {
		slog.Info("done")
	}
	return nil
}

// runSeed returns the --seed value, or a fresh random seed when unset:
// generation is intentionally stochastic by default.
func runSeed(seed uint64) uint64 {
	if seed != 0 {
		return seed
	}
	return rand.Uint64()
}
