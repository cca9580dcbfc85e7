package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"stylemix/internal/config"
	"stylemix/internal/worker"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Report spectral features and tonal similarity of the input audio",
	Long: `Analyze extracts MFCC, chroma, centroid, rolloff, zero-crossing and RMS
features from every WAV file in the input directory, prints a per-file report
plus pairwise tonal-similarity scores, and can fit the placeholder
mean-feature model.`,
	RunE: runAnalyze,
}

var (
	analyzeInput string
	analyzeTrain bool
)

func init() {
	defaults := config.Default()

	analyzeCmd.Flags().StringVarP(&analyzeInput, "input", "i", defaults.InputDir, "directory of input WAV files")
	analyzeCmd.Flags().BoolVar(&analyzeTrain, "train", false, "fit and save the mean-feature model")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Default()
	cfg.ApplyEnv()
	if cmd.Flags().Changed("input") {
		cfg.InputDir = analyzeInput
	}

	return worker.RunAnalyze(ctx, worker.Options{Config: cfg, TrainModel: analyzeTrain})
}
