package cmd

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	quiet   bool
)

var rootCmd = &cobra.Command{
	Use:   "stylemix",
	Short: "Recombine recorded audio into new pieces by randomized cut-and-splice",
	Long: `Stylemix slices WAV recordings into fixed-length phrases and splices
randomly perturbed phrases back together into new tracks. It also offers a
whole-file batch transformer and feature-based analysis of the inputs.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Pick up a .env file if present; the system environment wins.
		if err := godotenv.Load(); err == nil {
			slog.Debug("loaded environment from .env file")
		}
		setupLogging()
	},
}

func setupLogging() {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	if quiet {
		level = slog.LevelError
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-error output")
}
