package worker

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"text/tabwriter"

	"gonum.org/v1/gonum/stat"

	"stylemix/internal/eval"
	"stylemix/internal/feature"
	"stylemix/internal/model"
	"stylemix/internal/wavio"
)

// RunAnalyze executes the analysis pipeline: extract features for every
// input file, print a per-file tonal report and a pairwise chroma-similarity
// table, and optionally train and save the mean-feature model.
func RunAnalyze(ctx context.Context, opts Options) error {
	cfg := opts.Config

	files, err := listWAVs(cfg.InputDir)
	if err != nil {
		return err
	}

	extractor := feature.NewExtractor(cfg.SampleRate)
	names := make([]string, 0, len(files))
	sets := make([]*feature.Set, 0, len(files))

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return err
		}

		buf, err := wavio.Load(path, cfg.SampleRate)
		if err != nil {
			return fmt.Errorf("load %s: %w", filepath.Base(path), err)
		}
		set, err := extractor.Extract(buf)
		if err != nil {
			return fmt.Errorf("extract %s: %w", filepath.Base(path), err)
		}
		names = append(names, filepath.Base(path))
		sets = append(sets, set)
	}

	printFeatureReport(names, sets)
	if len(sets) > 1 {
		printSimilarityTable(names, sets)
	}

	if opts.TrainModel {
		m, err := model.Train(sets)
		if err != nil {
			return fmt.Errorf("train model: %w", err)
		}
		if err := model.Save(cfg.ModelPath, m); err != nil {
			return err
		}
		slog.Info("model trained and saved", "path", cfg.ModelPath, "frames", m.Frames)
	}
	return nil
}

func printFeatureReport(names []string, sets []*feature.Set) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "File\tFrames\tCentroid Hz\tRolloff Hz\tZCR\tRMS\tEntropy bits")
	for i, set := range sets {
		fmt.Fprintf(w, "%s\t%d\t%.0f\t%.0f\t%.3f\t%.3f\t%.2f\n",
			names[i], set.Frames(),
			stat.Mean(set.Centroid, nil),
			stat.Mean(set.Rolloff, nil),
			stat.Mean(set.ZCR, nil),
			stat.Mean(set.RMS, nil),
			eval.PitchClassEntropy(set.Chroma))
	}
	w.Flush()
}

func printSimilarityTable(names []string, sets []*feature.Set) {
	fmt.Println("\nChroma similarity (1 = identical tonal fingerprint):")
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for i := 0; i < len(sets); i++ {
		for j := i + 1; j < len(sets); j++ {
			sim := eval.ChromaSimilarity(sets[i].Chroma, sets[j].Chroma)
			fmt.Fprintf(w, "%s\t%s\t%.3f\n", names[i], names[j], sim)
		}
	}
	w.Flush()
}
