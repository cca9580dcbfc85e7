package worker

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"path/filepath"

	"stylemix/internal/batch"
	"stylemix/internal/wavio"
)

// RunBatch executes the whole-file transform pipeline: every WAV in the
// input directory gets one random pitch shift and one random time stretch,
// then is written out under a generated_ name. Files are processed in order;
// any failure aborts the run.
func RunBatch(ctx context.Context, opts Options) error {
	cfg := opts.Config

	files, err := listWAVs(cfg.InputDir)
	if err != nil {
		return err
	}
	slog.Info("generating audio from existing inputs", "files", len(files))

	bopts := batch.Options{
		PitchChoices: cfg.BatchPitchChoices,
		StretchMin:   cfg.BatchStretchMin,
		StretchMax:   cfg.BatchStretchMax,
	}
	rng := rand.New(rand.NewPCG(opts.Seed, 0))

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return err
		}

		buf, err := wavio.Load(path, cfg.SampleRate)
		if err != nil {
			return fmt.Errorf("load %s: %w", filepath.Base(path), err)
		}

		out, err := batch.Transform(rng, buf, bopts)
		if err != nil {
			return fmt.Errorf("transform %s: %w", filepath.Base(path), err)
		}

		outPath := filepath.Join(cfg.OutputDir, batch.OutputName(filepath.Base(path)))
		if err := wavio.Write(outPath, out); err != nil {
			return fmt.Errorf("write %s: %w", filepath.Base(outPath), err)
		}
		slog.Info("generated", "path", outPath)
	}
	return nil
}
