// Package model holds the placeholder "trained" model: the mean MFCC vector
// over a feature dataset, persisted as JSON. It stands in for a real
// generative model and is never consulted by the composer.
package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"stylemix/internal/feature"
)

// ErrEmptyDataset is returned when training is attempted with no frames.
var ErrEmptyDataset = errors.New("empty training dataset")

// Model is the placeholder model: one mean feature vector.
type Model struct {
	MeanMFCC []float64 `json:"mean_mfcc"`
	Frames   int       `json:"frames"`
}

// Train averages MFCC frames across the whole dataset.
func Train(sets []*feature.Set) (*Model, error) {
	var mean []float64
	frames := 0

	for _, set := range sets {
		for _, coeffs := range set.MFCC {
			if mean == nil {
				mean = make([]float64, len(coeffs))
			}
			for i, c := range coeffs {
				mean[i] += c
			}
			frames++
		}
	}
	if frames == 0 {
		return nil, ErrEmptyDataset
	}

	for i := range mean {
		mean[i] /= float64(frames)
	}
	return &Model{MeanMFCC: mean, Frames: frames}, nil
}

// Save writes the model as JSON, creating parent directories at write time.
func Save(path string, m *Model) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create model directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(m, "", "    ")
	if err != nil {
		return fmt.Errorf("encode model: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write model: %w", err)
	}
	return nil
}

// Load reads a previously saved model.
func Load(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model: %w", err)
	}
	var m Model
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode model %s: %w", path, err)
	}
	return &m, nil
}
