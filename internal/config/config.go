package config

import (
	"os"
	"strconv"
)

// Config holds the full application configuration.
type Config struct {
	// SampleRate is the shared processing rate; every input is resampled to
	// it at load time so phrases from different sources can be spliced.
	SampleRate int

	// Composer parameters.
	SegmentSeconds float64
	NumPhrases     int
	TrackCount     int
	PitchMin       float64 // semitones
	PitchMax       float64
	StretchMin     float64
	StretchMax     float64

	// Batch transformer parameters.
	BatchPitchChoices []float64
	BatchStretchMin   float64
	BatchStretchMax   float64

	// Paths.
	InputDir    string
	OutputDir   string
	CatalogPath string
	ModelPath   string

	// MaxConcurrent bounds parallel track generation.
	MaxConcurrent int
}

// Default returns a Config with the standard pipeline parameters.
func Default() *Config {
	return &Config{
		SampleRate:     22050,
		SegmentSeconds: 2.0,
		NumPhrases:     8,
		TrackCount:     6,
		PitchMin:       -1,
		PitchMax:       1,
		StretchMin:     0.95,
		StretchMax:     1.05,

		BatchPitchChoices: []float64{-2, -1, 1, 2},
		BatchStretchMin:   0.9,
		BatchStretchMax:   1.1,

		InputDir:    "input_audio",
		OutputDir:   "generated_music",
		CatalogPath: "data/stylemix.db",
		ModelPath:   "models/model.json",

		MaxConcurrent: 3,
	}
}

// ApplyEnv overrides directory and rate settings from the environment.
// Unset or malformed variables leave the existing values in place.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("STYLEMIX_INPUT_DIR"); v != "" {
		c.InputDir = v
	}
	if v := os.Getenv("STYLEMIX_OUTPUT_DIR"); v != "" {
		c.OutputDir = v
	}
	if v := os.Getenv("STYLEMIX_SAMPLE_RATE"); v != "" {
		if rate, err := strconv.Atoi(v); err == nil && rate > 0 {
			c.SampleRate = rate
		}
	}
}
