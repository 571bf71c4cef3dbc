// Package config loads environment-driven defaults for the ecomdash CLI.
// Every value can be overridden by a command-line flag; the environment
// (prefix ECOMDASH_) only supplies defaults.
package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds the env-configurable defaults.
type Config struct {
	// Dataset is the default dataset file path for report/export.
	Dataset string `envconfig:"DATASET"`

	// Format is the default dataset format: auto, csv, or parquet.
	Format string `envconfig:"FORMAT" default:"auto"`

	// Top is the default number of rows shown per console table.
	Top int `envconfig:"TOP" default:"10"`

	// DownloadDir is the default directory for fetched dataset files.
	DownloadDir string `envconfig:"DOWNLOAD_DIR" default:"data"`

	// FetchConcurrency is the default number of parallel downloads.
	FetchConcurrency int `envconfig:"FETCH_CONCURRENCY" default:"4"`

	// Debug enables debug-level logging.
	Debug bool `envconfig:"DEBUG"`

	// PrettyLogs switches logging to the human-friendly console writer.
	PrettyLogs bool `envconfig:"PRETTY_LOGS"`
}

// Load reads configuration from the environment.
func Load() (Config, error) {
	var c Config
	if err := envconfig.Process("ecomdash", &c); err != nil {
		return Config{}, fmt.Errorf("process environment config: %w", err)
	}
	return c, nil
}
