// Package config loads optional JSON tuning files for the unwrap tools.
// Fields omitted from the JSON keep their built-in defaults, so partial
// configs are safe.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/banshee-data/fieldmap/internal/unwrap"
)

// TuningConfig mirrors unwrap.Params with pointer fields so that a file
// can override any subset of values.
type TuningConfig struct {
	Bins            *int    `json:"bins,omitempty"`
	QueueCapacity   *int    `json:"queue_capacity,omitempty"`
	QueueGrowth     *int    `json:"queue_growth,omitempty"`
	MaxQueueRecords *int    `json:"max_queue_records,omitempty"`
	Seed            *[3]int `json:"seed,omitempty"`
}

// LoadTuningConfig loads a TuningConfig from a JSON file. The file must
// have a .json extension and stay under 1MB.
func LoadTuningConfig(path string) (*TuningConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &TuningConfig{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks that the configuration values are usable.
func (c *TuningConfig) Validate() error {
	if c.Bins != nil && *c.Bins < 1 {
		return fmt.Errorf("bins must be positive, got %d", *c.Bins)
	}
	if c.QueueCapacity != nil && *c.QueueCapacity < 1 {
		return fmt.Errorf("queue_capacity must be positive, got %d", *c.QueueCapacity)
	}
	if c.QueueGrowth != nil && *c.QueueGrowth < 1 {
		return fmt.Errorf("queue_growth must be positive, got %d", *c.QueueGrowth)
	}
	if c.MaxQueueRecords != nil && *c.MaxQueueRecords < 0 {
		return fmt.Errorf("max_queue_records must be non-negative, got %d", *c.MaxQueueRecords)
	}
	return nil
}

// Apply overlays the configured values onto p and returns the result.
func (c *TuningConfig) Apply(p unwrap.Params) unwrap.Params {
	if c.Bins != nil {
		p.Bins = *c.Bins
	}
	if c.QueueCapacity != nil {
		p.QueueCapacity = *c.QueueCapacity
	}
	if c.QueueGrowth != nil {
		p.QueueGrowth = *c.QueueGrowth
	}
	if c.MaxQueueRecords != nil {
		p.MaxQueueRecords = *c.MaxQueueRecords
	}
	if c.Seed != nil {
		seed := *c.Seed
		p.Seed = &seed
	}
	return p
}
