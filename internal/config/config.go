// Package config defines process configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load layers a YAML file and environment variables over the defaults.
// - External errors are wrapped with this package's sentinel errors.
package config

import (
	"fmt"
	"runtime"
	"strings"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFile mirrors logs into a rotating file when set.
	LogFile string `koanf:"log_file"`

	// LogMaxSizeMB, LogMaxBackups and LogMaxAgeDays bound log rotation.
	LogMaxSizeMB  int `koanf:"log_max_size_mb"`
	LogMaxBackups int `koanf:"log_max_backups"`
	LogMaxAgeDays int `koanf:"log_max_age_days"`

	// RosterPath points at a YAML roster; empty uses the built-in sample.
	RosterPath string `koanf:"roster_path"`

	// MetricsTextfile receives a metrics snapshot on exit when set.
	MetricsTextfile string `koanf:"metrics_textfile"`

	// GradingWorkers sets the number of batch grading workers.
	GradingWorkers int `koanf:"grading_workers"`

	// GradingQueueSize bounds the in-memory grading queue.
	GradingQueueSize int `koanf:"grading_queue_size"`

	// RecordGradeHistory appends issued grades to performance records.
	RecordGradeHistory bool `koanf:"record_grade_history"`

	// DueSoonDays is the window in which an open assignment is due soon.
	DueSoonDays int `koanf:"due_soon_days"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:           "info",
		LogMaxSizeMB:       100,
		LogMaxBackups:      5,
		LogMaxAgeDays:      30,
		GradingWorkers:     runtime.NumCPU(),
		GradingQueueSize:   1000,
		RecordGradeHistory: true,
		DueSoonDays:        2,
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("%w: log_level %q", ErrInvalidConfig, c.LogLevel)
	}
	if c.GradingWorkers <= 0 {
		return fmt.Errorf("%w: grading_workers must be positive, got %d", ErrInvalidConfig, c.GradingWorkers)
	}
	if c.GradingQueueSize <= 0 {
		return fmt.Errorf("%w: grading_queue_size must be positive, got %d", ErrInvalidConfig, c.GradingQueueSize)
	}
	if c.DueSoonDays < 0 {
		return fmt.Errorf("%w: due_soon_days must not be negative, got %d", ErrInvalidConfig, c.DueSoonDays)
	}
	if c.LogFile != "" && (c.LogMaxSizeMB <= 0 || c.LogMaxBackups < 0 || c.LogMaxAgeDays < 0) {
		return fmt.Errorf("%w: log rotation limits", ErrInvalidConfig)
	}
	return nil
}
