package config

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/rshade/dropdown/internal/logging"
)

// LoggingConfig is the logging section.
//
// Example:
//
//	logging:
//	  level: debug
//	  format: json
//	  file: /tmp/dropdown.log
type LoggingConfig struct {
	// Level is a zerolog level name: trace, debug, info, warn, error.
	Level string `yaml:"level" json:"level"`

	// Format is text (console) or json.
	Format string `yaml:"format" json:"format"`

	// File receives logs instead of stderr when set.
	File string `yaml:"file,omitempty" json:"file,omitempty"`

	// Caller adds the calling file and line to each entry.
	Caller bool `yaml:"caller,omitempty" json:"caller,omitempty"`
}

// Validate checks the level and format names.
func (lc *LoggingConfig) Validate() error {
	if _, err := zerolog.ParseLevel(strings.ToLower(lc.Level)); err != nil {
		return fmt.Errorf("level %q: %w", lc.Level, err)
	}
	switch lc.Format {
	case "", "text", "console", "json":
		return nil
	default:
		return fmt.Errorf("format must be text or json, got %q", lc.Format)
	}
}

// ToLoggingConfig converts config.LoggingConfig to logging.Config for use with
// the internal/logging package.
//
// The conversion applies these rules:
//   - Level, Format and Caller are copied directly
//   - If File is set, Output becomes "file" and File is passed through
//   - If File is empty, Output defaults to "stderr"
func (lc *LoggingConfig) ToLoggingConfig() logging.Config {
	output := logging.OutputStderr
	if lc.File != "" {
		output = logging.OutputFile
	}

	return logging.Config{
		Level:  lc.Level,
		Format: lc.Format,
		Output: output,
		File:   lc.File,
		Caller: lc.Caller,
	}
}
