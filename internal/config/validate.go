package config

import (
	"fmt"
	"strings"
)

// ValidationError describes a single configuration problem.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects all problems found in one pass.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return "config validation failed: " + strings.Join(msgs, "; ")
}

// Validate checks the configuration for correctness. It returns all
// problems found, not just the first.
func (c *Config) Validate() error {
	var errs ValidationErrors

	if c.Library.Dir == "" {
		errs = append(errs, ValidationError{"library.dir", "must not be empty"})
	}

	if err := c.Distribution.Validate(); err != nil {
		errs = append(errs, ValidationError{"distribution", err.Error()})
	}

	if c.Playback.BlankRestMs < 0 {
		errs = append(errs, ValidationError{"playback.blank_rest_ms", "must not be negative"})
	}
	if c.Playback.LeadInSec < 0 {
		errs = append(errs, ValidationError{"playback.lead_in_sec", "must not be negative"})
	}

	if c.History.Enabled && c.History.Path == "" {
		errs = append(errs, ValidationError{"history.path", "must not be empty when history is enabled"})
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, ValidationError{"logging.level", fmt.Sprintf("unknown level %q", c.Logging.Level)})
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		errs = append(errs, ValidationError{"logging.format", fmt.Sprintf("unknown format %q", c.Logging.Format)})
	}
	switch c.Logging.Output {
	case "stdout", "stderr":
	case "file":
		if c.Logging.FilePath == "" {
			errs = append(errs, ValidationError{"logging.file_path", "must not be empty when output is file"})
		}
	default:
		errs = append(errs, ValidationError{"logging.output", fmt.Sprintf("unknown output %q", c.Logging.Output)})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
