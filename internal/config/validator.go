package config

import (
	"fmt"
	"slices"
	"strings"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "ui.render_interval_ms")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, c.validateUI()...)
	errors = append(errors, c.validateRoster()...)
	errors = append(errors, c.validateSave()...)
	errors = append(errors, c.validateLogging()...)

	return errors
}

// validateUI validates the UIConfig
func (c *Config) validateUI() []ValidationError {
	var errors []ValidationError

	if c.UI.Cadence != "" && !IsValidCadence(c.UI.Cadence) {
		errors = append(errors, ValidationError{
			Field:   "ui.cadence",
			Value:   c.UI.Cadence,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidCadences(), ", ")),
		})
	}

	if c.UI.RenderIntervalMs < 0 {
		errors = append(errors, ValidationError{
			Field:   "ui.render_interval_ms",
			Value:   c.UI.RenderIntervalMs,
			Message: "must not be negative",
		})
	} else if c.UI.RenderIntervalMs > 1000 {
		errors = append(errors, ValidationError{
			Field:   "ui.render_interval_ms",
			Value:   c.UI.RenderIntervalMs,
			Message: "must be at most 1000 (anything slower feels broken)",
		})
	}

	return errors
}

// validateRoster validates the RosterConfig
func (c *Config) validateRoster() []ValidationError {
	var errors []ValidationError

	if c.Roster.MaxTotal < 2 {
		errors = append(errors, ValidationError{
			Field:   "roster.max_total",
			Value:   c.Roster.MaxTotal,
			Message: "must be at least 2",
		})
	}

	return errors
}

// validateSave validates the SaveConfig
func (c *Config) validateSave() []ValidationError {
	var errors []ValidationError

	if c.Save.Endpoint != "" &&
		!strings.HasPrefix(c.Save.Endpoint, "http://") &&
		!strings.HasPrefix(c.Save.Endpoint, "https://") {
		errors = append(errors, ValidationError{
			Field:   "save.endpoint",
			Value:   c.Save.Endpoint,
			Message: "must be an http or https URL",
		})
	}

	if c.Save.TimeoutSeconds < 1 {
		errors = append(errors, ValidationError{
			Field:   "save.timeout_seconds",
			Value:   c.Save.TimeoutSeconds,
			Message: "must be at least 1",
		})
	}

	return errors
}

// validateLogging validates the LoggingConfig
func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError

	if c.Logging.Level != "" && !slices.Contains(ValidLogLevels(), c.Logging.Level) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}

	return errors
}
