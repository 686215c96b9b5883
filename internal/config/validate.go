package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error with context.
type ValidationError struct {
	Field   string
	Message string
	Hint    string
}

func (e ValidationError) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("%s: %s (hint: %s)", e.Field, e.Message, e.Hint)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationWarning represents a non-fatal configuration issue.
type ValidationWarning struct {
	Field   string
	Message string
	Hint    string
}

// ValidationResult contains the results of configuration validation.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationWarning
}

// HasErrors returns true if there are any validation errors.
func (r *ValidationResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// Error returns a combined error message if there are validation errors.
func (r *ValidationResult) Error() string {
	if !r.HasErrors() {
		return ""
	}
	var msgs []string
	for _, e := range r.Errors {
		msgs = append(msgs, e.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate checks the configuration for errors and returns validation results.
// It returns both errors (fatal) and warnings (non-fatal issues).
func (c *Config) Validate() *ValidationResult {
	result := &ValidationResult{}

	c.Schema.validate(result)
	c.Database.validate(result)
	c.Logging.validate(result)

	return result
}

func (s *SchemaConfig) validate(result *ValidationResult) {
	if strings.TrimSpace(s.Path) == "" {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "schema.path",
			Message: "schema file path cannot be empty",
			Hint:    "set schema.path or --schema.path",
		})
	}
	if strings.TrimSpace(s.OutputPath) == "" {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "schema.output_path",
			Message: "output path cannot be empty",
		})
	}
	if s.Path != "" && s.Path == s.OutputPath {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "schema.output_path",
			Message: "output path must differ from the schema path",
			Hint:    "the source file is kept untouched as a diff baseline",
		})
	}
}

func (d *DatabaseConfig) validate(result *ValidationResult) {
	if d.ConnectionString == "" {
		if strings.TrimSpace(d.Host) == "" {
			result.Errors = append(result.Errors, ValidationError{
				Field:   "database.host",
				Message: "host cannot be empty when no DSN is configured",
			})
		}
		if d.Port <= 0 || d.Port > 65535 {
			result.Errors = append(result.Errors, ValidationError{
				Field:   "database.port",
				Message: fmt.Sprintf("port %d is out of range", d.Port),
				Hint:    "use a value between 1 and 65535",
			})
		}
		if strings.TrimSpace(d.User) == "" {
			result.Errors = append(result.Errors, ValidationError{
				Field:   "database.user",
				Message: "user cannot be empty when no DSN is configured",
			})
		}
	}

	if strings.TrimSpace(d.Database) == "" {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "database.database",
			Message: "database name cannot be empty",
			Hint:    "set database.database or include /<database> in database.dsn",
		})
	}

	switch d.TLS.Mode {
	case "", "off", "skip-verify", "verify-ca", "verify-full":
	default:
		result.Errors = append(result.Errors, ValidationError{
			Field:   "database.tls.mode",
			Message: fmt.Sprintf("unknown TLS mode %q", d.TLS.Mode),
			Hint:    "valid modes: off, skip-verify, verify-ca, verify-full",
		})
	}

	if (d.TLS.Mode == "verify-ca" || d.TLS.Mode == "verify-full") && d.TLS.CAFile == "" {
		result.Warnings = append(result.Warnings, ValidationWarning{
			Field:   "database.tls.ca_file",
			Message: "no CA file configured; the system trust store will be used",
		})
	}

	if d.Password != "" && d.PasswordPrompt {
		result.Warnings = append(result.Warnings, ValidationWarning{
			Field:   "database.password_prompt",
			Message: "password already configured; prompt will be skipped",
		})
	}
}

func (l *LoggingConfig) validate(result *ValidationResult) {
	switch l.Level {
	case "", "debug", "info", "warn", "error":
	default:
		result.Errors = append(result.Errors, ValidationError{
			Field:   "logging.level",
			Message: fmt.Sprintf("unknown log level %q", l.Level),
			Hint:    "valid levels: debug, info, warn, error",
		})
	}

	switch l.Format {
	case "", "json", "text":
	default:
		result.Errors = append(result.Errors, ValidationError{
			Field:   "logging.format",
			Message: fmt.Sprintf("unknown log format %q", l.Format),
			Hint:    "valid formats: json, text",
		})
	}
}
