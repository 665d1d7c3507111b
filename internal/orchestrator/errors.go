package orchestrator

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"informal-cli/internal/form"
	"informal-cli/internal/interactive"
)

// Error types for different categories of failures
var (
	ErrConfigurationInvalid = errors.New("configuration error")
	ErrFormNotFound         = errors.New("form not found")
	ErrFormInvalid          = errors.New("form error")
	ErrInputFailed          = errors.New("input error")
	ErrOutputFailed         = errors.New("output error")
	ErrValidationFailed     = errors.New("validation error")
)

// InformalError represents a structured error with actionable guidance
type InformalError struct {
	Type     error
	Message  string
	Guidance string
	Cause    error
}

func (e *InformalError) Error() string {
	if e.Guidance != "" {
		return fmt.Sprintf("%s: %s\n\nSuggestion: %s", e.Type, e.Message, e.Guidance)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *InformalError) Unwrap() error {
	return e.Cause
}

// Is matches the error category so callers can test errors.Is(err, ErrInputFailed)
func (e *InformalError) Is(target error) bool {
	return e.Type == target
}

// Error constructors with actionable guidance

func NewConfigurationError(message string, cause error) *InformalError {
	guidance := "Check your configuration file syntax and values. " +
		"Use 'informal --config /path/to/config.toml' to specify a different config file."

	if strings.Contains(message, "permission") || (cause != nil && strings.Contains(cause.Error(), "permission")) {
		guidance = "Check file permissions for your configuration directory. " +
			"Ensure you have read access to ~/.config/informal/"
	} else if cause != nil && strings.Contains(cause.Error(), "backend") {
		guidance = "Set backend to 'line', 'survey' or 'tui' in config.toml, " +
			"INFORMAL_BACKEND or --backend."
	}

	return &InformalError{
		Type:     ErrConfigurationInvalid,
		Message:  message,
		Guidance: guidance,
		Cause:    cause,
	}
}

func NewFormError(name string, cause error) *InformalError {
	if errors.Is(cause, form.ErrFormNotFound) {
		return &InformalError{
			Type:    ErrFormNotFound,
			Message: fmt.Sprintf("form '%s' not found", name),
			Guidance: fmt.Sprintf("Pass a path to a YAML form, or place '%s.yaml' in your forms_location. "+
				"Form names are case-insensitive.", name),
			Cause: cause,
		}
	}

	guidance := "Check the form definition. Every question needs a unique name made of letters, " +
		"digits and underscores, and a known type."
	if strings.Contains(cause.Error(), "default") {
		guidance = "A question default must parse as the question type, for example '8080' for uint " +
			"or '30s' for duration."
	} else if strings.Contains(cause.Error(), "render") || strings.Contains(cause.Error(), "parse prompt") {
		guidance = "Prompt templates can only refer to answers of earlier questions, " +
			"for example {{ .name }}."
	}

	return &InformalError{
		Type:     ErrFormInvalid,
		Message:  fmt.Sprintf("invalid form '%s'", name),
		Guidance: guidance,
		Cause:    cause,
	}
}

func NewInputError(cause error) *InformalError {
	message := "failed to read an answer"
	guidance := "Check that standard input is readable."

	switch {
	case errors.Is(cause, interactive.ErrCancelled):
		message = "input cancelled"
		guidance = ""
	case errors.Is(cause, io.EOF):
		message = "input ended before a valid answer was given"
		guidance = "When piping answers, provide one line per question. " +
			"Empty lines select the default where one is set."
	}

	return &InformalError{
		Type:     ErrInputFailed,
		Message:  message,
		Guidance: guidance,
		Cause:    cause,
	}
}

func NewOutputError(target string, cause error) *InformalError {
	message := fmt.Sprintf("failed to output to target '%s'", target)
	guidance := "Check that the output target is valid and accessible."

	if target == "clipboard" {
		guidance = "Clipboard access failed. Ensure you're running in a graphical environment " +
			"or try using --target stdout instead."
	} else if strings.HasPrefix(target, "file:") {
		filePath := strings.TrimPrefix(target, "file:")
		guidance = fmt.Sprintf("Failed to write to file '%s'. Check that the directory exists "+
			"and you have write permissions.", filePath)
	}

	return &InformalError{
		Type:     ErrOutputFailed,
		Message:  message,
		Guidance: guidance,
		Cause:    cause,
	}
}

func NewValidationError(field string, value interface{}, reason string) *InformalError {
	message := fmt.Sprintf("validation failed for %s: %v (%s)", field, value, reason)
	guidance := "Check the input value and ensure it meets the required format."

	switch field {
	case "target":
		guidance = "Target must be 'clipboard', 'stdout', or 'file:/path/to/file'. " +
			"Example: --target file:/tmp/answer.txt"
	case "format":
		guidance = "Format must be 'yaml', 'json' or 'env'."
	case "config_path":
		guidance = "Configuration file path must be valid and accessible. " +
			"Ensure the file exists and you have read permissions."
	case "question":
		guidance = "Check --type, --min, --max, --pattern and --one-of. Bounds apply to numbers, " +
			"durations, decimals, versions and string lengths; patterns and choices to strings only."
	case "form":
		guidance = "Give the form as a path or as a name found in forms_location."
	}

	return &InformalError{
		Type:     ErrValidationFailed,
		Message:  message,
		Guidance: guidance,
		Cause:    nil,
	}
}

// Recovery strategies

// RecoverFromError attempts to recover from common errors with fallback strategies
func RecoverFromError(err error) error {
	if err == nil {
		return nil
	}

	var informalErr *InformalError
	if !errors.As(err, &informalErr) {
		// Wrap unknown errors
		return &InformalError{
			Type:     errors.New("unknown error"),
			Message:  err.Error(),
			Guidance: "An unexpected error occurred. Please check your inputs and try again.",
			Cause:    err,
		}
	}

	switch informalErr.Type {
	case ErrConfigurationInvalid:
		return recoverFromConfigError(informalErr)
	case ErrFormNotFound:
		return recoverFromFormError(informalErr)
	case ErrOutputFailed:
		return recoverFromOutputError(informalErr)
	default:
		return informalErr
	}
}

func recoverFromConfigError(err *InformalError) error {
	homeDir, homeErr := os.UserHomeDir()
	if homeErr != nil {
		return err
	}

	configDir := filepath.Join(homeDir, ".config", "informal")
	if _, statErr := os.Stat(configDir); os.IsNotExist(statErr) {
		if mkdirErr := os.MkdirAll(configDir, 0755); mkdirErr != nil {
			err.Guidance += fmt.Sprintf("\n\nAttempted to create config directory '%s' but failed: %v",
				configDir, mkdirErr)
			return err
		}

		err.Guidance += fmt.Sprintf("\n\nCreated config directory '%s'. You can now create a config.toml file there.",
			configDir)
	}

	return err
}

func recoverFromFormError(err *InformalError) error {
	err.Guidance += "\n\nRun 'informal form ./path/to/form.yaml' to use a form outside forms_location."
	return err
}

func recoverFromOutputError(err *InformalError) error {
	if strings.Contains(err.Message, "clipboard") {
		err.Guidance += "\n\nTry using --target stdout as a fallback."
	}
	return err
}

// IsRecoverableError checks if an error can be recovered from
func IsRecoverableError(err error) bool {
	var informalErr *InformalError
	if !errors.As(err, &informalErr) {
		return false
	}

	switch informalErr.Type {
	case ErrOutputFailed:
		return strings.Contains(informalErr.Message, "clipboard")
	default:
		return false
	}
}
