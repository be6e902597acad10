package shared

import (
	"errors"
	"fmt"
)

// RemediationHint is shown under every error surfaced to the user.
const RemediationHint = "Please check your API key and try again. If the problem persists, try with different inputs."

// ValidationError reports a missing or out-of-range answer.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ConfigurationError reports a credential or setting missing from the process environment.
type ConfigurationError struct {
	Key string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s not found in environment variables", e.Key)
}

// ServiceError wraps any failure of the remote completion call.
type ServiceError struct {
	Provider string
	Err      error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s completion failed: %v", e.Provider, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// EncodingError reports a character the PDF charset cannot represent.
type EncodingError struct {
	Charset string
	Rune    rune
	Line    int
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("character %q (U+%04X) on line %d cannot be encoded in %s", e.Rune, e.Rune, e.Line, e.Charset)
}

// Kind classifies err into one of the error taxonomy labels.
// It returns "none" for nil and "internal" for anything unclassified.
func Kind(err error) string {
	var (
		validationErr *ValidationError
		configErr     *ConfigurationError
		serviceErr    *ServiceError
		encodingErr   *EncodingError
	)
	switch {
	case err == nil:
		return "none"
	case errors.As(err, &validationErr):
		return "validation"
	case errors.As(err, &configErr):
		return "configuration"
	case errors.As(err, &serviceErr):
		return "service"
	case errors.As(err, &encodingErr):
		return "encoding"
	default:
		return "internal"
	}
}

// UserMessage turns err into the single message shown to the user plus the remediation hint.
// Validation failures carry their own guidance, so the hint is empty for them.
func UserMessage(err error) (message, hint string) {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		if validationErr.Field == "name" {
			return "Please enter your name.", ""
		}
		return fmt.Sprintf("Please check the %s field: %s.", validationErr.Field, validationErr.Reason), ""
	}
	return fmt.Sprintf("An error occurred: %v", err), RemediationHint
}
