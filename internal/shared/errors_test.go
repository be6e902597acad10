package shared

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKind(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, "none"},
		{"validation", &ValidationError{Field: "name", Reason: "required"}, "validation"},
		{"configuration", &ConfigurationError{Key: "GROQ_API_KEY"}, "configuration"},
		{"wrapped service", fmt.Errorf("generate: %w", &ServiceError{Provider: "groq", Err: errors.New("boom")}), "service"},
		{"encoding", &EncodingError{Charset: "ISO-8859-1", Rune: '✓', Line: 2}, "encoding"},
		{"other", errors.New("disk full"), "internal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Kind(tt.err))
		})
	}
}

func TestUserMessage(t *testing.T) {
	t.Run("MissingName", func(t *testing.T) {
		msg, hint := UserMessage(&ValidationError{Field: "name", Reason: "required"})
		assert.Equal(t, "Please enter your name.", msg)
		assert.Empty(t, hint)
	})

	t.Run("ServiceFailure", func(t *testing.T) {
		msg, hint := UserMessage(&ServiceError{Provider: "groq", Err: errors.New("quota exceeded")})
		assert.Contains(t, msg, "quota exceeded")
		assert.Equal(t, RemediationHint, hint)
	})

	t.Run("MissingCredential", func(t *testing.T) {
		msg, hint := UserMessage(&ConfigurationError{Key: "GROQ_API_KEY"})
		assert.Equal(t, "An error occurred: GROQ_API_KEY not found in environment variables", msg)
		assert.Equal(t, RemediationHint, hint)
	})
}

func TestServiceErrorUnwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := &ServiceError{Provider: "openai", Err: cause}
	assert.ErrorIs(t, err, cause)
}
