package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeErrorDevelopment(t *testing.T) {
	t.Setenv("ENVIRONMENT", "development")

	err := errors.New("database connection to 10.0.0.5 refused")
	assert.Equal(t, "database connection to 10.0.0.5 refused", sanitizeError(err))
}

func TestSanitizeErrorProduction(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "database errors", input: "database connection refused", expected: "database operation failed"},
		{name: "sql errors", input: "sql: no rows", expected: "database operation failed"},
		{name: "network errors", input: "network unreachable", expected: "connection error occurred"},
		{name: "timeouts", input: "request timeout exceeded", expected: "request timed out"},
		{name: "not found", input: "statement not found", expected: "resource not found"},
		{name: "everything else", input: "some internal detail", expected: "an error occurred"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizeError(errors.New(tt.input)))
		})
	}
}

func TestSanitizeErrorNil(t *testing.T) {
	assert.Equal(t, "", sanitizeError(nil))
}
