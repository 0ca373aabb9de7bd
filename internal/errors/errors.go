// Package errors provides the application error type for Haneul.
package errors

import (
	"errors"
	"strings"
)

// ============================================================
// Error Categories
// ============================================================

// Category defines the type of error for handling decisions.
type Category int

const (
	// CategoryUpstream errors come from an external service (NWS, LLM backend).
	CategoryUpstream Category = iota

	// CategoryPermanent errors are not recoverable (malformed response, bad input)
	CategoryPermanent

	// CategoryConfig errors are fatal configuration problems (missing API key)
	CategoryConfig
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryUpstream:
		return "upstream"
	case CategoryPermanent:
		return "permanent"
	case CategoryConfig:
		return "config"
	default:
		return "unknown"
	}
}

// ============================================================
// Error Codes
// ============================================================

const (
	// CodeWeatherUnavailable covers every NWS failure mode: transport
	// errors, non-2xx statuses, and missing JSON fields alike.
	CodeWeatherUnavailable = "WEATHER_UNAVAILABLE"

	// CodeModelUnavailable covers LLM transport failures and non-2xx statuses.
	CodeModelUnavailable = "MODEL_UNAVAILABLE"

	// CodeModelInvalidResponse marks an LLM response missing the expected text field.
	CodeModelInvalidResponse = "MODEL_INVALID_RESPONSE"

	// CodeConfigInvalid marks fatal configuration errors such as a missing API key.
	CodeConfigInvalid = "CONFIG_INVALID"
)

// ============================================================
// AppError
// ============================================================

// AppError is the main error type for all Haneul errors.
type AppError struct {
	// Code is a unique error code for programmatic handling
	Code string

	// Message is a user-friendly error message
	Message string

	// Category determines how the error should be handled
	Category Category

	// Inner is the underlying error
	Inner error
}

// Error returns the error message.
func (e *AppError) Error() string {
	var sb strings.Builder

	if e.Code != "" {
		sb.WriteString("[")
		sb.WriteString(e.Code)
		sb.WriteString("] ")
	}

	sb.WriteString(e.Message)

	if e.Inner != nil {
		innerMsg := e.Inner.Error()
		if innerMsg != "" && innerMsg != e.Message {
			sb.WriteString(": ")
			sb.WriteString(innerMsg)
		}
	}

	return sb.String()
}

// Unwrap returns the underlying error.
func (e *AppError) Unwrap() error {
	return e.Inner
}

// ============================================================
// Constructors
// ============================================================

// New creates a new AppError.
func New(code, message string, category Category) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		Category: category,
	}
}

// Wrap wraps an existing error with code and category.
func Wrap(err error, code, message string, category Category) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Code:     code,
		Message:  message,
		Category: category,
		Inner:    err,
	}
}

// Upstream creates an external-service error.
func Upstream(code, message string) *AppError {
	return New(code, message, CategoryUpstream)
}

// Config creates a fatal configuration error.
func Config(message string) *AppError {
	return New(CodeConfigInvalid, message, CategoryConfig)
}

// GetCode extracts the error code, or "" for non-application errors.
func GetCode(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// HasCode reports whether err carries the given application error code.
func HasCode(err error, code string) bool {
	return GetCode(err) == code
}
