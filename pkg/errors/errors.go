package errors

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
	"time"
)

// ErrorCode represents a unique error code for categorizing errors
type ErrorCode string

const (
	// Connection errors (1xxx)
	ErrCodeConnectionFailed     ErrorCode = "OFK1001"
	ErrCodeConnectionTimeout    ErrorCode = "OFK1002"
	ErrCodeAuthenticationFailed ErrorCode = "OFK1003"
	ErrCodeNetworkUnavailable   ErrorCode = "OFK1004"

	// Configuration errors (2xxx)
	ErrCodeConfigNotFound   ErrorCode = "OFK2001"
	ErrCodeConfigInvalid    ErrorCode = "OFK2002"
	ErrCodeConfigPermission ErrorCode = "OFK2003"

	// Validation errors (3xxx)
	ErrCodeValidationFailed     ErrorCode = "OFK3001"
	ErrCodeDecodeFailed         ErrorCode = "OFK3002"
	ErrCodeEmptyInput           ErrorCode = "OFK3003"
	ErrCodeUnsupportedStatement ErrorCode = "OFK3004"
	ErrCodeInvalidInput         ErrorCode = "OFK3005"

	// SQL execution errors (4xxx)
	ErrCodeSQLExecution  ErrorCode = "OFK4001"
	ErrCodeSQLSyntax     ErrorCode = "OFK4002"
	ErrCodeSQLPermission ErrorCode = "OFK4003"
	ErrCodeSQLTimeout    ErrorCode = "OFK4004"

	// File system errors (5xxx)
	ErrCodeFileNotFound   ErrorCode = "OFK5001"
	ErrCodeFilePermission ErrorCode = "OFK5002"
	ErrCodeFileOperation  ErrorCode = "OFK5003"

	// System errors (9xxx)
	ErrCodeInternal           ErrorCode = "OFK9001"
	ErrCodeTimeout            ErrorCode = "OFK9002"
	ErrCodeServiceUnavailable ErrorCode = "OFK9003"
	ErrCodeResourceExhausted  ErrorCode = "OFK9004"
)

// ErrorSeverity represents the severity level of an error
type ErrorSeverity string

const (
	SeverityCritical ErrorSeverity = "CRITICAL" // System failure, requires immediate attention
	SeverityError    ErrorSeverity = "ERROR"    // Operation failed, but system continues
	SeverityWarning  ErrorSeverity = "WARNING"  // Operation succeeded with issues
	SeverityInfo     ErrorSeverity = "INFO"     // Informational, not an error
)

// AppError represents a structured application error with context
type AppError struct {
	Code        ErrorCode
	Message     string
	Severity    ErrorSeverity
	Context     map[string]interface{}
	Cause       error
	Stack       string
	Timestamp   time.Time
	Recoverable bool
	Suggestions []string
}

// Error implements the error interface
func (e *AppError) Error() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("[%s] %s: %s", e.Code, e.Severity, e.Message))

	if e.Cause != nil {
		b.WriteString(fmt.Sprintf("\nCaused by: %v", e.Cause))
	}

	if len(e.Suggestions) > 0 {
		b.WriteString("\nSuggestions:")
		for i, suggestion := range e.Suggestions {
			b.WriteString(fmt.Sprintf("\n  %d. %s", i+1, suggestion))
		}
	}

	return b.String()
}

// Unwrap returns the cause of the error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is implements error comparison
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// New creates a new AppError
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:        code,
		Message:     message,
		Severity:    SeverityError,
		Context:     make(map[string]interface{}),
		Stack:       captureStack(),
		Timestamp:   time.Now(),
		Recoverable: false,
	}
}

// Wrap wraps an existing error with AppError
func Wrap(err error, code ErrorCode, message string) *AppError {
	if err == nil {
		return nil
	}

	appErr := New(code, message)
	appErr.Cause = err

	// Inherit context when wrapping another AppError
	if ae, ok := err.(*AppError); ok {
		for k, v := range ae.Context {
			appErr.Context[k] = v
		}
	}

	return appErr
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// WithSeverity sets the error severity
func (e *AppError) WithSeverity(severity ErrorSeverity) *AppError {
	e.Severity = severity
	return e
}

// WithSuggestions adds recovery suggestions
func (e *AppError) WithSuggestions(suggestions ...string) *AppError {
	e.Suggestions = append(e.Suggestions, suggestions...)
	return e
}

// AsRecoverable marks the error as recoverable
func (e *AppError) AsRecoverable() *AppError {
	e.Recoverable = true
	return e
}

// captureStack captures the current stack trace
func captureStack() string {
	const depth = 32
	var pcs [depth]uintptr
	n := runtime.Callers(3, pcs[:])

	var b strings.Builder
	frames := runtime.CallersFrames(pcs[:n])

	for {
		frame, more := frames.Next()
		if !strings.Contains(frame.File, "runtime/") {
			b.WriteString(fmt.Sprintf("%s:%d %s\n", frame.File, frame.Line, frame.Function))
		}
		if !more {
			break
		}
	}

	return b.String()
}

// Common error constructors

// ConnectionError creates a connection-related error
func ConnectionError(message string, cause error) *AppError {
	return Wrap(cause, ErrCodeConnectionFailed, message).
		WithSeverity(SeverityError).
		WithSuggestions(
			"Check your network connection",
			"Verify the Snowflake endpoint is accessible",
			"Check firewall settings",
		)
}

// ConfigError creates a configuration-related error
func ConfigError(message string, field string) *AppError {
	return New(ErrCodeConfigInvalid, message).
		WithContext("field", field).
		WithSuggestions(
			fmt.Sprintf("Check the '%s' configuration value", field),
			"Run 'oraflake setup' to reconfigure",
		)
}

// ValidationError creates a validation error for a rejected input file
func ValidationError(message string, file string) *AppError {
	return New(ErrCodeValidationFailed, message).
		WithContext("file", file).
		WithSuggestions(
			"Ensure the file contains only DML statements (SELECT, INSERT, UPDATE, DELETE, WITH)",
			"Remove DDL statements such as CREATE or ALTER before migrating",
		)
}

// SQLError creates an SQL execution error
func SQLError(message string, query string, cause error) *AppError {
	err := Wrap(cause, ErrCodeSQLExecution, message).
		WithContext("query", truncateString(query, 200))

	if strings.Contains(message, "permission") || strings.Contains(message, "access denied") {
		err.Code = ErrCodeSQLPermission
		_ = err.WithSuggestions(
			"Check user permissions in Snowflake",
			"Verify the role has required privileges",
		)
	} else if strings.Contains(message, "timeout") {
		err.Code = ErrCodeSQLTimeout
		_ = err.AsRecoverable()
	}

	return err
}

// FileError creates a file system error
func FileError(message string, path string, cause error) *AppError {
	return Wrap(cause, ErrCodeFileOperation, message).
		WithContext("path", path)
}

// Helper functions

// IsRecoverable checks if an error is recoverable
func IsRecoverable(err error) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Recoverable
	}
	return false
}

// GetErrorCode extracts the error code from an error
func GetErrorCode(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ErrCodeInternal
}

// GetSeverity extracts the severity from an error
func GetSeverity(err error) ErrorSeverity {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Severity
	}
	return SeverityError
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
