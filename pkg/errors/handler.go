package errors

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// ErrorHandler provides centralized error handling and logging
type ErrorHandler struct {
	logFile   *os.File
	logWriter io.Writer
	errorLog  []ErrorLogEntry
	mu        sync.Mutex
	config    ErrorHandlerConfig
}

// ErrorHandlerConfig configures the error handler
type ErrorHandlerConfig struct {
	LogToFile     bool
	LogFilePath   string
	MaxLogEntries int
}

// ErrorLogEntry represents a logged error
type ErrorLogEntry struct {
	Timestamp   time.Time              `json:"timestamp"`
	Code        ErrorCode              `json:"code"`
	Severity    ErrorSeverity          `json:"severity"`
	Message     string                 `json:"message"`
	Context     map[string]interface{} `json:"context,omitempty"`
	Recoverable bool                   `json:"recoverable"`
}

// DefaultErrorHandlerConfig returns default configuration
func DefaultErrorHandlerConfig() ErrorHandlerConfig {
	homeDir, _ := os.UserHomeDir()
	return ErrorHandlerConfig{
		LogToFile:     true,
		LogFilePath:   filepath.Join(homeDir, ".oraflake", "errors.log"),
		MaxLogEntries: 1000,
	}
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(config ErrorHandlerConfig) (*ErrorHandler, error) {
	handler := &ErrorHandler{
		config:   config,
		errorLog: make([]ErrorLogEntry, 0),
	}

	if config.LogToFile {
		logDir := filepath.Dir(config.LogFilePath)
		if err := os.MkdirAll(logDir, 0700); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}

		file, err := os.OpenFile(config.LogFilePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}

		handler.logFile = file
		handler.logWriter = file
	} else {
		handler.logWriter = os.Stderr
	}

	return handler, nil
}

// Handle processes an error with full context
func (h *ErrorHandler) Handle(err error) {
	if err == nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	appErr, ok := err.(*AppError)
	if !ok {
		appErr = Wrap(err, ErrCodeInternal, err.Error())
	}

	entry := ErrorLogEntry{
		Timestamp:   appErr.Timestamp,
		Code:        appErr.Code,
		Severity:    appErr.Severity,
		Message:     appErr.Message,
		Context:     appErr.Context,
		Recoverable: appErr.Recoverable,
	}

	h.errorLog = append(h.errorLog, entry)
	if len(h.errorLog) > h.config.MaxLogEntries {
		h.errorLog = h.errorLog[1:]
	}

	h.writeLog(entry)
}

// RecentErrors returns a copy of the in-memory error log
func (h *ErrorHandler) RecentErrors() []ErrorLogEntry {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]ErrorLogEntry, len(h.errorLog))
	copy(out, h.errorLog)
	return out
}

// Close releases the log file if one is open
func (h *ErrorHandler) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.logFile != nil {
		err := h.logFile.Close()
		h.logFile = nil
		return err
	}
	return nil
}

func (h *ErrorHandler) writeLog(entry ErrorLogEntry) {
	data, err := json.Marshal(entry)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to marshal error log entry: %v\n", err)
		return
	}
	fmt.Fprintln(h.logWriter, string(data))
}

var (
	globalHandler     *ErrorHandler
	globalHandlerOnce sync.Once
)

// GetGlobalErrorHandler returns the shared error handler, creating it on first use
func GetGlobalErrorHandler() *ErrorHandler {
	globalHandlerOnce.Do(func() {
		handler, err := NewErrorHandler(DefaultErrorHandlerConfig())
		if err != nil {
			// Fall back to stderr-only logging
			handler = &ErrorHandler{
				config:    ErrorHandlerConfig{MaxLogEntries: 1000},
				logWriter: os.Stderr,
			}
		}
		globalHandler = handler
	})
	return globalHandler
}
