package errors

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/julianstephens/mealtrack/internal/logger"
)

// ErrNotFound is returned by storage providers when no meal has the requested id.
// It is an explicit absence, not a failure.
var ErrNotFound = stderrors.New("meal not found")

// ValidationError reports a caller-supplied meal that breaks a domain rule.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NewValidationError creates a ValidationError for the given field
func NewValidationError(field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is, or wraps, a ValidationError
func IsValidation(err error) bool {
	var ve *ValidationError
	return stderrors.As(err, &ve)
}

// StorageInitError reports that the backing store could not be opened or created.
type StorageInitError struct {
	Location string
	Err      error
}

func (e *StorageInitError) Error() string {
	return fmt.Sprintf("failed to initialize storage at %s: %v", e.Location, e.Err)
}

func (e *StorageInitError) Unwrap() error {
	return e.Err
}

// IsStorageInit reports whether err is, or wraps, a StorageInitError
func IsStorageInit(err error) bool {
	var se *StorageInitError
	return stderrors.As(err, &se)
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}
