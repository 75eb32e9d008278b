package errors

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/rythm/internal/logger"
)

var (
	// ErrMalformedDate is returned for input that is not a valid YYYY-MM-DD calendar day
	ErrMalformedDate = errors.New("malformed date")
	// ErrStoreUnavailable is returned when the log store could not answer a query
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrNotAuthenticated is returned when no user identity could be resolved
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrNotFound is returned by stores when no record exists for a key
	ErrNotFound = errors.New("not found")
	// ErrSystemLimit is returned when a user already holds the maximum number of systems
	ErrSystemLimit = errors.New("system limit reached")
)

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// New returns an error that formats as the given text.
func New(text string) error {
	return errors.New(text)
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}
