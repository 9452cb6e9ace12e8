package errors

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/julianstephens/habitup/internal/logger"
	"github.com/julianstephens/habitup/internal/storage"
	"github.com/julianstephens/habitup/internal/tracker"
)

// Format prefixes err with "Error: " and appends a hint for known causes.
func Format(err error) string {
	if err == nil {
		return ""
	}
	msg := fmt.Sprintf("Error: %v", err)
	if hint := Hint(err); hint != "" {
		msg += "\n       " + hint
	}
	return msg
}

func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Hint suggests a next step for errors a user can act on.
func Hint(err error) string {
	switch {
	case stderrors.Is(err, tracker.ErrHabitNotFound):
		return "Run 'habitup habit list' to see the habit ids for this owner."
	case stderrors.Is(err, tracker.ErrOwnerNotFound):
		return "Run 'habitup owner list', or create one with 'habitup owner add'."
	case stderrors.Is(err, tracker.ErrInvalidWindow):
		return "Windows must be between 1 and 365 days."
	case stderrors.Is(err, storage.ErrNotInitialized):
		return "Run 'habitup init' first."
	}
	return ""
}

// Fatal logs err and exits with status 1.
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintln(os.Stderr, Format(err))
		os.Exit(1)
	}
}

func Fatalf(format string, args ...interface{}) {
	logger.Error("Command execution failed", "error", fmt.Sprintf(format, args...))
	fmt.Fprintln(os.Stderr, Formatf(format, args...))
	os.Exit(1)
}
