package errors

import (
	stderrors "errors"
	"fmt"
)

// contextPath is the context key holding the file or directory an error is about.
const contextPath = "path"

// ClassifiedError represents a structured error with category, severity, and context.
type ClassifiedError struct {
	category ErrorCategory
	severity ErrorSeverity
	message  string
	cause    error
	context  ErrorContext
}

// Error renders "category: message (path): cause", omitting absent parts.
func (e *ClassifiedError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.category, e.message)
	if path := e.Path(); path != "" {
		msg += " (" + path + ")"
	}
	if e.cause != nil {
		msg += ": " + e.cause.Error()
	}
	return msg
}

func (e *ClassifiedError) Unwrap() error { return e.cause }

func (e *ClassifiedError) Category() ErrorCategory { return e.category }
func (e *ClassifiedError) Severity() ErrorSeverity { return e.severity }
func (e *ClassifiedError) Message() string         { return e.message }
func (e *ClassifiedError) Cause() error            { return e.cause }
func (e *ClassifiedError) Context() ErrorContext   { return e.context }

// Path returns the file or directory the error concerns, or "".
func (e *ClassifiedError) Path() string {
	path, _ := e.context.GetString(contextPath)
	return path
}

// IsFatal reports whether the run must abort.
func (e *ClassifiedError) IsFatal() bool {
	return e.severity == SeverityFatal
}

// AsClassified finds the first ClassifiedError in err's chain.
func AsClassified(err error) (*ClassifiedError, bool) {
	var classified *ClassifiedError
	if stderrors.As(err, &classified) {
		return classified, true
	}
	return nil, false
}

// HasCategory reports whether the first ClassifiedError in err's chain has category.
func HasCategory(err error, category ErrorCategory) bool {
	classified, ok := AsClassified(err)
	return ok && classified.category == category
}

// IsFatal reports whether err aborts a run. Unclassified errors do.
func IsFatal(err error) bool {
	if classified, ok := AsClassified(err); ok {
		return classified.IsFatal()
	}
	return err != nil
}
