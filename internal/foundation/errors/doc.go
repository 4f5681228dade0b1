// Package errors provides the classified error primitives used across lessonindex.
//
// Every failure that reaches the command boundary is either fatal (the run
// aborts, no manifest is written) or a warning (the offending file or
// directory is skipped and the run continues). ClassifiedError carries that
// distinction together with a category and structured context.
//
// Example usage:
//
//	err := errors.NotFoundError("content root does not exist").
//		WithPath(root).
//		WithCause(statErr).
//		Build()
package errors
