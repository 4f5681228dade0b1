package errors

// Package errors provides sentinel errors for content scanning.
// Scanner failures wrap one of these so callers can classify them with errors.Is.

import "errors"

var (
	// ErrContentRootNotFound indicates the configured content root does not exist.
	ErrContentRootNotFound = errors.New("content root not found")

	// ErrContentRootNotDir indicates the content root exists but is not a directory.
	ErrContentRootNotDir = errors.New("content root is not a directory")

	// ErrContentRootUnreadable indicates listing the content root itself failed.
	ErrContentRootUnreadable = errors.New("content root unreadable")

	// ErrSectionUnreadable indicates listing a section directory failed.
	ErrSectionUnreadable = errors.New("section directory unreadable")

	// ErrUnsupportedExtension indicates a file whose extension maps to no content kind.
	ErrUnsupportedExtension = errors.New("unsupported file extension")

	// ErrUnresolvableEntry indicates a symlink or entry that could not be stat'ed.
	ErrUnresolvableEntry = errors.New("unresolvable directory entry")

	// ErrIgnoreFileRead indicates the ignore file exists but could not be read.
	ErrIgnoreFileRead = errors.New("ignore file read failed")
)
