// Package history persists a log of generation runs in SQLite.
package history

import (
	"time"

	"git.home.luguber.info/inful/lessonindex/internal/content"
)

// Run is one persisted generation outcome.
type Run struct {
	ID           int64
	RunID        string
	ModuleID     string
	StartedAt    time.Time
	Duration     time.Duration
	Outcome      string
	Sections     int
	Items        int
	SectionsHash string
	OutputPath   string
	Changed      bool
	Warnings     []content.Warning
	Error        string // Empty unless Outcome is fatal
}
