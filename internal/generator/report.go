package generator

import (
	"time"

	"git.home.luguber.info/inful/lessonindex/internal/content"
	"git.home.luguber.info/inful/lessonindex/internal/history"
	"git.home.luguber.info/inful/lessonindex/internal/metrics"
)

// Report summarizes one generation run.
type Report struct {
	RunID        string
	ModuleID     string
	StartedAt    time.Time
	GeneratedAt  time.Time
	Duration     time.Duration
	Sections     int
	Items        int
	Warnings     []content.Warning
	OutputPath   string
	SectionsHash string
	// Changed is true when anything but generatedAt differs from the manifest
	// previously on disk.
	Changed bool
	// Written is false only when an unchanged manifest was left in place.
	Written bool
	Outcome metrics.OutcomeLabel
	Err     error
}

// HasWarnings reports whether any entry was skipped or rewritten.
func (r *Report) HasWarnings() bool { return len(r.Warnings) > 0 }

func (r *Report) finish(now time.Time) {
	r.Duration = now.Sub(r.StartedAt)
	switch {
	case r.Err != nil:
		r.Outcome = metrics.OutcomeFatal
	case !r.Written:
		r.Outcome = metrics.OutcomeUnchanged
	case r.HasWarnings():
		r.Outcome = metrics.OutcomeWarning
	default:
		r.Outcome = metrics.OutcomeSuccess
	}
}

// Run converts the report to a history row.
func (r *Report) Run() history.Run {
	run := history.Run{
		RunID:        r.RunID,
		ModuleID:     r.ModuleID,
		StartedAt:    r.StartedAt,
		Duration:     r.Duration,
		Outcome:      string(r.Outcome),
		Sections:     r.Sections,
		Items:        r.Items,
		SectionsHash: r.SectionsHash,
		OutputPath:   r.OutputPath,
		Changed:      r.Changed,
		Warnings:     r.Warnings,
	}
	if r.Err != nil {
		run.Error = r.Err.Error()
	}
	return run
}
