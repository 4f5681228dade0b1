// Package enrich attaches derived metadata to lesson items.
package enrich

import (
	"log/slog"
	"math"
	"os"

	"git.home.luguber.info/inful/lessonindex/internal/content"
	"git.home.luguber.info/inful/lessonindex/internal/logfields"
)

// Reading-time heuristic for documents.
const (
	BytesPerWord   = 5
	WordsPerMinute = 200
)

// Metadata is the derived metadata of one item.
type Metadata struct {
	// DurationMinutes is set only for documents. A failed stat yields 0, not nil.
	DurationMinutes *int
	Tags            []string
}

// Enricher computes Metadata for classified files.
type Enricher struct {
	stat func(string) (os.FileInfo, error)
}

// New returns an Enricher that stats files on the local filesystem.
func New() *Enricher {
	return &Enricher{stat: os.Stat}
}

// Enrich returns the metadata for f. It never fails.
func (e *Enricher) Enrich(f content.File) Metadata {
	md := Metadata{Tags: []string{string(f.Kind)}}
	if f.Kind == content.KindDocument {
		minutes := e.estimateMinutes(f)
		md.DurationMinutes = &minutes
	}
	return md
}

func (e *Enricher) estimateMinutes(f content.File) int {
	info, err := e.stat(f.Path)
	if err != nil {
		slog.Debug("Cannot stat document for duration estimate", logfields.Path(f.RelPath), logfields.Error(err))
		return 0
	}
	return EstimateMinutes(info.Size())
}

// EstimateMinutes converts a byte size into whole reading minutes, rounding up.
func EstimateMinutes(size int64) int {
	if size <= 0 {
		return 0
	}
	return int(math.Ceil(float64(size) / BytesPerWord / WordsPerMinute))
}
