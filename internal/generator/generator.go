// Package generator runs the manifest pipeline: scan, assemble, write, and
// report to the optional side channels (metrics, run history, notifications).
package generator

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/lessonindex/internal/config"
	"git.home.luguber.info/inful/lessonindex/internal/content"
	"git.home.luguber.info/inful/lessonindex/internal/history"
	"git.home.luguber.info/inful/lessonindex/internal/logfields"
	"git.home.luguber.info/inful/lessonindex/internal/manifest"
	"git.home.luguber.info/inful/lessonindex/internal/metrics"
	"git.home.luguber.info/inful/lessonindex/internal/notify"
)

// ReasonUnreadableIgnoreFile is recorded when the ignore file exists but cannot be read.
const ReasonUnreadableIgnoreFile content.WarningReason = "unreadable_ignore_file"

// RunRecorder persists run reports.
type RunRecorder interface {
	Record(ctx context.Context, run history.Run) error
}

// Publisher announces written manifests.
type Publisher interface {
	Publish(ctx context.Context, ev notify.Event) error
}

// Generator produces the manifest for one configured content module.
type Generator struct {
	cfg           *config.Config
	recorder      metrics.Recorder
	history       RunRecorder
	publisher     Publisher
	writer        *Writer
	now           func() time.Time
	newRunID      func() string
	skipUnchanged bool
}

// Option configures a Generator.
type Option func(*Generator)

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(g *Generator) {
		if r != nil {
			g.recorder = r
		}
	}
}

// WithHistory records every run, fatal ones included.
func WithHistory(h RunRecorder) Option {
	return func(g *Generator) { g.history = h }
}

// WithPublisher announces every run that wrote a manifest.
func WithPublisher(p Publisher) Option {
	return func(g *Generator) { g.publisher = p }
}

// WithWriter shares a Writer (and its per-path locks) between generators.
func WithWriter(w *Writer) Option {
	return func(g *Generator) { g.writer = w }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// WithSkipUnchanged leaves the manifest on disk untouched when its sections
// already match, so consumers see a new generatedAt only when content changed.
func WithSkipUnchanged(skip bool) Option {
	return func(g *Generator) { g.skipUnchanged = skip }
}

// New creates a Generator.
func New(cfg *config.Config, opts ...Option) *Generator {
	g := &Generator{
		cfg:      cfg,
		recorder: metrics.NoopRecorder{},
		writer:   NewWriter(),
		now:      time.Now,
		newRunID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate runs the pipeline once. The report is returned even on failure;
// err is non-nil only for fatal conditions.
func (g *Generator) Generate(ctx context.Context) (*Report, error) {
	report := &Report{
		RunID:      g.newRunID(),
		ModuleID:   g.cfg.Module.ID,
		StartedAt:  g.now(),
		OutputPath: g.cfg.OutputPath(),
	}
	log := slog.With(logfields.RunID(report.RunID), logfields.Module(report.ModuleID))

	report.Err = g.run(ctx, log, report)
	report.finish(g.now())
	g.observe(report)

	if g.history != nil {
		if err := g.history.Record(ctx, report.Run()); err != nil {
			log.Warn("Failed to record run history", logfields.Error(err))
		}
	}

	if report.Err != nil {
		log.Error("Manifest generation failed", logfields.Error(report.Err))
		return report, report.Err
	}

	if report.Written && g.publisher != nil {
		g.publish(ctx, log, report)
	}

	log.Info("Manifest generation completed",
		logfields.Path(report.OutputPath),
		slog.Int("sections", report.Sections),
		slog.Int("items", report.Items),
		slog.Int("warnings", len(report.Warnings)),
		slog.Bool("written", report.Written),
		logfields.Hash(report.SectionsHash),
		logfields.DurationMS(float64(report.Duration.Milliseconds())))
	return report, nil
}

func (g *Generator) run(ctx context.Context, log *slog.Logger, report *Report) error {
	root := g.cfg.Content.Root

	stage := g.now()
	ignore, err := content.LoadIgnore(root, g.cfg.Content.IgnoreFile)
	if err != nil {
		report.Warnings = append(report.Warnings, content.Warning{Path: g.cfg.Content.IgnoreFile, Reason: ReasonUnreadableIgnoreFile, Err: err})
		log.Warn("Ignoring unreadable ignore file", logfields.Path(g.cfg.Content.IgnoreFile), logfields.Error(err))
	}
	listing, err := content.NewScanner(root,
		content.WithExcluded(g.cfg.Content.Output),
		content.WithIgnore(ignore),
	).Scan()
	if err != nil {
		return err
	}
	report.Warnings = append(report.Warnings, listing.Warnings...)
	g.recorder.ObserveStageDuration(metrics.StageScan, g.now().Sub(stage))
	if err := ctx.Err(); err != nil {
		return err
	}

	stage = g.now()
	m, idWarnings, err := g.assembler().Assemble(listing)
	if err != nil {
		return err
	}
	report.Warnings = append(report.Warnings, idWarnings...)
	report.GeneratedAt = m.GeneratedAt
	report.Sections = len(m.Sections)
	report.Items = m.ItemCount()
	for _, s := range m.Sections {
		log.Info("Section", logfields.Section(s.ID), slog.String("title", s.Title), logfields.Count(len(s.Items)))
	}

	hash, err := m.SectionsHash()
	if err != nil {
		return err
	}
	report.SectionsHash = hash
	contentHash, err := m.ContentHash()
	if err != nil {
		return err
	}
	report.Changed = existingContentHash(report.OutputPath) != contentHash
	g.recorder.ObserveStageDuration(metrics.StageAssemble, g.now().Sub(stage))

	if g.skipUnchanged && !report.Changed {
		log.Debug("Manifest content unchanged, keeping existing file", logfields.Hash(contentHash))
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	stage = g.now()
	data, err := m.ToJSON()
	if err != nil {
		return err
	}
	if err := g.writer.Write(report.OutputPath, data); err != nil {
		return err
	}
	report.Written = true
	g.recorder.ObserveStageDuration(metrics.StageWrite, g.now().Sub(stage))
	return nil
}

func (g *Generator) assembler() *manifest.Assembler {
	mod := g.cfg.Module
	return manifest.NewAssembler(manifest.Identity{
		ModuleID:    mod.ID,
		Title:       mod.Title,
		Description: mod.Description,
		Language:    mod.Language,
		Direction:   string(mod.Direction),
		Version:     mod.Version,
	}, g.cfg.Content.RootSectionTitle,
		manifest.WithClock(g.now),
		manifest.WithFailOnDuplicate(g.cfg.IDs.OnDuplicate == config.DuplicateFail),
	)
}

func (g *Generator) observe(report *Report) {
	g.recorder.ObserveGenerationDuration(report.Duration)
	g.recorder.IncGenerationOutcome(report.Outcome)
	for _, w := range report.Warnings {
		g.recorder.IncScanWarning(string(w.Reason))
	}
	if report.Err == nil {
		g.recorder.SetManifestSize(report.Sections, report.Items)
	}
}

func (g *Generator) publish(ctx context.Context, log *slog.Logger, report *Report) {
	ev := notify.Event{
		RunID:        report.RunID,
		ModuleID:     report.ModuleID,
		Version:      g.cfg.Module.Version,
		GeneratedAt:  report.GeneratedAt,
		SectionsHash: report.SectionsHash,
		Sections:     report.Sections,
		Items:        report.Items,
	}
	if err := g.publisher.Publish(ctx, ev); err != nil {
		log.Warn("Failed to publish manifest event", logfields.Error(err))
	}
}

// existingContentHash returns the content hash of the manifest at path, or ""
// if there is none or it cannot be parsed.
func existingContentHash(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			slog.Debug("Cannot read existing manifest", logfields.Path(path), logfields.Error(err))
		}
		return ""
	}
	m, err := manifest.FromJSON(data)
	if err != nil {
		slog.Debug("Existing manifest is not valid JSON", logfields.Path(path), logfields.Error(err))
		return ""
	}
	hash, err := m.ContentHash()
	if err != nil {
		return ""
	}
	return hash
}
