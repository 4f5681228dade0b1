// Package watch regenerates the manifest while lesson files change.
package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-co-op/gocron/v2"

	"git.home.luguber.info/inful/lessonindex/internal/config"
	ferrors "git.home.luguber.info/inful/lessonindex/internal/foundation/errors"
	"git.home.luguber.info/inful/lessonindex/internal/generator"
	"git.home.luguber.info/inful/lessonindex/internal/logfields"
)

const shutdownTimeout = 5 * time.Second

// Generator runs one manifest generation.
type Generator interface {
	Generate(ctx context.Context) (*generator.Report, error)
}

// Watcher drives a Generator from filesystem events and a periodic resync.
type Watcher struct {
	root           string
	outputPath     string
	ignoreFile     string
	gen            Generator
	debounce       time.Duration
	resync         time.Duration
	metricsAddr    string
	metricsHandler http.Handler

	ready     chan struct{}
	boundAddr string
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithMetrics serves handler at /metrics on addr. An empty addr disables it.
func WithMetrics(addr string, handler http.Handler) Option {
	return func(w *Watcher) {
		w.metricsAddr = addr
		w.metricsHandler = handler
	}
}

// New creates a Watcher for the content module described by cfg.
func New(cfg *config.Config, gen Generator, opts ...Option) *Watcher {
	w := &Watcher{
		root:       cfg.Content.Root,
		outputPath: cfg.OutputPath(),
		ignoreFile: cfg.Content.IgnoreFile,
		gen:        gen,
		debounce:   cfg.Watch.Debounce,
		resync:     cfg.Watch.ResyncInterval,
		ready:      make(chan struct{}),
	}
	if w.debounce <= 0 {
		w.debounce = config.DefaultDebounce
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Ready is closed once the initial generation ran and events are being watched.
func (w *Watcher) Ready() <-chan struct{} { return w.ready }

// MetricsAddr returns the bound metrics address after Ready, or "".
func (w *Watcher) MetricsAddr() string { return w.boundAddr }

// Run blocks until ctx is canceled. A missing content root at startup is
// returned as an error; later generation failures are logged and retried on
// the next change.
func (w *Watcher) Run(ctx context.Context) error {
	if _, err := w.gen.Generate(ctx); err != nil {
		if ferrors.HasCategory(err, ferrors.CategoryNotFound) {
			return err
		}
		slog.Warn("Initial generation failed; waiting for changes", logfields.Error(err))
	}

	fsw, err := w.setupFileWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = fsw.Close() }()

	deb := newDebouncer(w.debounce)
	defer deb.stop()

	sched, err := w.startScheduler(deb)
	if err != nil {
		return err
	}
	defer func() {
		if err := sched.Shutdown(); err != nil {
			slog.Warn("Scheduler shutdown error", logfields.Error(err))
		}
	}()

	srv, err := w.startMetricsServer()
	if err != nil {
		return err
	}
	defer stopServer(srv)

	var wg sync.WaitGroup
	workerCtx, cancelWorker := context.WithCancel(ctx)
	defer func() {
		cancelWorker()
		wg.Wait()
	}()
	wg.Add(1)
	go func() {
		defer wg.Done()
		w.rebuildWorker(workerCtx, deb.req)
	}()

	slog.Info("Watching content for changes",
		logfields.Path(w.root),
		slog.Duration("debounce", w.debounce),
		slog.Duration("resync", w.resync))
	close(w.ready)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Stopping watch mode")
			return nil
		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			w.handleFileEvent(fsw, ev, deb)
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			slog.Warn("Watcher error", logfields.Error(err))
		}
	}
}

// setupFileWatcher watches the root and its immediate subdirectories, the
// only levels the scanner reads.
func (w *Watcher) setupFileWatcher() (*fsnotify.Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("fsnotify: %w", err)
	}
	if err := fsw.Add(w.root); err != nil {
		_ = fsw.Close()
		return nil, ferrors.WrapError(err, ferrors.CategoryFileSystem, "cannot watch content root").
			Fatal().WithPath(w.root).Build()
	}
	entries, err := os.ReadDir(w.root)
	if err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("list content root: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() && !strings.HasPrefix(e.Name(), ".") {
			w.addDir(fsw, filepath.Join(w.root, e.Name()))
		}
	}
	return fsw, nil
}

func (w *Watcher) addDir(fsw *fsnotify.Watcher, dir string) {
	if err := fsw.Add(dir); err != nil {
		slog.Warn("Cannot watch directory", logfields.Path(dir), logfields.Error(err))
	}
}

func (w *Watcher) startScheduler(deb *debouncer) (gocron.Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create gocron scheduler: %w", err)
	}
	if w.resync > 0 {
		_, err = s.NewJob(
			gocron.DurationJob(w.resync),
			gocron.NewTask(func() {
				slog.Debug("Periodic resync")
				deb.request()
			}),
			gocron.WithName("manifest-resync"),
			gocron.WithSingletonMode(gocron.LimitModeReschedule),
		)
		if err != nil {
			_ = s.Shutdown()
			return nil, fmt.Errorf("failed to create resync job: %w", err)
		}
	}
	s.Start()
	return s, nil
}

func (w *Watcher) startMetricsServer() (*http.Server, error) {
	if w.metricsAddr == "" || w.metricsHandler == nil {
		return nil, nil
	}
	ln, err := net.Listen("tcp", w.metricsAddr)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "cannot listen for metrics").
			Fatal().WithContext("addr", w.metricsAddr).Build()
	}
	w.boundAddr = ln.Addr().String()

	mux := http.NewServeMux()
	mux.Handle("/metrics", w.metricsHandler)
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Metrics server failed", logfields.Error(err))
		}
	}()
	slog.Info("Serving metrics", logfields.Addr(w.boundAddr))
	return srv, nil
}

func stopServer(srv *http.Server) {
	if srv == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Warn("Metrics server shutdown error", logfields.Error(err))
	}
}

// rebuildWorker runs one generation per request. Requests arriving during a
// run collapse into the single buffered slot.
func (w *Watcher) rebuildWorker(ctx context.Context, req <-chan struct{}) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-req:
			report, err := w.gen.Generate(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				slog.Warn("Regeneration failed", logfields.Error(err))
				continue
			}
			if report != nil && report.Written {
				slog.Info("Manifest updated", logfields.RunID(report.RunID), logfields.Hash(report.SectionsHash))
			}
		}
	}
}

func (w *Watcher) handleFileEvent(fsw *fsnotify.Watcher, ev fsnotify.Event, deb *debouncer) {
	if w.shouldIgnoreEvent(ev.Name) {
		return
	}
	if ev.Op.Has(fsnotify.Create) && filepath.Dir(ev.Name) == filepath.Clean(w.root) {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
			w.addDir(fsw, ev.Name)
		}
	}
	slog.Debug("File change detected", logfields.Path(ev.Name), slog.String("op", ev.Op.String()))
	deb.trigger()
}

// shouldIgnoreEvent filters events that cannot change the manifest. The
// ignore file is hidden but still relevant; the writer's temp files are hidden.
func (w *Watcher) shouldIgnoreEvent(path string) bool {
	if filepath.Clean(path) == filepath.Clean(w.outputPath) {
		return true
	}
	base := filepath.Base(path)
	if w.ignoreFile != "" && base == w.ignoreFile {
		return false
	}
	if strings.HasPrefix(base, ".") || strings.HasPrefix(base, "#") {
		return true
	}
	return strings.HasSuffix(base, "~") ||
		strings.HasSuffix(base, ".swp") ||
		strings.HasSuffix(base, ".swx")
}
