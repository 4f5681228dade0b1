package watch

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/lessonindex/internal/config"
	ferrors "git.home.luguber.info/inful/lessonindex/internal/foundation/errors"
	"git.home.luguber.info/inful/lessonindex/internal/generator"
)

type countingGenerator struct {
	calls atomic.Int32
	err   error
}

func (g *countingGenerator) Generate(context.Context) (*generator.Report, error) {
	g.calls.Add(1)
	if g.err != nil {
		return nil, g.err
	}
	return &generator.Report{Written: true}, nil
}

func testConfig(root string) *config.Config {
	cfg := config.Default()
	cfg.Content.Root = root
	cfg.Watch.Debounce = 20 * time.Millisecond
	cfg.Watch.ResyncInterval = 0
	return cfg
}

func startWatcher(t *testing.T, w *Watcher) (cancel func(), done <-chan error) {
	t.Helper()
	ctx, cancelCtx := context.WithCancel(t.Context())
	errCh := make(chan error, 1)
	go func() { errCh <- w.Run(ctx) }()

	select {
	case <-w.Ready():
	case err := <-errCh:
		cancelCtx()
		t.Fatalf("watcher exited early: %v", err)
	case <-time.After(5 * time.Second):
		cancelCtx()
		t.Fatal("watcher not ready")
	}
	return cancelCtx, errCh
}

func TestRun_RegeneratesOnChange(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "01_intro"), 0o755))
	gen := &countingGenerator{}
	w := New(testConfig(root), gen)

	cancel, done := startWatcher(t, w)
	assert.Equal(t, int32(1), gen.calls.Load())

	for i := range 5 {
		name := filepath.Join(root, "01_intro", "lesson"+string(rune('a'+i))+".md")
		require.NoError(t, os.WriteFile(name, []byte("x"), 0o644))
	}
	require.Eventually(t, func() bool { return gen.calls.Load() >= 2 }, 5*time.Second, 10*time.Millisecond)
	time.Sleep(100 * time.Millisecond)
	assert.LessOrEqual(t, gen.calls.Load(), int32(3), "bursts are coalesced")

	cancel()
	require.NoError(t, <-done)
}

func TestRun_IgnoresOwnOutputAndHiddenFiles(t *testing.T) {
	root := t.TempDir()
	gen := &countingGenerator{}
	cfg := testConfig(root)
	w := New(cfg, gen)

	cancel, done := startWatcher(t, w)
	require.NoError(t, os.WriteFile(cfg.OutputPath(), []byte("{}"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".manifest.json.tmp-1"), []byte("{}"), 0o644))
	time.Sleep(200 * time.Millisecond)
	assert.Equal(t, int32(1), gen.calls.Load())

	require.NoError(t, os.WriteFile(filepath.Join(root, cfg.Content.IgnoreFile), []byte("drafts/\n"), 0o644))
	require.Eventually(t, func() bool { return gen.calls.Load() == 2 }, 5*time.Second, 10*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}

func TestRun_WatchesNewSectionDirectories(t *testing.T) {
	root := t.TempDir()
	gen := &countingGenerator{}
	w := New(testConfig(root), gen)

	cancel, done := startWatcher(t, w)
	require.NoError(t, os.MkdirAll(filepath.Join(root, "02_new"), 0o755))
	require.Eventually(t, func() bool { return gen.calls.Load() == 2 }, 5*time.Second, 10*time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(root, "02_new", "a.md"), []byte("a"), 0o644))
	require.Eventually(t, func() bool { return gen.calls.Load() == 3 }, 5*time.Second, 10*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}

func TestRun_PeriodicResync(t *testing.T) {
	root := t.TempDir()
	gen := &countingGenerator{}
	cfg := testConfig(root)
	cfg.Watch.ResyncInterval = 50 * time.Millisecond
	w := New(cfg, gen)

	cancel, done := startWatcher(t, w)
	require.Eventually(t, func() bool { return gen.calls.Load() >= 3 }, 5*time.Second, 10*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}

func TestRun_MissingRootFails(t *testing.T) {
	gen := &countingGenerator{err: ferrors.NotFoundError("content root does not exist").Build()}
	w := New(testConfig(filepath.Join(t.TempDir(), "missing")), gen)

	err := w.Run(t.Context())
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryNotFound))
}

func TestRun_ServesMetrics(t *testing.T) {
	root := t.TempDir()
	handler := http.HandlerFunc(func(rw http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(rw, "lessonindex_manifest_items 0\n")
	})
	w := New(testConfig(root), &countingGenerator{}, WithMetrics("127.0.0.1:0", handler))

	cancel, done := startWatcher(t, w)
	resp, err := http.Get("http://" + w.MetricsAddr() + "/metrics")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	require.NoError(t, err)
	assert.Contains(t, string(body), "lessonindex_manifest_items")

	cancel()
	require.NoError(t, <-done)
}

func TestShouldIgnoreEvent(t *testing.T) {
	w := New(testConfig("/content"), &countingGenerator{})
	assert.True(t, w.shouldIgnoreEvent("/content/manifest.json"))
	assert.True(t, w.shouldIgnoreEvent("/content/01_a/.DS_Store"))
	assert.True(t, w.shouldIgnoreEvent("/content/01_a/notes.md~"))
	assert.True(t, w.shouldIgnoreEvent("/content/01_a/.notes.md.swp"))
	assert.False(t, w.shouldIgnoreEvent("/content/.contentignore"))
	assert.False(t, w.shouldIgnoreEvent("/content/01_a/1_intro.md"))
}
