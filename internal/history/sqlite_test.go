package history

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/lessonindex/internal/content"
)

func openMemory(t *testing.T) *Store {
	t.Helper()
	store, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestRecordAndList(t *testing.T) {
	store := openMemory(t)
	ctx := t.Context()
	started := time.Date(2026, 5, 2, 8, 0, 0, 0, time.UTC)

	first := Run{
		RunID:        "run-1",
		ModuleID:     "ulum-al-quran",
		StartedAt:    started,
		Duration:     42 * time.Millisecond,
		Outcome:      "success",
		Sections:     2,
		Items:        5,
		SectionsHash: "abc",
		OutputPath:   "public/content/ulum-al-quran/manifest.json",
		Changed:      true,
	}
	second := first
	second.RunID = "run-2"
	second.StartedAt = started.Add(time.Minute)
	second.Outcome = "warning"
	second.Changed = false
	second.Warnings = []content.Warning{{Path: "01_intro/notes.docx", Reason: content.ReasonUnsupportedExtension}}

	require.NoError(t, store.Record(ctx, first))
	require.NoError(t, store.Record(ctx, second))

	runs, err := store.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	assert.Equal(t, "run-2", runs[0].RunID)
	assert.False(t, runs[0].Changed)
	require.Len(t, runs[0].Warnings, 1)
	assert.Equal(t, content.ReasonUnsupportedExtension, runs[0].Warnings[0].Reason)

	assert.Equal(t, "run-1", runs[1].RunID)
	assert.True(t, runs[1].Changed)
	assert.Equal(t, started, runs[1].StartedAt)
	assert.Equal(t, 42*time.Millisecond, runs[1].Duration)
	assert.Equal(t, 5, runs[1].Items)
	assert.Empty(t, runs[1].Warnings)
}

func TestListLimit(t *testing.T) {
	store := openMemory(t)
	ctx := t.Context()
	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, store.Record(ctx, Run{RunID: id, ModuleID: "m", StartedAt: time.Now(), Outcome: "success", OutputPath: "x"}))
	}

	runs, err := store.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "c", runs[0].RunID)
	assert.Equal(t, "b", runs[1].RunID)
}

func TestRecordDuplicateRunIDFails(t *testing.T) {
	store := openMemory(t)
	ctx := t.Context()
	run := Run{RunID: "same", ModuleID: "m", StartedAt: time.Now(), Outcome: "success", OutputPath: "x"}
	require.NoError(t, store.Record(ctx, run))

	err := store.Record(ctx, run)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRecordFailed))
}

func TestOpen_PersistsToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Record(t.Context(), Run{RunID: "r", ModuleID: "m", StartedAt: time.Now(), Outcome: "fatal", OutputPath: "x", Error: "boom"}))
	require.NoError(t, store.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()
	runs, err := reopened.List(t.Context(), 0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "boom", runs[0].Error)
}
