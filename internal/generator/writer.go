package generator

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	ferrors "git.home.luguber.info/inful/lessonindex/internal/foundation/errors"
)

// Writer replaces files atomically. Writes to the same path are serialized;
// readers always see either the previous file or the complete new one.
type Writer struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewWriter creates a Writer.
func NewWriter() *Writer {
	return &Writer{locks: make(map[string]*sync.Mutex)}
}

func (w *Writer) lockFor(path string) *sync.Mutex {
	w.mu.Lock()
	defer w.mu.Unlock()
	l, ok := w.locks[path]
	if !ok {
		l = &sync.Mutex{}
		w.locks[path] = l
	}
	return l
}

// Write stores data at path via a temp file in the same directory, fsync and
// rename. Parent directories are created. On failure no temp file is left.
func (w *Writer) Write(path string, data []byte) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = filepath.Clean(path)
	}
	l := w.lockFor(abs)
	l.Lock()
	defer l.Unlock()

	if err := writeAtomic(abs, data); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to write manifest").
			Fatal().
			WithPath(path).
			Build()
	}
	return nil
}

func writeAtomic(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err = os.Chmod(tmpPath, 0o644); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err = os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
