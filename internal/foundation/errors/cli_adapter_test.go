package errors

import (
	"bytes"
	"errors"
	"io/fs"
	"log/slog"
	"strings"
	"testing"
)

func TestCLIErrorAdapter_ExitCodeFor(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, slog.Default())

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "nil error", err: nil, expected: 0},
		{name: "missing content root", err: NotFoundError("content root does not exist").Build(), expected: 1},
		{name: "write failure", err: FileSystemError("write manifest").Build(), expected: 1},
		{name: "unclassified error", err: errors.New("boom"), expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := adapter.ExitCodeFor(tt.err); got != tt.expected {
				t.Errorf("ExitCodeFor() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestCLIErrorAdapter_FormatError(t *testing.T) {
	err := WrapError(fs.ErrNotExist, CategoryNotFound, "content root does not exist").
		Fatal().
		WithPath("public/content/x").
		Build()

	quiet := NewCLIErrorAdapter(false, slog.Default())
	got := quiet.FormatError(err)
	want := "Error: content root does not exist (public/content/x): file does not exist"
	if got != want {
		t.Errorf("FormatError() = %q, want %q", got, want)
	}

	verbose := NewCLIErrorAdapter(true, slog.Default())
	if got := verbose.FormatError(err); !strings.Contains(got, "[not_found/fatal]") {
		t.Errorf("verbose output should include classification, got %q", got)
	}

	if got := quiet.FormatError(nil); got != "" {
		t.Errorf("nil error should format empty, got %q", got)
	}
}

func TestCLIErrorAdapter_Handle(t *testing.T) {
	var logs, out bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	adapter := NewCLIErrorAdapter(false, logger)
	adapter.out = &out

	code := adapter.Handle(FileSystemError("write manifest").WithPath("manifest.json").Build())
	if code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	if !strings.Contains(out.String(), "write manifest") {
		t.Errorf("expected user-facing line, got %q", out.String())
	}
	if !strings.Contains(logs.String(), "level=ERROR") || !strings.Contains(logs.String(), "category=filesystem") {
		t.Errorf("expected structured error log, got %q", logs.String())
	}
}
