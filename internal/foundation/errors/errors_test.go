package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"
)

func TestNewError_DefaultSeverityByCategory(t *testing.T) {
	tests := []struct {
		build *ErrorBuilder
		want  ErrorSeverity
	}{
		{ConfigError("bad config"), SeverityFatal},
		{ValidationError("duplicate id"), SeverityFatal},
		{NotFoundError("content root does not exist"), SeverityFatal},
		{FileSystemError("write manifest"), SeverityFatal},
		{ContentWarning("unsupported extension"), SeverityWarning},
		{HistoryError("record run"), SeverityError},
		{NotifyError("publish"), SeverityError},
		{InternalError("bug"), SeverityFatal},
		{NewError("custom", "unknown category"), SeverityError},
	}
	for _, tt := range tests {
		err := tt.build.Build()
		t.Run(string(err.Category()), func(t *testing.T) {
			if err.Severity() != tt.want {
				t.Errorf("severity = %s, want %s", err.Severity(), tt.want)
			}
		})
	}
}

func TestErrorBuilder(t *testing.T) {
	err := NewError(CategoryConfig, "invalid configuration").
		Warning().
		WithContext("field", "module.direction").
		Build()

	if err.Category() != CategoryConfig || err.Message() != "invalid configuration" {
		t.Fatalf("unexpected error %v", err)
	}
	if err.IsFatal() {
		t.Error("Warning() must override the category default")
	}
	if field, ok := err.Context().GetString("field"); !ok || field != "module.direction" {
		t.Errorf("expected context field=module.direction, got %q", field)
	}
	if _, ok := err.Context().GetString("missing"); ok {
		t.Error("missing key must not be found")
	}
}

func TestErrorBuilder_BuildCopiesContext(t *testing.T) {
	b := FileSystemError("write manifest")
	first := b.WithPath("a.json").Build()
	second := b.WithPath("b.json").Build()

	if first.Path() != "a.json" || second.Path() != "b.json" {
		t.Fatalf("paths leaked between builds: %q, %q", first.Path(), second.Path())
	}
}

func TestClassifiedError_ErrorString(t *testing.T) {
	err := WrapError(fs.ErrPermission, CategoryFileSystem, "write manifest").
		WithPath("content/manifest.json").
		Build()

	if !errors.Is(err, fs.ErrPermission) {
		t.Fatal("expected wrapped cause to be reachable through errors.Is")
	}
	want := "filesystem: write manifest (content/manifest.json): permission denied"
	if err.Error() != want {
		t.Fatalf("Error() = %q, want %q", err.Error(), want)
	}
	if got := ValidationError("duplicate id").Build().Error(); got != "validation: duplicate id" {
		t.Fatalf("Error() = %q", got)
	}
}

func TestAsClassifiedThroughWrapping(t *testing.T) {
	inner := ValidationError("duplicate id").Build()
	outer := fmt.Errorf("assemble: %w", inner)

	classified, ok := AsClassified(outer)
	if !ok {
		t.Fatal("expected classified error to be found in chain")
	}
	if !HasCategory(outer, CategoryValidation) || HasCategory(outer, CategoryConfig) {
		t.Fatalf("unexpected category %s", classified.Category())
	}
	if _, ok := AsClassified(errors.New("plain")); ok {
		t.Fatal("plain errors are not classified")
	}
}

func TestIsFatal(t *testing.T) {
	if IsFatal(nil) {
		t.Error("nil is not fatal")
	}
	if !IsFatal(errors.New("plain")) {
		t.Error("unclassified errors abort the run")
	}
	if IsFatal(fmt.Errorf("wrapped: %w", NotifyError("publish").Build())) {
		t.Error("notify errors never abort the run")
	}
	if !IsFatal(NotFoundError("content root does not exist").Build()) {
		t.Error("missing content root aborts the run")
	}
}
