// Package content scans a lesson tree and classifies the files it finds.
//
// The tree has two levels: the content root holds section directories and
// loose files; each section directory holds lesson files. Deeper nesting is
// not traversed.
package content

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	cerrors "git.home.luguber.info/inful/lessonindex/internal/content/errors"
	ferrors "git.home.luguber.info/inful/lessonindex/internal/foundation/errors"
	"git.home.luguber.info/inful/lessonindex/internal/logfields"
)

// File is a classified lesson file.
type File struct {
	Name    string // Base name as listed
	Path    string // Absolute (or root-joined) filesystem path
	RelPath string // Forward-slash path relative to the content root
	Kind    Kind
}

// Dir is a candidate section directory and its eligible files in listing order.
type Dir struct {
	Name    string
	Path    string
	RelPath string
	Files   []File
}

// WarningReason identifies why an entry was skipped.
type WarningReason string

const (
	ReasonUnreadableDirectory  WarningReason = "unreadable_directory"
	ReasonUnsupportedExtension WarningReason = "unsupported_extension"
	ReasonUnresolvableEntry    WarningReason = "unresolvable_entry"
)

// Warning records a non-fatal problem with one path.
type Warning struct {
	Path   string        `json:"path"`
	Reason WarningReason `json:"reason"`
	Err    error         `json:"-"`
}

func (w Warning) String() string {
	if w.Err != nil {
		return fmt.Sprintf("%s: %s: %v", w.Path, w.Reason, w.Err)
	}
	return fmt.Sprintf("%s: %s", w.Path, w.Reason)
}

// Listing is the result of one scan.
type Listing struct {
	Root      string
	Dirs      []Dir
	RootFiles []File
	Warnings  []Warning
}

// FileCount returns the number of eligible files across all directories.
func (l *Listing) FileCount() int {
	n := len(l.RootFiles)
	for _, d := range l.Dirs {
		n += len(d.Files)
	}
	return n
}

// Scanner lists a content root.
type Scanner struct {
	root     string
	exclude  map[string]struct{}
	ignore   *IgnoreRules
	readDir  func(string) ([]os.DirEntry, error)
	statPath func(string) (os.FileInfo, error)
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithExcluded skips the given root-relative paths silently (e.g. the generated manifest).
func WithExcluded(rel ...string) Option {
	return func(s *Scanner) {
		for _, r := range rel {
			s.exclude[filepath.ToSlash(filepath.Clean(r))] = struct{}{}
		}
	}
}

// WithIgnore applies gitignore-style rules.
func WithIgnore(rules *IgnoreRules) Option {
	return func(s *Scanner) { s.ignore = rules }
}

// NewScanner creates a scanner for root.
func NewScanner(root string, opts ...Option) *Scanner {
	s := &Scanner{
		root:     root,
		exclude:  make(map[string]struct{}),
		readDir:  os.ReadDir,
		statPath: os.Stat,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scan lists the content root. A missing or unreadable root is fatal; every
// other problem becomes a Warning on the listing.
func (s *Scanner) Scan() (*Listing, error) {
	info, err := s.statPath(s.root)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ferrors.WrapError(fmt.Errorf("%w: %w", cerrors.ErrContentRootNotFound, err),
			ferrors.CategoryNotFound, "content root does not exist").
			Fatal().WithPath(s.root).Build()
	}
	if err != nil {
		return nil, ferrors.WrapError(fmt.Errorf("%w: %w", cerrors.ErrContentRootUnreadable, err),
			ferrors.CategoryFileSystem, "content root cannot be accessed").
			Fatal().WithPath(s.root).Build()
	}
	if !info.IsDir() {
		return nil, ferrors.WrapError(cerrors.ErrContentRootNotDir, ferrors.CategoryNotFound, "content root is not a directory").
			Fatal().WithPath(s.root).Build()
	}

	entries, err := s.readDir(s.root)
	if err != nil {
		return nil, ferrors.WrapError(fmt.Errorf("%w: %w", cerrors.ErrContentRootUnreadable, err),
			ferrors.CategoryFileSystem, "content root cannot be listed").
			Fatal().WithPath(s.root).Build()
	}

	listing := &Listing{Root: s.root}
	for _, entry := range entries {
		name := entry.Name()
		if s.skip(name, name, entry.IsDir()) {
			continue
		}
		full := filepath.Join(s.root, name)

		isDir, isFile, ok := s.resolve(listing, entry, full, name)
		if !ok || s.ignoredTarget(entry, name, isDir) {
			continue
		}
		switch {
		case isDir:
			listing.Dirs = append(listing.Dirs, s.scanDir(listing, name, full))
		case isFile:
			if f, ok := s.classify(listing, name, full, name); ok {
				listing.RootFiles = append(listing.RootFiles, f)
			}
		default:
			slog.Debug("Skipping non-regular entry", logfields.Path(name))
		}
	}

	slog.Debug("Scanned content root",
		logfields.Path(s.root),
		slog.Int("directories", len(listing.Dirs)),
		slog.Int("root_files", len(listing.RootFiles)),
		slog.Int("warnings", len(listing.Warnings)))
	return listing, nil
}

// scanDir lists one section directory. Subdirectories are not traversed.
func (s *Scanner) scanDir(listing *Listing, dirName, dirPath string) Dir {
	dir := Dir{Name: dirName, Path: dirPath, RelPath: dirName}

	entries, err := s.readDir(dirPath)
	if err != nil {
		s.warn(listing, dirName, ReasonUnreadableDirectory, fmt.Errorf("%w: %w", cerrors.ErrSectionUnreadable, err))
		return dir
	}

	for _, entry := range entries {
		name := entry.Name()
		rel := path.Join(dirName, name)
		if s.skip(name, rel, entry.IsDir()) {
			continue
		}
		full := filepath.Join(dirPath, name)

		isDir, isFile, ok := s.resolve(listing, entry, full, rel)
		if !ok || s.ignoredTarget(entry, rel, isDir) {
			continue
		}
		if isDir {
			slog.Debug("Skipping nested directory", logfields.Path(rel))
			continue
		}
		if !isFile {
			slog.Debug("Skipping non-regular entry", logfields.Path(rel))
			continue
		}
		if f, ok := s.classify(listing, name, full, rel); ok {
			dir.Files = append(dir.Files, f)
		}
	}
	return dir
}

// skip filters hidden, excluded and ignored entries without warning.
func (s *Scanner) skip(name, rel string, isDir bool) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	if _, ok := s.exclude[rel]; ok {
		return true
	}
	if s.ignore.Match(rel, isDir) {
		slog.Debug("Ignoring entry", logfields.Path(rel))
		return true
	}
	return false
}

// ignoredTarget applies directory-only ignore rules to a symlink that
// resolved to a directory. skip saw it as a file.
func (s *Scanner) ignoredTarget(entry os.DirEntry, rel string, isDir bool) bool {
	if !isDir || entry.IsDir() {
		return false
	}
	if s.ignore.Match(rel, true) {
		slog.Debug("Ignoring linked directory", logfields.Path(rel))
		return true
	}
	return false
}

// resolve reports whether an entry is a directory or regular file, following symlinks.
func (s *Scanner) resolve(listing *Listing, entry os.DirEntry, full, rel string) (isDir, isFile, ok bool) {
	if entry.Type()&fs.ModeSymlink == 0 {
		return entry.IsDir(), entry.Type().IsRegular(), true
	}
	info, err := s.statPath(full)
	if err != nil {
		s.warn(listing, rel, ReasonUnresolvableEntry, fmt.Errorf("%w: %w", cerrors.ErrUnresolvableEntry, err))
		return false, false, false
	}
	return info.IsDir(), info.Mode().IsRegular(), true
}

func (s *Scanner) classify(listing *Listing, name, full, rel string) (File, bool) {
	kind, ok := Classify(name)
	if !ok {
		s.warn(listing, rel, ReasonUnsupportedExtension, fmt.Errorf("%w: %q", cerrors.ErrUnsupportedExtension, filepath.Ext(name)))
		return File{}, false
	}
	slog.Debug("Discovered file", logfields.Path(rel), logfields.Kind(string(kind)))
	return File{Name: name, Path: full, RelPath: rel, Kind: kind}, true
}

func (s *Scanner) warn(listing *Listing, rel string, reason WarningReason, err error) {
	listing.Warnings = append(listing.Warnings, Warning{Path: rel, Reason: reason, Err: err})
	slog.Warn("Skipping entry", logfields.Path(rel), logfields.Reason(string(reason)), logfields.Error(err))
}
