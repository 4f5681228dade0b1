package content

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/format/gitignore"

	cerrors "git.home.luguber.info/inful/lessonindex/internal/content/errors"
)

// IgnoreRules excludes entries from a scan using gitignore syntax.
// A nil *IgnoreRules matches nothing.
type IgnoreRules struct {
	matcher gitignore.Matcher
	count   int
}

// ParseIgnore builds rules from gitignore-formatted data. Blank lines and
// '#' comments are skipped.
func ParseIgnore(data []byte) *IgnoreRules {
	var patterns []gitignore.Pattern
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, gitignore.ParsePattern(line, nil))
	}
	return &IgnoreRules{matcher: gitignore.NewMatcher(patterns), count: len(patterns)}
}

// LoadIgnore reads the ignore file name inside root. A missing file yields nil rules.
func LoadIgnore(root, name string) (*IgnoreRules, error) {
	if name == "" {
		return nil, nil
	}
	data, err := os.ReadFile(filepath.Join(root, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", cerrors.ErrIgnoreFileRead, name, err)
	}
	return ParseIgnore(data), nil
}

// Match reports whether the forward-slash path rel (relative to the content root) is ignored.
func (r *IgnoreRules) Match(rel string, isDir bool) bool {
	if r == nil || r.count == 0 {
		return false
	}
	return r.matcher.Match(strings.Split(rel, "/"), isDir)
}

// Len returns the number of patterns.
func (r *IgnoreRules) Len() int {
	if r == nil {
		return 0
	}
	return r.count
}
