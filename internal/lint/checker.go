package lint

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"git.home.luguber.info/inful/lessonindex/internal/content"
	"git.home.luguber.info/inful/lessonindex/internal/frontmatter"
	"git.home.luguber.info/inful/lessonindex/internal/logfields"
)

// Checker lints every markdown lesson the manifest generator would list.
type Checker struct {
	root     string
	scanOpts []content.Option
	rules    []Rule
}

// NewChecker creates a checker for root. Scanner options (ignore rules,
// exclusions) are applied so the checked set matches the manifest.
func NewChecker(root string, opts ...content.Option) *Checker {
	return &Checker{root: root, scanOpts: opts, rules: DefaultRules()}
}

// Check scans the content root and lints each markdown or mdx file. Only a
// missing or unreadable content root is returned as an error.
func (c *Checker) Check(ctx context.Context) (*Result, error) {
	listing, err := content.NewScanner(c.root, c.scanOpts...).Scan()
	if err != nil {
		return nil, err
	}

	files := listing.RootFiles
	for _, d := range listing.Dirs {
		files = append(files, d.Files...)
	}

	result := &Result{}
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !f.Kind.IsMarkdown() {
			continue
		}
		result.FilesChecked++
		result.Issues = append(result.Issues, c.checkFile(f)...)
	}

	slog.Debug("Checked lessons",
		logfields.Path(c.root),
		logfields.Count(result.FilesChecked),
		slog.Int("errors", result.ErrorCount()),
		slog.Int("warnings", result.WarningCount()))
	return result, nil
}

func (c *Checker) checkFile(f content.File) []Issue {
	// #nosec G304 -- path comes from the content scan.
	raw, err := os.ReadFile(f.Path)
	if err != nil {
		return []Issue{{Path: f.RelPath, Rule: RuleFrontmatter, Severity: SeverityError, Message: fmt.Sprintf("cannot read file: %v", err)}}
	}

	doc, err := frontmatter.Parse(raw)
	if err != nil {
		return []Issue{{Path: f.RelPath, Line: 1, Rule: RuleFrontmatter, Severity: SeverityError, Message: err.Error()}}
	}

	l := &lesson{root: c.root, relPath: f.RelPath, raw: raw, doc: doc}
	var issues []Issue
	for _, rule := range c.rules {
		issues = append(issues, rule.Check(l)...)
	}
	return issues
}
