package lint

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/inful/mdfp"

	"git.home.luguber.info/inful/lessonindex/internal/frontmatter"
	"git.home.luguber.info/inful/lessonindex/internal/markdown"
)

// Rule names.
const (
	RuleFrontmatter = "frontmatter"
	RuleFingerprint = "frontmatter-fingerprint"
	RuleBrokenLink  = "broken-link"
	RuleBrokenImage = "broken-image"
	RuleOutsideRoot = "link-outside-content"
)

// lesson is one markdown file under check.
type lesson struct {
	root    string // content root on disk
	relPath string // forward-slash path relative to root
	raw     []byte
	doc     *frontmatter.Document
}

// Rule inspects a parsed lesson.
type Rule interface {
	Name() string
	Check(l *lesson) []Issue
}

// DefaultRules returns the rules run by Checker.
func DefaultRules() []Rule {
	return []Rule{fingerprintRule{}, linkRule{}}
}

// fingerprintRule verifies the mdfp content fingerprint of lessons that carry one.
type fingerprintRule struct{}

func (fingerprintRule) Name() string { return RuleFingerprint }

func (r fingerprintRule) Check(l *lesson) []Issue {
	v, ok := l.doc.Fields[mdfp.FingerprintField]
	if !ok {
		return nil
	}
	if s, isString := v.(string); !isString || strings.TrimSpace(s) == "" {
		return []Issue{{Path: l.relPath, Rule: r.Name(), Severity: SeverityError, Message: "fingerprint field is empty or not a string"}}
	}
	valid, err := mdfp.VerifyFingerprint(string(l.raw))
	if err == nil && valid {
		return nil
	}
	msg := "content changed since the fingerprint was computed"
	if err != nil {
		msg = fmt.Sprintf("%s: %v", msg, err)
	}
	return []Issue{{Path: l.relPath, Rule: r.Name(), Severity: SeverityWarning, Message: msg}}
}

// linkRule reports relative links and images whose target is missing.
type linkRule struct{}

func (linkRule) Name() string { return RuleBrokenLink }

func (r linkRule) Check(l *lesson) []Issue {
	var issues []Issue
	lineOffset := l.doc.BodyLine - 1

	for _, link := range markdown.ExtractLinks(l.doc.Body) {
		if link.Kind == markdown.LinkKindReferenceDefinition || link.Kind == markdown.LinkKindAuto {
			continue
		}
		target, ok := localTarget(link.Destination)
		if !ok {
			continue
		}

		line := 0
		if link.Line > 0 {
			line = link.Line + lineOffset
		}
		resolved := path.Join(path.Dir(l.relPath), target)
		if resolved == ".." || strings.HasPrefix(resolved, "../") {
			issues = append(issues, Issue{
				Path: l.relPath, Line: line, Rule: RuleOutsideRoot, Severity: SeverityWarning,
				Message: fmt.Sprintf("%q points outside the content root", link.Destination),
			})
			continue
		}

		_, err := os.Stat(filepath.Join(l.root, filepath.FromSlash(resolved)))
		if err == nil {
			continue
		}
		rule := RuleBrokenLink
		if isImage(link) {
			rule = RuleBrokenImage
		}
		msg := fmt.Sprintf("%q does not exist", link.Destination)
		if !errors.Is(err, fs.ErrNotExist) {
			msg = fmt.Sprintf("%q cannot be accessed: %v", link.Destination, err)
		}
		issues = append(issues, Issue{Path: l.relPath, Line: line, Rule: rule, Severity: SeverityError, Message: msg})
	}
	return issues
}

// localTarget returns the file path of a relative destination. External
// URLs, fragments and site-absolute paths are not checked.
func localTarget(dest string) (string, bool) {
	dest = strings.TrimSpace(dest)
	if dest == "" || strings.HasPrefix(dest, "#") || strings.HasPrefix(dest, "/") {
		return "", false
	}
	u, err := url.Parse(dest)
	if err != nil || u.Scheme != "" || u.Host != "" || u.Path == "" {
		return "", false
	}
	return u.Path, true
}

func isImage(link markdown.Link) bool {
	if link.Kind == markdown.LinkKindImage {
		return true
	}
	return link.Kind == markdown.LinkKindHTML && link.Tag != "a"
}
