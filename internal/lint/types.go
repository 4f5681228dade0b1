// Package lint checks markdown lessons for problems the manifest generator
// cannot see: malformed frontmatter, stale content fingerprints and links or
// images that point at files missing from the content tree.
package lint

// Severity indicates the importance level of a linting issue.
type Severity int

const (
	SeverityWarning Severity = iota + 1
	SeverityError
)

// String returns the human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "WARNING"
	case SeverityError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// MarshalText renders the severity by name in JSON output.
func (s Severity) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Issue represents a single linting problem found in a file.
type Issue struct {
	Path     string   `json:"path"` // Relative to the content root
	Line     int      `json:"line,omitempty"`
	Rule     string   `json:"rule"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// Result contains all issues found during one check.
type Result struct {
	Issues       []Issue `json:"issues"`
	FilesChecked int     `json:"filesChecked"`
}

// HasErrors returns true if any error-level issues exist.
func (r *Result) HasErrors() bool { return r.ErrorCount() > 0 }

// HasWarnings returns true if any warning-level issues exist.
func (r *Result) HasWarnings() bool { return r.WarningCount() > 0 }

// ErrorCount returns the number of error-level issues.
func (r *Result) ErrorCount() int { return r.count(SeverityError) }

// WarningCount returns the number of warning-level issues.
func (r *Result) WarningCount() int { return r.count(SeverityWarning) }

func (r *Result) count(s Severity) int {
	n := 0
	for _, issue := range r.Issues {
		if issue.Severity == s {
			n++
		}
	}
	return n
}

// Failed reports whether the result should fail the run. In strict mode
// warnings count as failures.
func (r *Result) Failed(strict bool) bool {
	return r.HasErrors() || (strict && r.HasWarnings())
}
