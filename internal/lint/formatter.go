package lint

import (
	"encoding/json"
	"fmt"
	"io"
)

// Output formats accepted by Write.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Write renders result to w in the given format.
func Write(w io.Writer, result *Result, format string) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(result)
	case FormatText, "":
		return writeText(w, result)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func writeText(w io.Writer, result *Result) error {
	for _, issue := range result.Issues {
		loc := issue.Path
		if issue.Line > 0 {
			loc = fmt.Sprintf("%s:%d", issue.Path, issue.Line)
		}
		if _, err := fmt.Fprintf(w, "%s: %s [%s] %s\n", loc, issue.Severity, issue.Rule, issue.Message); err != nil {
			return err
		}
	}
	errs, warns := result.ErrorCount(), result.WarningCount()
	_, err := fmt.Fprintf(w, "%d file%s checked, %d error%s, %d warning%s\n",
		result.FilesChecked, pluralize(result.FilesChecked),
		errs, pluralize(errs),
		warns, pluralize(warns))
	return err
}

func pluralize(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
