// Package frontmatter separates YAML frontmatter from lesson markdown.
package frontmatter

import (
	"bytes"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ErrMissingClosingDelimiter indicates the document started with a YAML
// frontmatter delimiter but did not contain a closing delimiter.
var ErrMissingClosingDelimiter = errors.New("yaml frontmatter start delimiter found but closing delimiter is missing")

// Document is a markdown file split into frontmatter fields and body.
type Document struct {
	Fields         map[string]any
	Body           []byte
	HasFrontmatter bool
	// BodyLine is the 1-based file line on which Body starts.
	BodyLine int
}

// Parse splits content and decodes its frontmatter. A document without
// frontmatter yields empty Fields and the whole input as Body.
func Parse(content []byte) (*Document, error) {
	raw, body, had, err := Split(content)
	if err != nil {
		return nil, err
	}
	fields, err := ParseYAML(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid YAML frontmatter: %w", err)
	}
	return &Document{
		Fields:         fields,
		Body:           body,
		HasFrontmatter: had,
		BodyLine:       bytes.Count(content[:len(content)-len(body)], []byte("\n")) + 1,
	}, nil
}

// String returns the string field key, or "" when absent or not a string.
func (d *Document) String(key string) string {
	s, _ := d.Fields[key].(string)
	return s
}

// Split separates YAML frontmatter (`---` delimited) from the Markdown body.
// Both LF and CRLF documents are accepted.
func Split(content []byte) (frontmatter []byte, body []byte, had bool, err error) {
	nl := detectNewline(content)
	open := []byte("---" + nl)
	if !bytes.HasPrefix(content, open) {
		return nil, content, false, nil
	}

	start := len(open)
	if bytes.HasPrefix(content[start:], open) {
		return []byte{}, content[start+len(open):], true, nil
	}

	closeSeq := []byte(nl + "---" + nl)
	idx := bytes.Index(content[start:], closeSeq)
	if idx < 0 {
		return nil, nil, false, ErrMissingClosingDelimiter
	}

	end := start + idx + len(nl)
	return content[start:end], content[start+idx+len(closeSeq):], true, nil
}

// ParseYAML parses raw YAML frontmatter (without --- delimiters) into a map.
func ParseYAML(frontmatter []byte) (map[string]any, error) {
	if len(bytes.TrimSpace(frontmatter)) == 0 {
		return map[string]any{}, nil
	}

	var fields map[string]any
	if err := yaml.Unmarshal(frontmatter, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return fields, nil
}

func detectNewline(content []byte) string {
	if i := bytes.IndexByte(content, '\n'); i > 0 && content[i-1] == '\r' {
		return "\r\n"
	}
	return "\n"
}
