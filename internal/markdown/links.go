// Package markdown extracts link targets from lesson markdown.
package markdown

// LinkKind identifies the construct a link was found in.
type LinkKind string

const (
	LinkKindInline              LinkKind = "inline"
	LinkKindImage               LinkKind = "image"
	LinkKindAuto                LinkKind = "auto"
	LinkKindReferenceDefinition LinkKind = "reference_definition"
	// LinkKindHTML covers href/src attributes inside raw HTML and JSX-like tags.
	LinkKindHTML LinkKind = "html"
)

// Link is one extracted destination.
type Link struct {
	Kind        LinkKind
	Destination string
	Tag         string // HTML tag for LinkKindHTML, empty otherwise
	Line        int    // 1-based line in the body, 0 when unknown
}
