package content

import (
	"path/filepath"
	"strings"
)

// Kind is the content kind of a lesson asset, derived from its file extension.
type Kind string

const (
	KindDocument         Kind = "document"
	KindMarkdown         Kind = "markdown"
	KindMarkdownExtended Kind = "markdown-extended"
	KindImage            Kind = "image"
)

var kindByExtension = map[string]Kind{
	".pdf":  KindDocument,
	".md":   KindMarkdown,
	".mdx":  KindMarkdownExtended,
	".png":  KindImage,
	".jpg":  KindImage,
	".jpeg": KindImage,
	".webp": KindImage,
	".gif":  KindImage,
}

// Classify maps a file name to its kind by case-insensitive extension.
// ok is false for any extension outside the fixed table.
func Classify(filename string) (kind Kind, ok bool) {
	kind, ok = kindByExtension[strings.ToLower(filepath.Ext(filename))]
	return kind, ok
}

// IsMarkdown reports whether the kind holds markdown source (plain or extended).
func (k Kind) IsMarkdown() bool {
	return k == KindMarkdown || k == KindMarkdownExtended
}

func (k Kind) String() string { return string(k) }
