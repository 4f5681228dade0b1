package markdown

import (
	"bytes"
	"sort"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// ExtractLinks parses a Markdown body (frontmatter already removed) and
// returns every link-like destination in document order, followed by
// reference definitions sorted by label. Code spans and code blocks are not
// inspected.
func ExtractLinks(body []byte) []Link {
	md := goldmark.New()
	ctx := parser.NewContext()
	root := md.Parser().Parse(text.NewReader(body), parser.WithContext(ctx))

	links := make([]Link, 0)
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *gmast.AutoLink:
			links = append(links, Link{Kind: LinkKindAuto, Destination: string(node.URL(body)), Line: lineOf(n, body)})
		case *gmast.Image:
			links = append(links, Link{Kind: LinkKindImage, Destination: string(node.Destination), Line: lineOf(n, body)})
		case *gmast.Link:
			// Reference-style links arrive here already resolved.
			links = append(links, Link{Kind: LinkKindInline, Destination: string(node.Destination), Line: lineOf(n, body)})
		case *gmast.HTMLBlock:
			var raw bytes.Buffer
			lines := node.Lines()
			for i := 0; i < lines.Len(); i++ {
				seg := lines.At(i)
				raw.Write(seg.Value(body))
			}
			if node.HasClosure() {
				raw.Write(node.ClosureLine.Value(body))
			}
			links = append(links, htmlLinks(raw.Bytes(), lineOf(n, body))...)
		case *gmast.RawHTML:
			var raw bytes.Buffer
			for i := 0; i < node.Segments.Len(); i++ {
				seg := node.Segments.At(i)
				raw.Write(seg.Value(body))
			}
			links = append(links, htmlLinks(raw.Bytes(), lineOf(n, body))...)
		}
		return gmast.WalkContinue, nil
	})

	// Reference definitions live in the parse context, not the AST.
	refs := ctx.References()
	sort.Slice(refs, func(i, j int) bool {
		return string(refs[i].Label()) < string(refs[j].Label())
	})
	for _, ref := range refs {
		links = append(links, Link{Kind: LinkKindReferenceDefinition, Destination: string(ref.Destination())})
	}

	return links
}

// lineOf returns the 1-based line of the nearest enclosing block with source lines.
func lineOf(n gmast.Node, body []byte) int {
	for cur := n; cur != nil; cur = cur.Parent() {
		if cur.Type() != gmast.TypeBlock {
			continue
		}
		lines := cur.Lines()
		if lines == nil || lines.Len() == 0 {
			continue
		}
		start := lines.At(0).Start
		if start > len(body) {
			return 0
		}
		return bytes.Count(body[:start], []byte("\n")) + 1
	}
	return 0
}
