package markdown

import (
	"bytes"

	"golang.org/x/net/html"
)

// linkAttrs maps the tags worth inspecting to the attribute holding their target.
var linkAttrs = map[string]string{
	"a":      "href",
	"img":    "src",
	"source": "src",
	"video":  "src",
	"audio":  "src",
	"iframe": "src",
	"embed":  "src",
	"object": "data",
}

// htmlLinks extracts link targets from a raw HTML fragment. Malformed HTML
// yields whatever the tolerant parser recovered.
func htmlLinks(fragment []byte, line int) []Link {
	doc, err := html.Parse(bytes.NewReader(fragment))
	if err != nil {
		return nil
	}

	var links []Link
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if attr, ok := linkAttrs[n.Data]; ok {
				if v := getAttr(n, attr); v != "" {
					links = append(links, Link{Kind: LinkKindHTML, Destination: v, Tag: n.Data, Line: line})
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return links
}

func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}
