// Package naming derives human titles and URL-safe identifiers from lesson
// file and directory names.
package naming

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// MaxIDLength is the hard cap on derived IDs, in bytes. Truncation may cut mid-word.
const MaxIDLength = 50

var (
	orderingPrefix = regexp.MustCompile(`^\d+[ _-]+`)
	lower          = cases.Lower(language.Und)
)

// DeriveTitle turns a file name into a human title:
// "01_ulum-al-quran.pdf" -> "ulum al quran".
func DeriveTitle(filename string) string {
	return DeriveDirTitle(strings.TrimSuffix(filename, filepath.Ext(filename)))
}

// DeriveDirTitle is DeriveTitle for directory names, which carry no extension.
func DeriveDirTitle(name string) string {
	title := norm.NFC.String(name)
	title = orderingPrefix.ReplaceAllString(title, "")
	title = strings.Map(func(r rune) rune {
		if r == '_' || r == '-' {
			return ' '
		}
		return r
	}, title)
	return strings.TrimSpace(title)
}

// DeriveID slugifies a title: lowercase, whitespace runs become a single
// hyphen, everything outside [A-Za-z0-9_-] is dropped, and the result is cut
// to MaxIDLength. Characters are removed rather than transliterated, so an
// all-Arabic title yields an empty ID.
func DeriveID(title string) string {
	s := lower.String(norm.NFC.String(title))

	var b strings.Builder
	b.Grow(len(s))
	inSpace := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			if !inSpace {
				b.WriteByte('-')
			}
			inSpace = true
			continue
		}
		inSpace = false
		if isSlugRune(r) {
			b.WriteRune(r)
		}
	}

	id := b.String()
	if len(id) > MaxIDLength {
		id = id[:MaxIDLength]
	}
	return id
}

// isSlugRune reports whether r survives slugification. Slug runes are all
// ASCII, so byte truncation in DeriveID never splits a rune.
func isSlugRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '_' || r == '-':
		return true
	}
	return false
}
