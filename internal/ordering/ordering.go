// Package ordering establishes the deterministic sequence of lessons within
// a section, driven by numeric filename prefixes.
package ordering

import (
	"cmp"
	"math"
	"slices"
	"strconv"
)

// Prefix is the numeric ordering prefix of a name. Unnumbered names sort
// after every numbered one regardless of the number's size.
type Prefix struct {
	value    uint64
	numbered bool
}

// Unnumbered is the prefix of a name that does not start with a digit.
var Unnumbered = Prefix{}

// Numbered returns the prefix for a leading number n.
func Numbered(n uint64) Prefix { return Prefix{value: n, numbered: true} }

// ParsePrefix extracts the leading ASCII digits of name. Digit runs too large
// for uint64 saturate instead of failing.
func ParsePrefix(name string) Prefix {
	end := 0
	for end < len(name) && name[end] >= '0' && name[end] <= '9' {
		end++
	}
	if end == 0 {
		return Unnumbered
	}
	n, err := strconv.ParseUint(name[:end], 10, 64)
	if err != nil {
		n = math.MaxUint64
	}
	return Numbered(n)
}

// Value returns the number and whether the prefix is present.
func (p Prefix) Value() (uint64, bool) { return p.value, p.numbered }

// Compare orders numbered prefixes ascending, then unnumbered ones.
func (p Prefix) Compare(o Prefix) int {
	switch {
	case p.numbered && !o.numbered:
		return -1
	case !p.numbered && o.numbered:
		return 1
	case !p.numbered:
		return 0
	}
	return cmp.Compare(p.value, o.value)
}

func (p Prefix) String() string {
	if !p.numbered {
		return "unnumbered"
	}
	return strconv.FormatUint(p.value, 10)
}

// SortByPrefix stable-sorts entries by the prefix of name(entry). Entries with
// equal or absent prefixes keep their incoming (directory listing) order.
func SortByPrefix[T any](entries []T, name func(T) string) {
	slices.SortStableFunc(entries, func(a, b T) int {
		return ParsePrefix(name(a)).Compare(ParsePrefix(name(b)))
	})
}
