package ordering

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePrefix(t *testing.T) {
	n, ok := ParsePrefix("02_b.md").Value()
	require.True(t, ok)
	assert.Equal(t, uint64(2), n)

	n, ok = ParsePrefix("12 - asbab.pdf").Value()
	require.True(t, ok)
	assert.Equal(t, uint64(12), n)

	_, ok = ParsePrefix("c.md").Value()
	assert.False(t, ok)

	_, ok = ParsePrefix("").Value()
	assert.False(t, ok)

	n, ok = ParsePrefix("99999999999999999999999_huge.md").Value()
	require.True(t, ok)
	assert.Equal(t, uint64(math.MaxUint64), n)
}

func TestPrefixCompare(t *testing.T) {
	assert.Equal(t, -1, Numbered(1).Compare(Numbered(2)))
	assert.Equal(t, 0, Numbered(7).Compare(Numbered(7)))
	assert.Equal(t, -1, Numbered(math.MaxUint64).Compare(Unnumbered), "huge prefixes still sort before unnumbered names")
	assert.Equal(t, 1, Unnumbered.Compare(Numbered(0)))
	assert.Equal(t, 0, Unnumbered.Compare(Unnumbered))
}

func TestPrefixString(t *testing.T) {
	assert.Equal(t, "unnumbered", Unnumbered.String())
	assert.Equal(t, "999", Numbered(999).String())
}

func TestSortByPrefix(t *testing.T) {
	files := []string{"02_b.md", "01_a.md", "c.md"}
	SortByPrefix(files, func(s string) string { return s })
	assert.Equal(t, []string{"01_a.md", "02_b.md", "c.md"}, files)
}

func TestSortByPrefix_IsStableForTies(t *testing.T) {
	files := []string{"z.md", "3_x.md", "a.md", "03_y.md", "1000_late.pdf", "m.md"}
	SortByPrefix(files, func(s string) string { return s })
	assert.Equal(t, []string{"3_x.md", "03_y.md", "1000_late.pdf", "z.md", "a.md", "m.md"}, files)
}
