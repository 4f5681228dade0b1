package content

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIgnore(t *testing.T) {
	rules := ParseIgnore([]byte("# drafts are private\n\n*.draft.md\ndrafts/\n!keep.draft.md\n"))
	require.Equal(t, 3, rules.Len())

	assert.True(t, rules.Match("01_intro/notes.draft.md", false))
	assert.False(t, rules.Match("01_intro/keep.draft.md", false))
	assert.True(t, rules.Match("drafts", true))
	assert.False(t, rules.Match("drafts", false), "directory-only pattern should not match files")
	assert.False(t, rules.Match("01_intro/1_welcome.pdf", false))
}

func TestIgnoreRules_NilMatchesNothing(t *testing.T) {
	var rules *IgnoreRules
	assert.False(t, rules.Match("anything.md", false))
	assert.Zero(t, rules.Len())
}

func TestLoadIgnore(t *testing.T) {
	root := t.TempDir()

	rules, err := LoadIgnore(root, ".contentignore")
	require.NoError(t, err)
	assert.Nil(t, rules, "missing ignore file yields no rules")

	rules, err = LoadIgnore(root, "")
	require.NoError(t, err)
	assert.Nil(t, rules)

	require.NoError(t, os.WriteFile(filepath.Join(root, ".contentignore"), []byte("*.tmp.md\n"), 0o600))
	rules, err = LoadIgnore(root, ".contentignore")
	require.NoError(t, err)
	assert.True(t, rules.Match("x.tmp.md", false))
}
