package enrich

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/lessonindex/internal/content"
)

func TestEstimateMinutes(t *testing.T) {
	cases := map[int64]int{
		0:       0,
		1:       1,
		999:     1,
		1000:    1,
		1001:    2,
		250_000: 250,
		-4:      0,
	}
	for size, want := range cases {
		assert.Equal(t, want, EstimateMinutes(size), "size %d", size)
	}
}

func TestEnrich_DocumentGetsDuration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "1_welcome.pdf")
	require.NoError(t, os.WriteFile(path, make([]byte, 4500), 0o644))

	md := New().Enrich(content.File{Name: "1_welcome.pdf", Path: path, Kind: content.KindDocument})
	require.NotNil(t, md.DurationMinutes)
	assert.Equal(t, 5, *md.DurationMinutes)
	assert.Equal(t, []string{"document"}, md.Tags)
}

func TestEnrich_StatFailureYieldsZero(t *testing.T) {
	e := &Enricher{stat: func(string) (os.FileInfo, error) { return nil, fs.ErrPermission }}

	md := e.Enrich(content.File{Name: "x.pdf", Path: "x.pdf", Kind: content.KindDocument})
	require.NotNil(t, md.DurationMinutes, "documents always carry a duration")
	assert.Zero(t, *md.DurationMinutes)
}

func TestEnrich_OtherKindsOmitDuration(t *testing.T) {
	for _, kind := range []content.Kind{content.KindMarkdown, content.KindMarkdownExtended, content.KindImage} {
		md := New().Enrich(content.File{Name: "f", Path: "does-not-matter", Kind: kind})
		assert.Nil(t, md.DurationMinutes, "kind %s", kind)
		assert.Equal(t, []string{string(kind)}, md.Tags)
	}
}
