package normalization

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type direction string

const (
	rtl direction = "rtl"
	ltr direction = "ltr"
)

func newDirectionNormalizer() *Normalizer[direction] {
	return NewNormalizer(map[string]direction{"RTL": rtl, "ltr": ltr})
}

func TestNormalizer_Lookup(t *testing.T) {
	n := newDirectionNormalizer()

	tests := []struct {
		input string
		want  direction
		ok    bool
	}{
		{"rtl", rtl, true},
		{"RTL", rtl, true},
		{"  Ltr  ", ltr, true},
		{"ttb", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := n.Lookup(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizer_NormalizeWithError(t *testing.T) {
	n := newDirectionNormalizer()

	got, err := n.NormalizeWithError(" LTR")
	require.NoError(t, err)
	assert.Equal(t, ltr, got)

	_, err = n.NormalizeWithError("sideways")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "[ltr rtl]")
}

func TestNormalizer_ValidKeysIsACopy(t *testing.T) {
	n := newDirectionNormalizer()
	keys := n.ValidKeys()
	keys[0] = "mutated"
	assert.Equal(t, []string{"ltr", "rtl"}, n.ValidKeys())
}
