package ingestion

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSegmentChunkCountFormula(t *testing.T) {
	tests := []struct {
		name    string
		length  int
		size    int
		overlap int
	}{
		{name: "exact single chunk", length: 10, size: 10, overlap: 0},
		{name: "no overlap even split", length: 100, size: 10, overlap: 0},
		{name: "no overlap remainder", length: 101, size: 10, overlap: 0},
		{name: "with overlap", length: 100, size: 10, overlap: 3},
		{name: "large overlap", length: 50, size: 10, overlap: 9},
		{name: "defaults-shaped", length: 5000, size: 1000, overlap: 150},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text := strings.Repeat("a", tt.length)
			passages, err := Segment(text, "doc", tt.size, tt.overlap)
			require.NoError(t, err)

			stride := tt.size - tt.overlap
			want := (tt.length - tt.overlap + stride - 1) / stride // ceil((L-O)/(C-O))
			assert.Len(t, passages, want)

			for i, p := range passages {
				assert.Equal(t, i, p.Ordinal)
				assert.Equal(t, "doc", p.SourceID)
				assert.LessOrEqual(t, len([]rune(p.Content)), tt.size)
			}
		})
	}
}

func TestSegmentEmptyTextYieldsNoPassages(t *testing.T) {
	passages, err := Segment("", "doc", 1000, 150)
	require.NoError(t, err)
	assert.Empty(t, passages)
}

func TestSegmentShortDocumentYieldsWholeText(t *testing.T) {
	text := "um documento curto"
	passages, err := Segment(text, "doc", 1000, 150)
	require.NoError(t, err)
	require.Len(t, passages, 1)
	assert.Equal(t, text, passages[0].Content)
	assert.Equal(t, 0, passages[0].Ordinal)
}

func TestSegmentConsecutivePassagesShareOverlap(t *testing.T) {
	const size, overlap = 10, 4
	text := "abcdefghijklmnopqrstuvwxyz0123456789"

	passages, err := Segment(text, "doc", size, overlap)
	require.NoError(t, err)
	require.Greater(t, len(passages), 1)

	for i := 1; i < len(passages); i++ {
		prev := []rune(passages[i-1].Content)
		curr := []rune(passages[i].Content)
		suffix := string(prev[len(prev)-overlap:])
		prefix := string(curr[:overlap])
		assert.Equal(t, suffix, prefix, "passages %d and %d must overlap", i-1, i)
	}
}

func TestSegmentMultiByteTextNeverSplitsRunes(t *testing.T) {
	text := strings.Repeat("ação é informação ", 20)

	passages, err := Segment(text, "doc", 15, 5)
	require.NoError(t, err)

	var rebuilt strings.Builder
	for i, p := range passages {
		runes := []rune(p.Content)
		if i == 0 {
			rebuilt.WriteString(p.Content)
		} else {
			rebuilt.WriteString(string(runes[5:])) // skip the overlap
		}
	}
	assert.Equal(t, text, rebuilt.String())
}

func TestSegmentRejectsInvalidParameters(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		overlap int
	}{
		{name: "zero chunk size", size: 0, overlap: 0},
		{name: "negative chunk size", size: -1, overlap: 0},
		{name: "negative overlap", size: 10, overlap: -1},
		{name: "overlap equals size", size: 10, overlap: 10},
		{name: "overlap exceeds size", size: 10, overlap: 11},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Segment("some text", "doc", tt.size, tt.overlap)
			assert.Error(t, err)
		})
	}
}
