// Package loader provides the document parser collaborator. Extraction from
// rich formats is out of scope for the pipeline; this loader handles plain
// text that an external extractor already produced, treating form feeds as
// page breaks.
package loader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/docchat/docchat/internal/core/ingestion"
)

// TextLoader reads a plain-text document from disk.
type TextLoader struct{}

// NewTextLoader creates a new TextLoader.
func NewTextLoader() *TextLoader {
	return &TextLoader{}
}

// Load reads the file at path. The source id is the file name without its
// extension; pages are split on form feed characters, so a file without any
// is a single page.
func (l *TextLoader) Load(ctx context.Context, path string) (*ingestion.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document %q: %w", path, err)
	}

	base := filepath.Base(path)
	sourceID := strings.TrimSuffix(base, filepath.Ext(base))

	return &ingestion.Document{
		SourceID: sourceID,
		Pages:    strings.Split(string(data), "\f"),
	}, nil
}

var _ ingestion.DocumentLoader = (*TextLoader)(nil)
