package query

import (
	"github.com/docchat/docchat/internal/core/ingestion"
	"github.com/samber/mo"
)

// ScoredPassage is one retrieval hit: a stored passage and its vector
// distance to the query (smaller is more similar).
type ScoredPassage struct {
	Passage  ingestion.Passage
	Distance float64
}

// SearchFilter narrows a search. SourceID restricts results to one document;
// absent means the whole store (which holds a single document in normal use).
type SearchFilter struct {
	SourceID mo.Option[string]
}
