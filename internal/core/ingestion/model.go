package ingestion

import "github.com/google/uuid"

// Passage is a bounded contiguous span of document text, the unit of
// retrieval. Passages are created by the segmenter and immutable afterwards.
type Passage struct {
	SourceID string // identifies the originating document
	Ordinal  int    // position among passages from the same source, from 0
	Content  string
}

// EmbeddingRecord is the persisted unit in the vector store: one vector per
// passage, dimensionality fixed by the embedding model.
type EmbeddingRecord struct {
	ID      uuid.UUID
	Passage Passage
	Vector  []float32
}

// Document is the output of the external parser collaborator: an ordered
// sequence of page texts plus the identifier used as SourceID.
type Document struct {
	SourceID string
	Pages    []string
}

// Summary reports the observable result of one ingestion run.
type Summary struct {
	SourceID   string
	PageCount  int
	ChunkCount int
	Removed    int64 // records cleared before upsert when Reset was requested
}
