package ingestion

import "fmt"

// Segment splits documentText into overlapping fixed-size passages using a
// sliding window of chunkSize characters advanced by chunkSize-chunkOverlap
// per step. Passages are emitted in document order with ordinals starting at
// 0; the final window may be shorter than chunkSize. Empty input yields no
// passages. Sizes are measured in runes so multi-byte text never gets split
// mid-character.
func Segment(documentText, sourceID string, chunkSize, chunkOverlap int) ([]Passage, error) {
	if chunkSize <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", chunkSize)
	}
	if chunkOverlap < 0 || chunkOverlap >= chunkSize {
		return nil, fmt.Errorf("chunk overlap must be in [0, %d), got %d", chunkSize, chunkOverlap)
	}
	if documentText == "" {
		return nil, nil
	}

	runes := []rune(documentText)
	stride := chunkSize - chunkOverlap

	var passages []Passage
	for start, ordinal := 0, 0; ; start, ordinal = start+stride, ordinal+1 {
		end := start + chunkSize
		if end >= len(runes) {
			passages = append(passages, Passage{
				SourceID: sourceID,
				Ordinal:  ordinal,
				Content:  string(runes[start:]),
			})
			return passages, nil
		}
		passages = append(passages, Passage{
			SourceID: sourceID,
			Ordinal:  ordinal,
			Content:  string(runes[start:end]),
		})
	}
}
