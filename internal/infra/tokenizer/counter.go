// Package tokenizer counts model tokens with the cl100k_base encoding, the
// one used by the text-embedding-3 and gpt-4o model families.
package tokenizer

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"

	"github.com/docchat/docchat/internal/core/query"
)

// Counter counts tokens using a tiktoken encoder.
type Counter struct {
	encoder *tiktoken.Tiktoken
}

// NewCounter creates a cl100k_base Counter.
func NewCounter() (*Counter, error) {
	encoder, err := tiktoken.GetEncoding("cl100k_base")
	if err != nil {
		return nil, fmt.Errorf("failed to get tiktoken encoder: %w", err)
	}
	return &Counter{encoder: encoder}, nil
}

// CountTokens returns the number of tokens in text.
func (c *Counter) CountTokens(text string) int {
	return len(c.encoder.Encode(text, nil, nil))
}

var _ query.TokenCounter = (*Counter)(nil)
