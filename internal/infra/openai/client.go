package openai

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"

	"github.com/docchat/docchat/internal/core/query"
	"github.com/docchat/docchat/internal/core/rag"
)

const (
	// DefaultLLMModel is used when no model is configured.
	DefaultLLMModel = "gpt-4o-mini"

	// DefaultTimeout bounds a single completion call.
	DefaultTimeout = 60 * time.Second

	// MaxRetries is the retry limit on rate-limit errors. Retrying lives in
	// this adapter; the pipelines above it never retry.
	MaxRetries = 3

	// BaseBackoff is the base wait of the exponential backoff.
	BaseBackoff = 2 * time.Second

	// MaxBackoff caps the backoff wait.
	MaxBackoff = 32 * time.Second
)

// ErrAPIKeyNotSet is returned when no API key is configured.
var ErrAPIKeyNotSet = errors.New("OpenAI API key not set: please set OPENAI_API_KEY")

// Client generates completions through the OpenAI chat API with a fixed
// temperature. The system uses temperature 0 so answers are reproducible.
type Client struct {
	client      openai.Client
	model       string
	temperature float64
	timeout     time.Duration
}

// NewClient creates a new Client.
func NewClient(apiKey, model string, temperature float64) (*Client, error) {
	if apiKey == "" {
		return nil, ErrAPIKeyNotSet
	}
	if model == "" {
		model = DefaultLLMModel
	}

	return &Client{
		client:      openai.NewClient(option.WithAPIKey(apiKey)),
		model:       model,
		temperature: temperature,
		timeout:     DefaultTimeout,
	}, nil
}

// SetTimeout overrides the per-call timeout.
func (c *Client) SetTimeout(timeout time.Duration) {
	c.timeout = timeout
}

// ModelName returns the chat model name.
func (c *Client) ModelName() string {
	return c.model
}

// GenerateCompletion produces the model's answer for the prompt. Rate-limit
// responses are retried with exponential backoff; any terminal failure wraps
// rag.ErrGenerationService.
func (c *Client) GenerateCompletion(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var lastErr error
	for attempt := 0; attempt <= MaxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(math.Pow(2, float64(attempt-1))) * BaseBackoff
			if backoff > MaxBackoff {
				backoff = MaxBackoff
			}
			select {
			case <-ctx.Done():
				return "", fmt.Errorf("%w: %v", rag.ErrGenerationService, ctx.Err())
			case <-time.After(backoff):
			}
		}

		completion, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
			Model: shared.ChatModel(c.model),
			Messages: []openai.ChatCompletionMessageParamUnion{
				openai.UserMessage(prompt),
			},
			Temperature: openai.Float(c.temperature),
		})
		if err != nil {
			lastErr = err
			if isRateLimitError(err) {
				continue
			}
			return "", fmt.Errorf("%w: %v", rag.ErrGenerationService, err)
		}

		if len(completion.Choices) == 0 {
			return "", fmt.Errorf("%w: no completion choices returned", rag.ErrGenerationService)
		}
		return completion.Choices[0].Message.Content, nil
	}

	return "", fmt.Errorf("%w: max retries exceeded: %v", rag.ErrGenerationService, lastErr)
}

func isRateLimitError(err error) bool {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 429
	}
	return false
}

var _ query.LLMClient = (*Client)(nil)
