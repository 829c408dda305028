// Package embedding turns free text into fixed-length vectors for
// similarity ranking in listing searches.
package embedding

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// ErrUnavailable indicates the embedding provider could not produce a
// vector. Searches that need similarity ranking fail with this error;
// the agent surfaces it to the model as a retryable tool failure.
var ErrUnavailable = errors.New("embedding provider unavailable")

// Embedder produces an embedding vector for a text string.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// OpenAIEmbedder implements Embedder using the OpenAI embeddings API.
type OpenAIEmbedder struct {
	client *openai.Client
	model  openai.EmbeddingModel
}

// NewOpenAIEmbedder creates an embedder for the given model. An empty
// model defaults to text-embedding-ada-002, matching the 1536-dimension
// description_embedding column.
func NewOpenAIEmbedder(client *openai.Client, model string) *OpenAIEmbedder {
	if model == "" {
		model = string(openai.AdaEmbeddingV2)
	}
	return &OpenAIEmbedder{
		client: client,
		model:  openai.EmbeddingModel(model),
	}
}

// Embed returns the vector for a single input text.
func (e *OpenAIEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: []string{text},
		Model: e.model,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("%w: empty response", ErrUnavailable)
	}
	return resp.Data[0].Embedding, nil
}
