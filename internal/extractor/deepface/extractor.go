package deepface

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/saturnino-fabrica-de-software/ponto/internal/domain"
	"github.com/saturnino-fabrica-de-software/ponto/internal/extractor"
)

// Extractor implements extractor.Extractor using the DeepFace API
type Extractor struct {
	client *Client
}

// New creates a new DeepFace extractor
func New(config Config) *Extractor {
	return &Extractor{
		client: NewClient(config),
	}
}

// Represent extracts one embedding per face found in the image. An image with
// no detectable face yields an empty slice, not an error.
func (e *Extractor) Represent(ctx context.Context, image []byte) ([]domain.Embedding, error) {
	imageBase64 := base64.StdEncoding.EncodeToString(image)

	resp, err := e.client.Represent(ctx, imageBase64)
	if err != nil {
		return nil, fmt.Errorf("represent faces: %w", err)
	}

	embeddings := make([]domain.Embedding, 0, len(resp.Results))
	for _, result := range resp.Results {
		if len(result.Embedding) == 0 {
			continue
		}
		embeddings = append(embeddings, domain.Embedding(result.Embedding))
	}

	return embeddings, nil
}

// Ensure Extractor implements extractor.Extractor
var _ extractor.Extractor = (*Extractor)(nil)
