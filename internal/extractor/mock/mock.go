package mock

import (
	"context"
	"crypto/sha256"
	"math"

	"github.com/saturnino-fabrica-de-software/ponto/internal/domain"
	"github.com/saturnino-fabrica-de-software/ponto/internal/extractor"
)

const embeddingDimension = 128

// Extractor implementa extractor.Extractor para testes e desenvolvimento.
// It derives one deterministic unit-length embedding from the image hash, so
// the same image always produces the same vector.
type Extractor struct{}

// New cria uma nova instância do mock
func New() *Extractor {
	return &Extractor{}
}

// Represent returns a single deterministic embedding for any plausible image
func (e *Extractor) Represent(ctx context.Context, image []byte) ([]domain.Embedding, error) {
	if len(image) < 1000 {
		return nil, domain.ErrInvalidImage
	}

	return []domain.Embedding{generateEmbedding(image)}, nil
}

// generateEmbedding gera embedding determinístico baseado no hash da imagem
func generateEmbedding(image []byte) domain.Embedding {
	hash := sha256.Sum256(image)
	embedding := make(domain.Embedding, embeddingDimension)
	hashLen := len(hash)

	for i := 0; i < embeddingDimension; i++ {
		idx := i % hashLen
		embedding[i] = (float64(hash[idx])/255.0)*2 - 1
	}

	norm := 0.0
	for _, v := range embedding {
		norm += v * v
	}
	norm = math.Sqrt(norm)

	for i := range embedding {
		embedding[i] /= norm
	}

	return embedding
}

var _ extractor.Extractor = (*Extractor)(nil)
