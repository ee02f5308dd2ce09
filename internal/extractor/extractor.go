package extractor

import (
	"context"

	"github.com/saturnino-fabrica-de-software/ponto/internal/domain"
)

// Extractor define a interface para extração de embeddings faciais.
// The implementation is an opaque collaborator: image in, zero or more
// fixed-dimension vectors out (zero when no face is detected).
type Extractor interface {
	// Represent extracts one embedding per detected face, in detection order.
	Represent(ctx context.Context, image []byte) ([]domain.Embedding, error)
}
