package mock

import (
	"bytes"
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saturnino-fabrica-de-software/ponto/internal/domain"
)

func TestExtractor_Represent(t *testing.T) {
	e := New()
	ctx := context.Background()

	image := bytes.Repeat([]byte{0xAB}, 5000)

	embeddings, err := e.Represent(ctx, image)
	require.NoError(t, err)
	require.Len(t, embeddings, 1)
	assert.Len(t, embeddings[0], embeddingDimension)

	// Unit length
	var norm float64
	for _, v := range embeddings[0] {
		norm += v * v
	}
	assert.InDelta(t, 1.0, math.Sqrt(norm), 1e-9)
}

func TestExtractor_Represent_Deterministic(t *testing.T) {
	e := New()
	ctx := context.Background()

	image := bytes.Repeat([]byte{0x01, 0x02}, 3000)

	first, err := e.Represent(ctx, image)
	require.NoError(t, err)
	second, err := e.Represent(ctx, image)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestExtractor_Represent_TinyImage(t *testing.T) {
	e := New()

	_, err := e.Represent(context.Background(), []byte("not an image"))
	assert.ErrorIs(t, err, domain.ErrInvalidImage)
}
