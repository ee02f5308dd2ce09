package face

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saturnino-fabrica-de-software/ponto/internal/config"
	"github.com/saturnino-fabrica-de-software/ponto/internal/extractor/deepface"
	"github.com/saturnino-fabrica-de-software/ponto/internal/extractor/mock"
)

func TestNewExtractor(t *testing.T) {
	tests := []struct {
		name          string
		extractorType string
		wantErr       bool
		wantType      interface{}
	}{
		{
			name:          "deepface extractor",
			extractorType: "deepface",
			wantType:      &deepface.Extractor{},
		},
		{
			name:          "empty defaults to deepface",
			extractorType: "",
			wantType:      &deepface.Extractor{},
		},
		{
			name:          "mock extractor",
			extractorType: "mock",
			wantType:      &mock.Extractor{},
		},
		{
			name:          "unknown type",
			extractorType: "rekognition",
			wantErr:       true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{ExtractorType: tt.extractorType}

			e, err := NewExtractor(cfg)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.IsType(t, tt.wantType, e)
		})
	}
}
