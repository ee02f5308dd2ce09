package face

import (
	"fmt"

	"github.com/saturnino-fabrica-de-software/ponto/internal/config"
	"github.com/saturnino-fabrica-de-software/ponto/internal/extractor"
	"github.com/saturnino-fabrica-de-software/ponto/internal/extractor/deepface"
	"github.com/saturnino-fabrica-de-software/ponto/internal/extractor/mock"
)

// ExtractorType defines supported embedding extractor backends
type ExtractorType string

const (
	// ExtractorTypeDeepFace is the DeepFace HTTP extractor (default)
	ExtractorTypeDeepFace ExtractorType = "deepface"
	// ExtractorTypeMock is the deterministic in-process extractor (dev/test)
	ExtractorTypeMock ExtractorType = "mock"
)

// NewExtractor creates an Extractor instance based on configuration
//
// Environment variables:
//   - EXTRACTOR_TYPE: "deepface" or "mock" (default: "deepface")
//   - DEEPFACE_URL: DeepFace API URL (default: "http://localhost:5000")
func NewExtractor(cfg *config.Config) (extractor.Extractor, error) {
	extractorType := ExtractorType(cfg.ExtractorType)

	switch extractorType {
	case ExtractorTypeMock:
		return mock.New(), nil

	case ExtractorTypeDeepFace, "":
		return createDeepFaceExtractor(cfg), nil

	default:
		return nil, fmt.Errorf("unknown extractor type: %s (supported: %s, %s)",
			cfg.ExtractorType, ExtractorTypeDeepFace, ExtractorTypeMock)
	}
}

// createDeepFaceExtractor creates a DeepFace extractor instance
func createDeepFaceExtractor(cfg *config.Config) extractor.Extractor {
	deepfaceConfig := deepface.DefaultConfig()
	if cfg.DeepFaceURL != "" {
		deepfaceConfig.BaseURL = cfg.DeepFaceURL
	}

	return deepface.New(deepfaceConfig)
}
