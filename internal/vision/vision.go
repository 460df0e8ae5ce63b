// Package vision abstracts the image-analysis backend. The live client
// forwards bytes to a hosted vision API and passes its JSON response
// through unmodified; the mock returns a fixed feature set for demos
// and tests. The backend is selected once at startup.
package vision

import (
	"context"

	"github.com/example/lifescan/internal/scan"
)

// Extractor turns raw image bytes into a feature set.
type Extractor interface {
	Extract(ctx context.Context, data []byte) (scan.FeatureSet, error)
}

// Mock is the deterministic no-credentials fallback.
type Mock struct{}

func NewMock() *Mock { return &Mock{} }

// Extract returns the same feature set for every image: a white
// dominant foreground and a single 23-year-old face.
func (m *Mock) Extract(_ context.Context, _ []byte) (scan.FeatureSet, error) {
	return scan.FeatureSet{
		"color": map[string]any{
			"dominantColorForeground": "White",
		},
		"faces": []any{
			map[string]any{"age": float64(23)},
		},
	}, nil
}
