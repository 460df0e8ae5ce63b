// Package insight abstracts the text-generation backend that turns a
// score set into a human-readable explanation. Mirrors package vision:
// a canned-template fallback when no API key is configured, a hosted
// chat-completion API otherwise.
package insight

import (
	"context"
	"fmt"

	"github.com/example/lifescan/internal/scan"
)

// Narrator produces a natural-language explanation of a score set.
type Narrator interface {
	Narrate(ctx context.Context, scores scan.ScoreSet) (string, error)
}

// Mock interpolates the score mapping into a fixed template. It never
// fails, which keeps the no-credentials path deterministic end to end.
type Mock struct{}

func NewMock() *Mock { return &Mock{} }

func (m *Mock) Narrate(_ context.Context, scores scan.ScoreSet) (string, error) {
	return fmt.Sprintf(
		"Based on the scan results %v, there are mild indicators of possible "+
			"fatigue or stress. Consider hydration, balanced nutrition, regular "+
			"sleep, and short breaks.", scores), nil
}
