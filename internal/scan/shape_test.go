package scan

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestShapeDefaultsOnEmptyInput(t *testing.T) {
	req := require.New(t)

	resp := Shape(ModeCognitive, FeatureSet{}, ScoreSet{}, "")

	req.Equal("cognitive", resp.Mode)
	req.Equal("", resp.Summary)
	req.Nil(resp.HealthScore)
	req.Nil(resp.CognitiveScore)
	req.Nil(resp.Confidence)
	req.Equal([]string{}, resp.Highlights)
	req.Equal([]string{}, resp.Recommendations)
	req.Nil(resp.Regions)
}

func TestShapeToleratesNilMaps(t *testing.T) {
	req := require.New(t)

	resp := Shape(ModePhysical, nil, nil, "ok")

	req.NotNil(resp.Features)
	req.NotNil(resp.Scores)
	req.Equal("ok", resp.Summary)
}

func TestShapeHealthScoreAliases(t *testing.T) {
	tests := []struct {
		description string
		scores      ScoreSet
		want        int
	}{
		{"camelCase wins", ScoreSet{"healthScore": 81.0, "score": 10.0}, 81},
		{"snake_case second", ScoreSet{"health_score": 72.4}, 72},
		{"bare score third", ScoreSet{"score": 55.5}, 56},
		{"health last", ScoreSet{"health": 90.0}, 90},
		{"accepts plain int", ScoreSet{"healthScore": 77}, 77},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			resp := Shape(ModePhysical, FeatureSet{}, tt.scores, "")
			require.NotNil(t, resp.HealthScore)
			require.Equal(t, tt.want, *resp.HealthScore)
		})
	}
}

func TestShapeUncoercibleScoreIsNull(t *testing.T) {
	// The first present alias wins; a bad value does not fall through
	// to later aliases.
	resp := Shape(ModePhysical, FeatureSet{}, ScoreSet{"healthScore": "n/a", "score": 44.0}, "")
	require.Nil(t, resp.HealthScore)
}

func TestShapeCognitiveScoreAliases(t *testing.T) {
	tests := []struct {
		description string
		scores      ScoreSet
		want        int
	}{
		{"camelCase wins", ScoreSet{"cognitiveScore": 70.0, "cognitive": 1.0}, 70},
		{"snake_case second", ScoreSet{"cognitive_score": 64.6}, 65},
		{"bare cognitive third", ScoreSet{"cognitive": 50.0}, 50},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			resp := Shape(ModeCognitive, FeatureSet{}, tt.scores, "")
			require.NotNil(t, resp.CognitiveScore)
			require.Equal(t, tt.want, *resp.CognitiveScore)
		})
	}
}

func TestShapeConfidence(t *testing.T) {
	req := require.New(t)

	resp := Shape(ModePhysical, FeatureSet{}, ScoreSet{"confidence": 0.87}, "")
	req.NotNil(resp.Confidence)
	req.Equal(0.87, *resp.Confidence)

	resp = Shape(ModePhysical, FeatureSet{}, ScoreSet{"confidence": "high"}, "")
	req.Nil(resp.Confidence)
}

func TestShapeListFields(t *testing.T) {
	req := require.New(t)

	scores := ScoreSet{
		"highlights":      []any{"balanced skin tone", "stable facial symmetry"},
		"recommendations": []any{"Maintain hydration"},
	}
	resp := Shape(ModePhysical, FeatureSet{}, scores, "")
	req.Equal([]string{"balanced skin tone", "stable facial symmetry"}, resp.Highlights)
	req.Equal([]string{"Maintain hydration"}, resp.Recommendations)

	// issues is the fallback alias for highlights
	resp = Shape(ModePhysical, FeatureSet{}, ScoreSet{"issues": []any{"glare"}}, "")
	req.Equal([]string{"glare"}, resp.Highlights)

	// non-string entries are dropped, not fatal
	resp = Shape(ModePhysical, FeatureSet{}, ScoreSet{"highlights": []any{"ok", 3.0}}, "")
	req.Equal([]string{"ok"}, resp.Highlights)

	// empty highlights fall through to issues
	resp = Shape(ModePhysical, FeatureSet{}, ScoreSet{"highlights": []any{}, "issues": []any{"blur"}}, "")
	req.Equal([]string{"blur"}, resp.Highlights)
}

func TestShapeRegionsPassthrough(t *testing.T) {
	req := require.New(t)

	regions := []any{map[string]any{"x": 0.3, "y": 0.2, "w": 0.15, "h": 0.15, "note": "eye region"}}
	resp := Shape(ModeCognitive, FeatureSet{"regions": regions}, ScoreSet{}, "")
	req.Equal(regions, resp.Regions)
}

func TestShapeRegionsFromObjects(t *testing.T) {
	req := require.New(t)

	objects := make([]any, 0, 10)
	for i := 0; i < 10; i++ {
		objects = append(objects, map[string]any{
			"object":    "face",
			"rectangle": map[string]any{"x": float64(i)},
		})
	}
	resp := Shape(ModeCognitive, FeatureSet{"objects": objects}, ScoreSet{}, "")

	regions, ok := resp.Regions.([]map[string]any)
	req.True(ok)
	req.Len(regions, 8)
	req.Equal("face", regions[0]["object"])
	req.Equal(map[string]any{"x": float64(0)}, regions[0]["rectangle"])
}

func TestShapeRegionsObjectAliases(t *testing.T) {
	req := require.New(t)

	features := FeatureSet{"objects": []any{
		map[string]any{"name": "person", "boundingBox": map[string]any{"w": 0.5}},
	}}
	resp := Shape(ModeCognitive, features, ScoreSet{}, "")

	regions, ok := resp.Regions.([]map[string]any)
	req.True(ok)
	req.Len(regions, 1)
	req.Equal("person", regions[0]["object"])
	req.Equal(map[string]any{"w": 0.5}, regions[0]["rectangle"])
}

func TestShapeIdempotent(t *testing.T) {
	req := require.New(t)

	features := FeatureSet{
		"color":   map[string]any{"dominantColorForeground": "White"},
		"faces":   []any{map[string]any{"age": float64(23)}},
		"objects": []any{map[string]any{"object": "face", "rectangle": map[string]any{"x": 0.1}}},
	}
	scores := ScoreSet{
		"healthScore": 80.0,
		"confidence":  0.9,
		"highlights":  []any{"ok"},
	}

	first := Shape(ModePhysical, features, scores, "all clear")
	second := Shape(ModePhysical, features, scores, "all clear")
	req.Equal(first, second)
}
