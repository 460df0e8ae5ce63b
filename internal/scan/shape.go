package scan

import (
	"math"

	"github.com/samber/lo"
)

// maximum number of detected objects promoted into regions.
const maxRegions = 8

// Response is the stable JSON contract the frontend consumes. Every
// field has a defined default so the shape is structurally complete no
// matter which optional keys the backends produced. Raw features and
// scores are passed through for debugging.
type Response struct {
	Mode            string     `json:"mode"`
	Summary         string     `json:"summary"`
	HealthScore     *int       `json:"healthScore"`
	CognitiveScore  *int       `json:"cognitiveScore"`
	Confidence      *float64   `json:"confidence"`
	Highlights      []string   `json:"highlights"`
	Recommendations []string   `json:"recommendations"`
	Features        FeatureSet `json:"features"`
	Scores          ScoreSet   `json:"scores"`
	Regions         any        `json:"regions,omitempty"`
}

// Shape normalizes the pipeline output into the frontend contract.
// Upstream score keys are not standardized, so the numeric fields are
// resolved through priority-ordered alias lists. Missing optional keys
// always degrade to defaults; this function never fails.
func Shape(mode Mode, features FeatureSet, scores ScoreSet, narration string) Response {
	resp := Response{
		Mode:            string(mode),
		Summary:         narration,
		Highlights:      []string{},
		Recommendations: []string{},
		Features:        features,
		Scores:          scores,
	}
	if features == nil {
		resp.Features = FeatureSet{}
	}
	if scores == nil {
		resp.Scores = ScoreSet{}
	}

	if v, ok := firstNumber(resp.Scores, "healthScore", "health_score", "score", "health"); ok {
		resp.HealthScore = roundScore(v)
	}
	if v, ok := firstNumber(resp.Scores, "cognitiveScore", "cognitive_score", "cognitive"); ok {
		resp.CognitiveScore = roundScore(v)
	}
	if v, ok := asFloat(resp.Scores["confidence"]); ok {
		resp.Confidence = &v
	}
	if l, ok := firstStringList(resp.Scores, "highlights", "issues"); ok {
		resp.Highlights = l
	}
	if l, ok := firstStringList(resp.Scores, "recommendations"); ok {
		resp.Recommendations = l
	}

	resp.Regions = shapeRegions(resp.Features)
	return resp
}

func roundScore(v float64) *int {
	n := int(math.Round(v))
	return &n
}

// shapeRegions passes explicit regions through verbatim; otherwise it
// normalizes detected objects to {object, rectangle} pairs, accepting
// either bounding-box key the backend may use.
func shapeRegions(features FeatureSet) any {
	if regions, ok := features["regions"]; ok {
		return regions
	}
	objects, ok := asList(features["objects"])
	if !ok {
		return nil
	}
	return lo.Map(lo.Slice(objects, 0, maxRegions), func(entry any, _ int) map[string]any {
		region := map[string]any{"object": nil, "rectangle": map[string]any{}}
		obj, ok := entry.(map[string]any)
		if !ok {
			return region
		}
		if name, ok := obj["object"]; ok {
			region["object"] = name
		} else if name, ok := obj["name"]; ok {
			region["object"] = name
		}
		if rect, ok := subMap(obj, "rectangle"); ok {
			region["rectangle"] = rect
		} else if rect, ok := subMap(obj, "boundingBox"); ok {
			region["rectangle"] = rect
		}
		return region
	})
}
