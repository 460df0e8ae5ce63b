package scan

import "fmt"

// Score runs the scorer for the given mode.
func Score(mode Mode, features FeatureSet) (ScoreSet, error) {
	if mode == ModePhysical {
		return ScorePhysical(features)
	}
	return ScoreCognitive(features)
}

// ScorePhysical classifies anemia risk from the dominant foreground
// color. The color field is a hard dependency on the vision output;
// unlike the shaper lookups there is no graceful default here.
func ScorePhysical(features FeatureSet) (ScoreSet, error) {
	color, ok := subMap(features, "color")
	if !ok {
		return nil, fmt.Errorf("%w: color", ErrMissingFeature)
	}
	dominant, ok := color["dominantColorForeground"].(string)
	if !ok {
		return nil, fmt.Errorf("%w: color.dominantColorForeground", ErrMissingFeature)
	}

	risk := 0.4
	// Exact match only; the backend emits capitalized color names.
	if dominant == "White" || dominant == "Gray" {
		risk = 0.7
	}

	return ScoreSet{
		"dominant_color": dominant,
		"anemia_risk":    risk,
	}, nil
}

// ScoreCognitive classifies stress from the first detected face's age.
// An image with no detected faces fails the scan rather than degrading
// to a neutral score.
func ScoreCognitive(features FeatureSet) (ScoreSet, error) {
	faces, ok := asList(features["faces"])
	if !ok || len(faces) == 0 {
		return nil, fmt.Errorf("%w: faces", ErrMissingFeature)
	}
	face, ok := faces[0].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: faces[0]", ErrMissingFeature)
	}
	age, ok := asFloat(face["age"])
	if !ok {
		return nil, fmt.Errorf("%w: faces[0].age", ErrMissingFeature)
	}

	stress := 0.4
	load := "normal"
	if age > 20 {
		stress = 0.8
		load = "high"
	}

	return ScoreSet{
		"stress_score":   stress,
		"cognitive_load": load,
	}, nil
}
