package scan

// FeatureSet is the raw output of a vision backend. There is no fixed
// schema: backends disagree on key names, and downstream code treats
// absent keys as "unknown" rather than erroring. Only the scorers have
// hard field dependencies.
type FeatureSet map[string]any

// ScoreSet is the output of one scorer. Key names are backend-specific,
// which is why the shaper resolves aliases in priority order instead of
// assuming a canonical name.
type ScoreSet map[string]any

// Mode selects one of the two independent scan pipelines.
type Mode string

const (
	ModePhysical  Mode = "physical"
	ModeCognitive Mode = "cognitive"
)

// ParseMode validates a client-supplied mode string. Empty input falls
// back to the cognitive pipeline, matching the original frontend contract.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModePhysical:
		return ModePhysical, nil
	case ModeCognitive, "":
		return ModeCognitive, nil
	default:
		return "", ErrInvalidMode
	}
}

// subMap walks one level into a nested mapping, tolerating both
// map[string]any (decoded JSON) and FeatureSet/ScoreSet values.
func subMap(m map[string]any, key string) (map[string]any, bool) {
	switch v := m[key].(type) {
	case map[string]any:
		return v, true
	case FeatureSet:
		return v, true
	case ScoreSet:
		return v, true
	default:
		return nil, false
	}
}

// asFloat coerces the numeric types a value can arrive as: float64 from
// decoded JSON, plus int/float32 from in-process mocks and tests.
func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

// asList tolerates both []any (decoded JSON) and []map[string]any.
func asList(v any) ([]any, bool) {
	switch l := v.(type) {
	case []any:
		return l, true
	case []map[string]any:
		out := make([]any, len(l))
		for i, e := range l {
			out[i] = e
		}
		return out, true
	default:
		return nil, false
	}
}

// firstNumber resolves an alias list: the first key that is present
// wins, and a present-but-uncoercible value yields no number rather
// than falling through to later aliases.
func firstNumber(m map[string]any, keys ...string) (float64, bool) {
	for _, k := range keys {
		if v, ok := m[k]; ok {
			return asFloat(v)
		}
	}
	return 0, false
}

// firstStringList returns the first key in order holding a non-empty
// list, keeping only its string elements. Empty lists fall through to
// the next alias.
func firstStringList(m map[string]any, keys ...string) ([]string, bool) {
	for _, k := range keys {
		l, ok := asList(m[k])
		if !ok || len(l) == 0 {
			continue
		}
		out := make([]string, 0, len(l))
		for _, e := range l {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out, true
	}
	return nil, false
}
