package parsers

import (
	"encoding/json"
	"regexp"
)

// Generative models wrap JSON in prose or markdown fences no matter how
// firmly the prompt forbids it. ExtractJSON runs an ordered list of
// recovery strategies, most specific first, and falls back to a
// guaranteed well-formed object so call sites never see a parse error.

// FallbackErrorMarker is the error value carried by the fallback object.
const FallbackErrorMarker = "Could not parse JSON response"

// rawResponseLimit caps how much of the unparseable reply is kept for
// diagnostics.
const rawResponseLimit = 500

var (
	fencedJSONPattern  = regexp.MustCompile("(?s)```json\\s*(\\{.*?\\})\\s*```")
	fencedPlainPattern = regexp.MustCompile("(?s)```\\s*(\\{.*?\\})\\s*```")
	bracesPattern      = regexp.MustCompile(`(?s)(\{.*\})`)
)

// extractStrategy pulls a JSON candidate out of raw model text. It
// returns ok=false when the strategy does not apply to the input.
type extractStrategy func(text string) (string, bool)

// strategies are tried in order; the first candidate that parses wins.
// Appending a new heuristic here is the only change needed to extend
// the recovery chain.
var strategies = []extractStrategy{
	func(text string) (string, bool) {
		return text, true
	},
	func(text string) (string, bool) {
		m := fencedJSONPattern.FindStringSubmatch(text)
		if m == nil {
			return "", false
		}
		return m[1], true
	},
	func(text string) (string, bool) {
		m := fencedPlainPattern.FindStringSubmatch(text)
		if m == nil {
			return "", false
		}
		return m[1], true
	},
	func(text string) (string, bool) {
		m := bracesPattern.FindStringSubmatch(text)
		if m == nil {
			return "", false
		}
		return m[1], true
	},
}

// ExtractJSON recovers a JSON object from raw model output. The second
// return value is true when every strategy failed and the guaranteed
// fallback object was returned instead. This function never errors.
func ExtractJSON(text string) (map[string]any, bool) {
	for _, strategy := range strategies {
		candidate, ok := strategy(text)
		if !ok {
			continue
		}
		var parsed map[string]any
		if err := json.Unmarshal([]byte(candidate), &parsed); err != nil {
			continue
		}
		return parsed, false
	}

	truncated := text
	if runes := []rune(truncated); len(runes) > rawResponseLimit {
		truncated = string(runes[:rawResponseLimit])
	}
	return map[string]any{
		"error":        FallbackErrorMarker,
		"raw_response": truncated,
		"fallback":     true,
	}, true
}
