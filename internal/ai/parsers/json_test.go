package parsers_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"qms-server/internal/ai/parsers"
)

func TestExtractJSON(t *testing.T) {
	t.Run("direct JSON object", func(t *testing.T) {
		result, fallback := parsers.ExtractJSON(`{"summary": "ok", "total_high_risk": 2}`)

		assert.False(t, fallback)
		assert.Equal(t, "ok", result["summary"])
		assert.Equal(t, float64(2), result["total_high_risk"])
	})

	t.Run("json fenced block", func(t *testing.T) {
		text := "Here is the analysis:\n```json\n{\"summary\": \"fenced\"}\n```\nHope that helps!"
		result, fallback := parsers.ExtractJSON(text)

		assert.False(t, fallback)
		assert.Equal(t, "fenced", result["summary"])
	})

	t.Run("plain fenced block", func(t *testing.T) {
		text := "```\n{\"summary\": \"plain fence\"}\n```"
		result, fallback := parsers.ExtractJSON(text)

		assert.False(t, fallback)
		assert.Equal(t, "plain fence", result["summary"])
	})

	t.Run("object embedded in prose", func(t *testing.T) {
		text := `Sure! The result is {"summary": "embedded", "key_concerns": ["a", "b"]} as requested.`
		result, fallback := parsers.ExtractJSON(text)

		assert.False(t, fallback)
		assert.Equal(t, "embedded", result["summary"])
		assert.Len(t, result["key_concerns"], 2)
	})

	t.Run("nested object survives extraction", func(t *testing.T) {
		text := "```json\n{\"breakdown\": {\"by_status\": {\"Planned\": 3}}}\n```"
		result, fallback := parsers.ExtractJSON(text)

		assert.False(t, fallback)
		breakdown, ok := result["breakdown"].(map[string]any)
		assert.True(t, ok)
		assert.Contains(t, breakdown, "by_status")
	})

	t.Run("unparseable text returns fallback object", func(t *testing.T) {
		result, fallback := parsers.ExtractJSON("I am sorry, I cannot help with that.")

		assert.True(t, fallback)
		assert.Equal(t, parsers.FallbackErrorMarker, result["error"])
		assert.Equal(t, "I am sorry, I cannot help with that.", result["raw_response"])
		assert.Equal(t, true, result["fallback"])
	})

	t.Run("fallback truncates long raw response", func(t *testing.T) {
		long := strings.Repeat("x", 2000)
		result, fallback := parsers.ExtractJSON(long)

		assert.True(t, fallback)
		raw, ok := result["raw_response"].(string)
		assert.True(t, ok)
		assert.Len(t, raw, 500)
	})

	t.Run("fallback truncation keeps multi-byte runes intact", func(t *testing.T) {
		long := strings.Repeat("감", 600)
		result, fallback := parsers.ExtractJSON(long)

		assert.True(t, fallback)
		raw, ok := result["raw_response"].(string)
		assert.True(t, ok)
		assert.True(t, utf8.ValidString(raw))
		assert.Equal(t, 500, utf8.RuneCountInString(raw))
	})

	t.Run("empty input returns fallback object", func(t *testing.T) {
		result, fallback := parsers.ExtractJSON("")

		assert.True(t, fallback)
		assert.Equal(t, "", result["raw_response"])
	})

	t.Run("broken fence falls through to braces span", func(t *testing.T) {
		text := "```json\n{\"summary\": \"unterminated fence\"}"
		result, fallback := parsers.ExtractJSON(text)

		assert.False(t, fallback)
		assert.Equal(t, "unterminated fence", result["summary"])
	})
}
