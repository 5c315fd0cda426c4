package llm

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractMapping_CleanJSON(t *testing.T) {
	raw := `{"type":"AMRAP","duration":20}`
	m := ExtractMapping(raw)
	assert.Equal(t, "AMRAP", m["type"])
	assert.Equal(t, float64(20), m["duration"])
}

func TestExtractMapping_FencedJSON(t *testing.T) {
	raw := "```json\n{\"type\":\"EMOM\",\"duration\":15}\n```"
	m := ExtractMapping(raw)
	assert.Equal(t, "EMOM", m["type"])
}

func TestExtractMapping_SurroundingProse(t *testing.T) {
	raw := "Here is the workout you asked for:\n{\"name\":\"Cindy\",\"type\":\"AMRAP 20\"}\nEnjoy your training!"
	m := ExtractMapping(raw)
	assert.Equal(t, "Cindy", m["name"])
	assert.Equal(t, "AMRAP 20", m["type"])
}

func TestExtractMapping_NestedObjects(t *testing.T) {
	raw := `{"name":"Fran","movements":[{"exercise":"Thruster","reps":21},{"exercise":"Pull-up","reps":21}]}`
	m := ExtractMapping(raw)
	movements, ok := m["movements"].([]any)
	require.True(t, ok)
	require.Len(t, movements, 2)
	first, ok := movements[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Thruster", first["exercise"])
}

func TestExtractMapping_NoBraces(t *testing.T) {
	m := ExtractMapping("I don't know what you mean.")
	require.NotNil(t, m)
	assert.Empty(t, m)
}

func TestExtractMapping_EmptyInput(t *testing.T) {
	m := ExtractMapping("")
	require.NotNil(t, m)
	assert.Empty(t, m)
}

func TestExtractMapping_InvalidJSON(t *testing.T) {
	m := ExtractMapping(`{"name":"Fran", broken}`)
	require.NotNil(t, m)
	assert.Empty(t, m)
}

func TestExtractMapping_RoundTrip(t *testing.T) {
	original := map[string]any{
		"name": "Helen",
		"type": "3 rounds for time",
		"movements": []any{
			map[string]any{"exercise": "Run", "time": "400m"},
			map[string]any{"exercise": "Kettlebell Swing", "reps": float64(21)},
		},
	}
	data, err := json.Marshal(original)
	require.NoError(t, err)

	m := ExtractMapping(string(data))
	assert.Equal(t, original, m)
}

func TestExtractMapping_StrayBraceInPrefix(t *testing.T) {
	// A stray opening brace in the prose must not corrupt extraction of the
	// real object that follows it.
	raw := "Using the {intent} you provided, here it is: {\"type\":\"Strength\",\"duration\":45}"
	m := ExtractMapping(raw)
	assert.Equal(t, "Strength", m["type"])
	assert.Equal(t, float64(45), m["duration"])
}

func TestExtractMapping_UnbalancedPrefixBrace(t *testing.T) {
	raw := "note { unclosed\n{\"style\":\"EMOM\"}"
	m := ExtractMapping(raw)
	assert.Equal(t, "EMOM", m["style"])
}

func TestExtractMapping_BracesInsideStrings(t *testing.T) {
	raw := `{"note":"use {placeholder} syntax","type":"AMRAP"}`
	m := ExtractMapping(raw)
	assert.Equal(t, "use {placeholder} syntax", m["note"])
	assert.Equal(t, "AMRAP", m["type"])
}

func TestExtractMapping_LineComments(t *testing.T) {
	raw := "{\n\"type\": \"EMOM\", // every minute on the minute\n\"duration\": 12\n}"
	m := ExtractMapping(raw)
	assert.Equal(t, "EMOM", m["type"])
	assert.Equal(t, float64(12), m["duration"])
}

func TestExtractMapping_LeadingDecimalNormalized(t *testing.T) {
	raw := `{"intensity": .85, "offset": -.3}`
	m := ExtractMapping(raw)
	assert.Equal(t, 0.85, m["intensity"])
	assert.Equal(t, -0.3, m["offset"])
}

func TestExtractMapping_TopLevelArrayIgnored(t *testing.T) {
	// Output must be an object; a bare array yields the empty mapping.
	m := ExtractMapping(`[{"exercise":"Burpee"}]`)
	require.NotNil(t, m)

	// The nested object is a valid candidate, so the scanner settles on it
	// rather than returning nothing.
	assert.Equal(t, "Burpee", m["exercise"])
}

func TestExtractMapping_MultipleFences(t *testing.T) {
	raw := "Some text\n```\n{\"type\":\"Chipper\"}\n```\nMore text"
	m := ExtractMapping(raw)
	assert.Equal(t, "Chipper", m["type"])
}

func TestExtractMapping_TrailingCommentaryWithBrace(t *testing.T) {
	raw := `{"type":"AMRAP"} and remember: pace yourself }`
	m := ExtractMapping(raw)
	assert.Equal(t, "AMRAP", m["type"])
}
