package response

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Documents must round-trip losslessly through JSON for every supported
// value shape: booleans stay booleans, arrays stay arrays.
func TestDocumentRoundTrip(t *testing.T) {
	doc := Document{
		"name":      "Jo",
		"agreed":    true,
		"flagged":   false,
		"tools":     []any{"hammer", "drill"},
		"photo":     "uploads/abc123",
		"signature": "sig/xyz789",
	}

	data, err := doc.JSON()
	require.NoError(t, err)

	back, err := ParseDocument(data)
	require.NoError(t, err)
	assert.Equal(t, doc, back)
}

func TestParseDocumentEmpty(t *testing.T) {
	doc, err := ParseDocument(nil)
	require.NoError(t, err)
	assert.Empty(t, doc)

	doc, err = ParseDocument([]byte(`{}`))
	require.NoError(t, err)
	assert.Empty(t, doc)

	_, err = ParseDocument([]byte(`{broken`))
	assert.Error(t, err)
}

func TestNilDocumentJSON(t *testing.T) {
	var doc Document
	data, err := doc.JSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(data))
}

func TestDocumentClone(t *testing.T) {
	doc := Document{"a": "x", "list": []any{"1", "2"}, "strs": []string{"a"}}
	clone := doc.Clone()

	clone["a"] = "y"
	clone["list"].([]any)[0] = "9"
	clone["strs"].([]string)[0] = "z"

	assert.Equal(t, "x", doc["a"])
	assert.Equal(t, []any{"1", "2"}, doc["list"])
	assert.Equal(t, []string{"a"}, doc["strs"])
}
