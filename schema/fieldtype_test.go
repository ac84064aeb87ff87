package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKnownTypeSet(t *testing.T) {
	for _, name := range []string{
		"text", "email", "number", "textarea", "select", "radio",
		"checkbox", "checkbox_group", "date", "datetime", "file", "signature",
	} {
		assert.True(t, KnownType(name), "type %q should be known", name)
	}
	assert.False(t, KnownType("stars"))
	assert.False(t, KnownType(""))
}

func TestOptionsMode(t *testing.T) {
	withOptions := map[string]bool{
		"select": true, "radio": true, "checkbox_group": true,
	}
	for name := range fieldTypes {
		ft, ok := TypeOf(name)
		require.True(t, ok)
		if withOptions[name] {
			assert.Equal(t, OptionsRequired, ft.Options, "%s should require options", name)
		} else {
			assert.Equal(t, OptionsForbidden, ft.Options, "%s should forbid options", name)
		}
	}
}

func TestEmptyPredicate(t *testing.T) {
	tests := []struct {
		name     string
		typeName string
		value    any
		empty    bool
	}{
		{"absent string", "text", nil, true},
		{"empty string", "text", "", true},
		{"blank string", "text", "   ", true},
		{"answered string", "text", "hello", false},
		{"answered email", "email", "a@b.com", false},
		{"number as string", "number", "30", false},

		{"absent bool", "checkbox", nil, true},
		// an unchecked required checkbox counts as unanswered
		{"false bool", "checkbox", false, true},
		{"true bool", "checkbox", true, false},

		{"absent list", "checkbox_group", nil, true},
		{"empty list", "checkbox_group", []any{}, true},
		{"empty string list", "checkbox_group", []string{}, true},
		{"one item list", "checkbox_group", []any{"A"}, false},
		{"string list", "checkbox_group", []string{"A", "B"}, false},

		{"absent reference", "file", nil, true},
		{"empty reference", "signature", "", true},
		{"reference", "file", "uploads/abc123", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ft, ok := TypeOf(tt.typeName)
			require.True(t, ok)
			assert.Equal(t, tt.empty, ft.Empty(tt.value))
		})
	}
}
