package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateResponseMissingRequired(t *testing.T) {
	s := Schema{Sections: []Section{{
		Title: "Info",
		Fields: []Field{
			{Name: "email", Type: "email", Label: "Email", Required: true},
			{Name: "age", Type: "number", Label: "Age"},
		},
	}}}

	errs := ValidateResponse(s, map[string]any{"age": "30"})
	assert.Equal(t, map[string]string{"email": "Email is required"}, errs)

	errs = ValidateResponse(s, map[string]any{"email": "a@b.com", "age": "30"})
	assert.Empty(t, errs)
}

func TestValidateResponseAbsentEqualsEmpty(t *testing.T) {
	s := Schema{Sections: []Section{{
		Title: "S",
		Fields: []Field{
			{Name: "a", Type: "text", Label: "A", Required: true},
			{Name: "b", Type: "text", Label: "B", Required: true},
		},
	}}}

	absent := ValidateResponse(s, map[string]any{})
	present := ValidateResponse(s, map[string]any{"a": "", "b": "   "})
	assert.Equal(t, absent, present)
	assert.Len(t, absent, 2)
}

func TestValidateResponseCollectsAllFailures(t *testing.T) {
	s := Schema{Sections: []Section{
		{Title: "A", Fields: []Field{
			{Name: "one", Type: "text", Label: "One", Required: true},
			{Name: "two", Type: "checkbox", Label: "Two", Required: true},
		}},
		{Title: "B", Fields: []Field{
			{Name: "three", Type: "checkbox_group", Label: "Three", Required: true, Options: []string{"A", "B"}},
		}},
	}}

	errs := ValidateResponse(s, map[string]any{"two": false})
	assert.Equal(t, map[string]string{
		"one":   "One is required",
		"two":   "Two is required",
		"three": "Three is required",
	}, errs)
}

func TestValidateResponseNonRequiredNeverChecked(t *testing.T) {
	s := Schema{Sections: []Section{{
		Title: "S",
		Fields: []Field{
			{Name: "opt", Type: "text", Label: "Optional"},
			{Name: "sel", Type: "select", Label: "Choice", Options: []string{"a", "b"}},
		},
	}}}
	assert.Empty(t, ValidateResponse(s, map[string]any{}))
}

func TestValidateResponseCheckboxGroup(t *testing.T) {
	s := Schema{Sections: []Section{{
		Title: "S",
		Fields: []Field{
			{Name: "field1", Type: "checkbox_group", Label: "Field 1", Required: true, Options: []string{"A", "B"}},
		},
	}}}

	// non-empty array passes
	assert.Empty(t, ValidateResponse(s, map[string]any{"field1": []any{"A"}}))
	assert.Len(t, ValidateResponse(s, map[string]any{"field1": []any{}}), 1)
}

// No format checks happen at submit: a required email field passes with any
// non-blank string.
func TestValidateResponseNoFormatValidation(t *testing.T) {
	s := Schema{Sections: []Section{{
		Title: "S",
		Fields: []Field{
			{Name: "email", Type: "email", Label: "Email", Required: true},
		},
	}}}
	assert.Empty(t, ValidateResponse(s, map[string]any{"email": "not-an-email"}))
}
