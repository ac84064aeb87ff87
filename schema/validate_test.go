package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSchema() Schema {
	return Schema{Sections: []Section{
		{
			Title: "Info",
			Fields: []Field{
				{Name: "email", Type: "email", Label: "Email", Required: true},
				{Name: "age", Type: "number", Label: "Age"},
			},
		},
		{
			Title: "Details",
			Fields: []Field{
				{Name: "severity", Type: "select", Label: "Severity", Options: []string{"low", "high"}},
			},
		},
	}}
}

func TestValidateAccepts(t *testing.T) {
	assert.Empty(t, Validate(validSchema()))
}

func TestValidateNoSections(t *testing.T) {
	violations := Validate(Schema{})
	require.Len(t, violations, 1)
	assert.Equal(t, Violation{Section: -1, Field: -1, Kind: ViolationNoSections}, violations[0])
}

func TestValidateFieldNames(t *testing.T) {
	tests := []struct {
		name      string
		fieldName string
		kind      ViolationKind
	}{
		{"empty", "", ViolationBadName},
		{"spaces", "my field", ViolationBadName},
		{"leading digit", "1field", ViolationBadName},
		{"dash", "my-field", ViolationBadName},
		{"reserved notes", "notes", ViolationReservedName},
		{"reserved id", "id", ViolationReservedName},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Schema{Sections: []Section{{
				Title:  "S",
				Fields: []Field{{Name: tt.fieldName, Type: "text", Label: "F"}},
			}}}
			violations := Validate(s)
			require.Len(t, violations, 1)
			assert.Equal(t, Violation{Section: 0, Field: 0, Kind: tt.kind}, violations[0])
		})
	}
}

func TestValidateDuplicateNamesAcrossSections(t *testing.T) {
	s := Schema{Sections: []Section{
		{Title: "A", Fields: []Field{{Name: "remarks", Type: "text", Label: "Remarks"}}},
		{Title: "B", Fields: []Field{{Name: "remarks", Type: "textarea", Label: "Remarks"}}},
	}}

	violations := Validate(s)
	// both coordinates are reported, so the builder can highlight each one
	assert.ElementsMatch(t, []Violation{
		{Section: 0, Field: 0, Kind: ViolationDuplicateName},
		{Section: 1, Field: 0, Kind: ViolationDuplicateName},
	}, violations)
}

func TestValidateUnknownType(t *testing.T) {
	s := Schema{Sections: []Section{{
		Title:  "S",
		Fields: []Field{{Name: "rating", Type: "stars", Label: "Rating"}},
	}}}
	violations := Validate(s)
	require.Len(t, violations, 1)
	assert.Equal(t, ViolationUnknownType, violations[0].Kind)
}

func TestValidateOptions(t *testing.T) {
	tests := []struct {
		name   string
		field  Field
		expect []ViolationKind
	}{
		{
			"select without options",
			Field{Name: "f", Type: "select", Label: "F"},
			[]ViolationKind{ViolationOptionsMissing},
		},
		{
			"select with empty options list",
			Field{Name: "f", Type: "select", Label: "F", Options: []string{}},
			[]ViolationKind{ViolationOptionsMissing},
		},
		{
			"radio with blank option",
			Field{Name: "f", Type: "radio", Label: "F", Options: []string{"a", ""}},
			[]ViolationKind{ViolationOptionEmpty},
		},
		{
			"checkbox_group with duplicate option",
			Field{Name: "f", Type: "checkbox_group", Label: "F", Options: []string{"a", "b", "a"}},
			[]ViolationKind{ViolationOptionDuplicate},
		},
		{
			"text with options",
			Field{Name: "f", Type: "text", Label: "F", Options: []string{"a"}},
			[]ViolationKind{ViolationOptionsForbidden},
		},
		{
			"select with valid options",
			Field{Name: "f", Type: "select", Label: "F", Options: []string{"a", "b"}},
			nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Schema{Sections: []Section{{Title: "S", Fields: []Field{tt.field}}}}
			violations := Validate(s)
			kinds := []ViolationKind{}
			for _, v := range violations {
				kinds = append(kinds, v.Kind)
			}
			if tt.expect == nil {
				assert.Empty(t, kinds)
			} else {
				assert.ElementsMatch(t, tt.expect, kinds)
			}
		})
	}
}

func TestValidateAccumulatesAllViolations(t *testing.T) {
	s := Schema{Sections: []Section{{
		Title: "S",
		Fields: []Field{
			{Name: "bad name", Type: "text", Label: "A"},
			{Name: "f", Type: "stars", Label: "B"},
			{Name: "g", Type: "select", Label: "C"},
		},
	}}}
	violations := Validate(s)
	kinds := []ViolationKind{}
	for _, v := range violations {
		kinds = append(kinds, v.Kind)
	}
	assert.ElementsMatch(t, []ViolationKind{
		ViolationBadName,
		ViolationUnknownType,
		ViolationOptionsMissing,
	}, kinds)
}

func TestUniquenessHoldsForAcceptedSchemas(t *testing.T) {
	s := validSchema()
	require.Empty(t, Validate(s))

	seen := map[string]bool{}
	for _, name := range s.FieldNames() {
		assert.False(t, seen[name], "duplicate field name %q in accepted schema", name)
		seen[name] = true
	}
}
