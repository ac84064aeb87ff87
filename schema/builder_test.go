package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func builderSchema() Schema {
	return Schema{Sections: []Section{
		{Title: "Info", Fields: []Field{
			{Name: "email", Type: "email", Label: "Email", Required: true},
			{Name: "age", Type: "number", Label: "Age"},
			{Name: "severity", Type: "select", Label: "Severity", Options: []string{"low", "high"}},
		}},
	}}
}

func TestAddSection(t *testing.T) {
	s := builderSchema()
	out := AddSection(s, "Extra")

	require.Len(t, out.Sections, 2)
	assert.Equal(t, "Extra", out.Sections[1].Title)
	assert.Empty(t, out.Sections[1].Fields)
	// input untouched
	assert.Len(t, s.Sections, 1)
}

func TestRenameSection(t *testing.T) {
	s := builderSchema()
	out := RenameSection(s, 0, "General")
	assert.Equal(t, "General", out.Sections[0].Title)
	assert.Equal(t, "Info", s.Sections[0].Title)
}

func TestRemoveSection(t *testing.T) {
	s := AddSection(builderSchema(), "Extra")
	out, err := RemoveSection(s, 1)
	require.NoError(t, err)
	assert.Len(t, out.Sections, 1)

	// a schema must retain at least one section
	_, err = RemoveSection(out, 0)
	assert.Error(t, err)
}

func TestRemoveSectionDropsItsFields(t *testing.T) {
	s := builderSchema()
	s = AddSection(s, "Extra")
	s = AddField(s, 1, Field{Name: "notes_extra", Type: "textarea", Label: "Notes"})

	out, err := RemoveSection(s, 1)
	require.NoError(t, err)
	assert.NotContains(t, out.FieldNames(), "notes_extra")
}

func TestAddRemoveFieldRoundTrip(t *testing.T) {
	s := builderSchema()
	added := AddField(s, 0, Field{Name: "site", Type: "text", Label: "Site"})
	require.Len(t, added.Sections[0].Fields, 4)

	removed := RemoveField(added, 0, 3)
	assert.Equal(t, s.FieldNames(), removed.FieldNames())
	// original never changed along the way
	assert.Len(t, s.Sections[0].Fields, 3)
}

func TestUpdateFieldPartialPatch(t *testing.T) {
	s := builderSchema()
	label := "Contact email"
	required := false
	out := UpdateField(s, 0, 0, FieldPatch{Label: &label, Required: &required})

	f := out.Sections[0].Fields[0]
	assert.Equal(t, "Contact email", f.Label)
	assert.False(t, f.Required)
	// untouched attributes survive
	assert.Equal(t, "email", f.Name)
	assert.Equal(t, "email", f.Type)

	// input untouched
	assert.Equal(t, "Email", s.Sections[0].Fields[0].Label)
	assert.True(t, s.Sections[0].Fields[0].Required)
}

func TestUpdateFieldOptionsCopied(t *testing.T) {
	s := builderSchema()
	opts := []string{"low", "medium", "high"}
	out := UpdateField(s, 0, 2, FieldPatch{Options: &opts})

	opts[0] = "mutated"
	assert.Equal(t, []string{"low", "medium", "high"}, out.Sections[0].Fields[2].Options)
}

func TestReorderField(t *testing.T) {
	s := builderSchema()
	out := ReorderField(s, 0, 2, 0)

	assert.Equal(t, []string{"severity", "email", "age"}, out.FieldNames())
	assert.Equal(t, []string{"email", "age", "severity"}, s.FieldNames())

	// move back restores the original order
	back := ReorderField(out, 0, 0, 2)
	assert.Equal(t, s.FieldNames(), back.FieldNames())
}

func TestBuilderPanicsOnBadIndex(t *testing.T) {
	s := builderSchema()
	assert.Panics(t, func() { RenameSection(s, 5, "X") })
	assert.Panics(t, func() { AddField(s, -1, Field{}) })
	assert.Panics(t, func() { RemoveField(s, 0, 7) })
	assert.Panics(t, func() { ReorderField(s, 0, 0, 9) })
}
