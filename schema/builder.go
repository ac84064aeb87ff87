package schema

import "fmt"

// Builder operations produce new schema values and never mutate their input,
// so an authoring UI gets undo/redo and preview for free. Out-of-range
// indices are programmer errors and panic; user-correctable problems belong
// to Validate.

// AddSection appends a new empty section with the given title.
func AddSection(s Schema, title string) Schema {
	out := s.Clone()
	out.Sections = append(out.Sections, Section{Title: title, Fields: []Field{}})
	return out
}

// RenameSection sets the title of the section at index.
func RenameSection(s Schema, index int, title string) Schema {
	checkSection(s, index)
	out := s.Clone()
	out.Sections[index].Title = title
	return out
}

// RemoveSection drops the section at index together with its fields.
// The last remaining section cannot be removed: the builder must always
// have at least one section to work in.
func RemoveSection(s Schema, index int) (Schema, error) {
	checkSection(s, index)
	if len(s.Sections) == 1 {
		return s, fmt.Errorf("cannot remove the last section")
	}
	out := s.Clone()
	out.Sections = append(out.Sections[:index], out.Sections[index+1:]...)
	return out, nil
}

// AddField appends a field to the section at sectionIndex.
func AddField(s Schema, sectionIndex int, f Field) Schema {
	checkSection(s, sectionIndex)
	out := s.Clone()
	out.Sections[sectionIndex].Fields = append(out.Sections[sectionIndex].Fields, f)
	return out
}

// FieldPatch selects which attributes UpdateField overwrites. Nil members
// leave the current value in place.
type FieldPatch struct {
	Name        *string
	Type        *string
	Label       *string
	Required    *bool
	Options     *[]string
	Placeholder *string
	Description *string
}

// UpdateField applies a partial patch to one field.
func UpdateField(s Schema, sectionIndex, fieldIndex int, patch FieldPatch) Schema {
	checkField(s, sectionIndex, fieldIndex)
	out := s.Clone()
	f := &out.Sections[sectionIndex].Fields[fieldIndex]
	if patch.Name != nil {
		f.Name = *patch.Name
	}
	if patch.Type != nil {
		f.Type = *patch.Type
	}
	if patch.Label != nil {
		f.Label = *patch.Label
	}
	if patch.Required != nil {
		f.Required = *patch.Required
	}
	if patch.Options != nil {
		f.Options = append([]string(nil), (*patch.Options)...)
	}
	if patch.Placeholder != nil {
		f.Placeholder = *patch.Placeholder
	}
	if patch.Description != nil {
		f.Description = *patch.Description
	}
	return out
}

// RemoveField drops one field from a section.
func RemoveField(s Schema, sectionIndex, fieldIndex int) Schema {
	checkField(s, sectionIndex, fieldIndex)
	out := s.Clone()
	fields := out.Sections[sectionIndex].Fields
	out.Sections[sectionIndex].Fields = append(fields[:fieldIndex], fields[fieldIndex+1:]...)
	return out
}

// ReorderField moves the field at position from to position to within a
// section, shifting the fields in between.
func ReorderField(s Schema, sectionIndex, from, to int) Schema {
	checkField(s, sectionIndex, from)
	checkField(s, sectionIndex, to)
	out := s.Clone()
	fields := out.Sections[sectionIndex].Fields
	f := fields[from]
	fields = append(fields[:from], fields[from+1:]...)
	fields = append(fields[:to], append([]Field{f}, fields[to:]...)...)
	out.Sections[sectionIndex].Fields = fields
	return out
}

func checkSection(s Schema, index int) {
	if index < 0 || index >= len(s.Sections) {
		panic(fmt.Sprintf("schema: section index %d out of range [0,%d)", index, len(s.Sections)))
	}
}

func checkField(s Schema, sectionIndex, fieldIndex int) {
	checkSection(s, sectionIndex)
	n := len(s.Sections[sectionIndex].Fields)
	if fieldIndex < 0 || fieldIndex >= n {
		panic(fmt.Sprintf("schema: field index %d out of range [0,%d) in section %d", fieldIndex, n, sectionIndex))
	}
}
