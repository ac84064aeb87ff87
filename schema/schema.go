// Package schema models administrator-authored form definitions: ordered
// sections of typed fields, structural validation, and pure builder
// operations over schema values.
package schema

// Field is a single input definition. Name is the key used in the answer
// document and must be unique across the whole schema.
type Field struct {
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	Label       string   `json:"label"`
	Required    bool     `json:"required"`
	Options     []string `json:"options,omitempty"`
	Placeholder string   `json:"placeholder,omitempty"`
	Description string   `json:"description,omitempty"`
}

// Section is a named, ordered group of fields.
type Section struct {
	Title  string  `json:"title"`
	Fields []Field `json:"fields"`
}

// Schema is the full form definition. It has no identity of its own: it is
// owned by a form record and stored as a JSON column.
type Schema struct {
	Sections []Section `json:"sections"`
}

// FieldByName returns the field with the given name and its coordinates,
// or ok=false if no such field exists.
func (s Schema) FieldByName(name string) (f Field, sectionIdx, fieldIdx int, ok bool) {
	for i, sec := range s.Sections {
		for j, fld := range sec.Fields {
			if fld.Name == name {
				return fld, i, j, true
			}
		}
	}
	return Field{}, -1, -1, false
}

// Clone returns a deep copy. Builder operations work on copies so callers
// never observe shared backing arrays.
func (s Schema) Clone() Schema {
	out := Schema{Sections: make([]Section, len(s.Sections))}
	for i, sec := range s.Sections {
		fields := make([]Field, len(sec.Fields))
		for j, f := range sec.Fields {
			if f.Options != nil {
				f.Options = append([]string(nil), f.Options...)
			}
			fields[j] = f
		}
		out.Sections[i] = Section{Title: sec.Title, Fields: fields}
	}
	return out
}

// FieldNames lists every field name in schema order.
func (s Schema) FieldNames() []string {
	names := []string{}
	for _, sec := range s.Sections {
		for _, f := range sec.Fields {
			names = append(names, f.Name)
		}
	}
	return names
}
