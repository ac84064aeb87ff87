package schema

import "strings"

// Kind is the JSON value shape a field type binds in an answer document.
type Kind int

const (
	KindString    Kind = iota // scalar string
	KindBool                  // scalar boolean
	KindStringList            // array of strings
	KindReference             // opaque reference string from an upload/capture collaborator
)

// OptionsMode says whether a field type takes an options list.
type OptionsMode int

const (
	OptionsForbidden OptionsMode = iota
	OptionsRequired
)

// FieldType describes the value contract of one member of the closed type set.
type FieldType struct {
	Name    string
	Kind    Kind
	Options OptionsMode
	// Control is the render hint used by the form renderer.
	Control string
}

// The closed set of supported field types. A single checkbox binds a boolean;
// checkbox_group is its own type and binds an array of option strings.
var fieldTypes = map[string]FieldType{
	"text":           {Name: "text", Kind: KindString, Options: OptionsForbidden, Control: "input-text"},
	"email":          {Name: "email", Kind: KindString, Options: OptionsForbidden, Control: "input-email"},
	"number":         {Name: "number", Kind: KindString, Options: OptionsForbidden, Control: "input-number"},
	"textarea":       {Name: "textarea", Kind: KindString, Options: OptionsForbidden, Control: "textarea"},
	"select":         {Name: "select", Kind: KindString, Options: OptionsRequired, Control: "select"},
	"radio":          {Name: "radio", Kind: KindString, Options: OptionsRequired, Control: "radio-group"},
	"checkbox":       {Name: "checkbox", Kind: KindBool, Options: OptionsForbidden, Control: "checkbox"},
	"checkbox_group": {Name: "checkbox_group", Kind: KindStringList, Options: OptionsRequired, Control: "checkbox-group"},
	"date":           {Name: "date", Kind: KindString, Options: OptionsForbidden, Control: "input-date"},
	"datetime":       {Name: "datetime", Kind: KindString, Options: OptionsForbidden, Control: "input-datetime"},
	"file":           {Name: "file", Kind: KindReference, Options: OptionsForbidden, Control: "file-upload"},
	"signature":      {Name: "signature", Kind: KindReference, Options: OptionsForbidden, Control: "signature-pad"},
}

// TypeOf looks a field type up by name.
func TypeOf(name string) (FieldType, bool) {
	ft, ok := fieldTypes[name]
	return ft, ok
}

// KnownType reports whether name is a member of the supported type set.
func KnownType(name string) bool {
	_, ok := fieldTypes[name]
	return ok
}

// Empty is the emptiness predicate behind required-field validation: it
// decides whether a document value counts as "no answer" for this type.
// An absent key, empty or blank string, empty array and nil all count as
// empty. A required checkbox only passes once checked: false counts as
// "no answer", same as never touched.
func (ft FieldType) Empty(value any) bool {
	if value == nil {
		return true
	}
	switch ft.Kind {
	case KindBool:
		b, ok := value.(bool)
		return !ok || !b
	case KindStringList:
		switch v := value.(type) {
		case []string:
			return len(v) == 0
		case []any:
			return len(v) == 0
		}
		return false
	default: // KindString, KindReference
		if s, ok := value.(string); ok {
			return strings.TrimSpace(s) == ""
		}
		// A value of an unexpected JSON shape still counts as an answer;
		// shape enforcement is not the validator's job.
		return false
	}
}
