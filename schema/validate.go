package schema

import (
	"fmt"
	"regexp"
)

// ViolationKind classifies one structural problem in a candidate schema.
type ViolationKind string

const (
	ViolationNoSections       ViolationKind = "no_sections"
	ViolationBadName          ViolationKind = "bad_name"
	ViolationReservedName     ViolationKind = "reserved_name"
	ViolationDuplicateName    ViolationKind = "duplicate_name"
	ViolationUnknownType      ViolationKind = "unknown_type"
	ViolationOptionsMissing   ViolationKind = "options_missing"
	ViolationOptionEmpty      ViolationKind = "option_empty"
	ViolationOptionDuplicate  ViolationKind = "option_duplicate"
	ViolationOptionsForbidden ViolationKind = "options_forbidden"
)

// Violation pins one structural problem to its coordinates. Section and Field
// are -1 for schema-level problems such as a missing sections list.
type Violation struct {
	Section int           `json:"section"`
	Field   int           `json:"field"`
	Kind    ViolationKind `json:"kind"`
}

func (v Violation) String() string {
	if v.Section < 0 {
		return string(v.Kind)
	}
	return fmt.Sprintf("section %d, field %d: %s", v.Section, v.Field, v.Kind)
}

var reFieldName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Keys that live alongside answers in stored documents and therefore can
// never be used as field names.
var reservedNames = map[string]bool{
	"id":    true,
	"notes": true,
}

// Validate checks a candidate schema for structural correctness and returns
// every violation found, so an authoring UI can show all problems at once.
// An empty result means the schema may be persisted.
func Validate(s Schema) []Violation {
	violations := []Violation{}

	if len(s.Sections) == 0 {
		violations = append(violations, Violation{Section: -1, Field: -1, Kind: ViolationNoSections})
		return violations
	}

	type coord struct{ section, field int }
	byName := map[string][]coord{}

	for i, sec := range s.Sections {
		for j, f := range sec.Fields {
			switch {
			case !reFieldName.MatchString(f.Name):
				violations = append(violations, Violation{Section: i, Field: j, Kind: ViolationBadName})
			case reservedNames[f.Name]:
				violations = append(violations, Violation{Section: i, Field: j, Kind: ViolationReservedName})
			default:
				byName[f.Name] = append(byName[f.Name], coord{i, j})
			}

			ft, known := TypeOf(f.Type)
			if !known {
				violations = append(violations, Violation{Section: i, Field: j, Kind: ViolationUnknownType})
				continue
			}

			switch ft.Options {
			case OptionsRequired:
				violations = append(violations, checkOptions(i, j, f.Options)...)
			case OptionsForbidden:
				if len(f.Options) > 0 {
					violations = append(violations, Violation{Section: i, Field: j, Kind: ViolationOptionsForbidden})
				}
			}
		}
	}

	// Duplicate names are reported at every coordinate involved, so the
	// builder UI can highlight each offending field.
	for _, coords := range byName {
		if len(coords) < 2 {
			continue
		}
		for _, c := range coords {
			violations = append(violations, Violation{Section: c.section, Field: c.field, Kind: ViolationDuplicateName})
		}
	}

	return violations
}

func checkOptions(section, field int, options []string) []Violation {
	violations := []Violation{}
	if len(options) == 0 {
		return append(violations, Violation{Section: section, Field: field, Kind: ViolationOptionsMissing})
	}
	seen := map[string]bool{}
	for _, opt := range options {
		if opt == "" {
			violations = append(violations, Violation{Section: section, Field: field, Kind: ViolationOptionEmpty})
			continue
		}
		if seen[opt] {
			violations = append(violations, Violation{Section: section, Field: field, Kind: ViolationOptionDuplicate})
		}
		seen[opt] = true
	}
	return violations
}
