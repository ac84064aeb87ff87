package schema

import "fmt"

// ValidateResponse checks an answer document against a schema and returns a
// field-keyed error map: one entry per required field whose value is empty or
// absent under its type's emptiness predicate. The full map is always
// collected so the UI can highlight every offending field at once. An empty
// map means the document may be submitted.
//
// Only required/empty checks happen here. No format validation (email
// syntax, number ranges) and no presence checks on optional fields.
func ValidateResponse(s Schema, doc map[string]any) map[string]string {
	errs := map[string]string{}
	for _, sec := range s.Sections {
		for _, f := range sec.Fields {
			if !f.Required {
				continue
			}
			ft, known := TypeOf(f.Type)
			if !known {
				// Unknown types are caught by Validate before a schema is
				// saved; a stale document cannot be blamed on the filler.
				continue
			}
			if ft.Empty(doc[f.Name]) {
				errs[f.Name] = fmt.Sprintf("%s is required", f.Label)
			}
		}
	}
	return errs
}
