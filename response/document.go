// Package response holds the filled-form answer document and the draft →
// submitted lifecycle of a response record.
package response

import "encoding/json"

// Document is a flat answer set keyed by field name. Value shapes follow the
// field type: string for text-like fields, bool for a single checkbox, array
// of strings for a checkbox group, opaque reference string for file and
// signature fields. An absent key means "no answer". Documents round-trip
// through JSON losslessly: booleans stay booleans, arrays stay arrays.
type Document map[string]any

// ParseDocument decodes a stored or submitted JSON document. An empty
// payload yields an empty document.
func ParseDocument(data []byte) (Document, error) {
	if len(data) == 0 {
		return Document{}, nil
	}
	doc := Document{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// JSON encodes the document for storage or transport.
func (d Document) JSON() ([]byte, error) {
	if d == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(d)
}

// Clone returns a copy with its own top-level map and copies of any array
// values, so edit sessions never alias persisted state.
func (d Document) Clone() Document {
	out := make(Document, len(d))
	for k, v := range d {
		switch vv := v.(type) {
		case []any:
			out[k] = append([]any(nil), vv...)
		case []string:
			out[k] = append([]string(nil), vv...)
		default:
			out[k] = v
		}
	}
	return out
}
