package response

import (
	"errors"
	"fmt"
	"time"

	"github.com/mbolis/fieldform/schema"
)

// ErrSubmitted marks a lifecycle violation: a write was attempted on a
// response that already left the draft state. Distinct from field validation
// errors, which are user-correctable.
var ErrSubmitted = errors.New("response already submitted")

// ValidationError carries the full field-keyed error map of a failed submit.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("response has %d invalid fields", len(e.Fields))
}

// Response is one filled-form instance: a document tied to a form (and the
// form version it was opened against), a submitting worker and optionally a
// job context. Draft → submitted is a one-way transition.
type Response struct {
	ID          string    `json:"id"`
	FormID      int       `json:"form_id"`
	FormVersion int       `json:"form_version"`
	WorkerID    string    `json:"worker_id"`
	JobID       *int      `json:"job_id,omitempty"`
	Document    Document  `json:"document"`
	IsSubmitted bool      `json:"is_submitted"`
	SubmittedAt time.Time `json:"submitted_at,omitempty"`
}

// ApplyDraft replaces the draft document with doc. Draft saves are never
// validated: partial answers are the whole point of a draft. Once the
// response is submitted the draft path is closed and the call fails with
// ErrSubmitted, leaving the response untouched.
func (r *Response) ApplyDraft(doc Document) error {
	if r.IsSubmitted {
		return ErrSubmitted
	}
	r.Document = doc.Clone()
	return nil
}

// Submit validates doc against s and, when clean, freezes the response:
// the document is replaced one last time, IsSubmitted flips and SubmittedAt
// is stamped with now. On validation failure a *ValidationError with the
// complete field error map is returned and the response stays a draft.
// Submitting an already-submitted response fails with ErrSubmitted.
func (r *Response) Submit(s schema.Schema, doc Document, now time.Time) error {
	if r.IsSubmitted {
		return ErrSubmitted
	}
	if errs := schema.ValidateResponse(s, doc); len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	r.Document = doc.Clone()
	r.IsSubmitted = true
	r.SubmittedAt = now
	return nil
}
