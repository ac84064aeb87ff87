// Package renderer projects a form schema plus an in-progress answer
// document into renderable views, and drives the save-draft / submit actions
// of a fill session.
package renderer

import (
	"errors"

	"github.com/mbolis/fieldform/response"
	"github.com/mbolis/fieldform/schema"
)

// Mode selects what a session may do with its document.
type Mode int

const (
	// Fill sessions capture worker edits and may persist them.
	Fill Mode = iota
	// Preview sessions render exactly like fill sessions but never persist;
	// the form builder uses them to show what workers will see.
	Preview
)

// ControlUnsupported is rendered for any field type the registry does not
// recognize. The schema validator rejects such schemas at authoring time, so
// this only shows up for stale or foreign schema data.
const ControlUnsupported = "unsupported"

// ErrPreviewOnly is returned when a preview session is asked to persist.
var ErrPreviewOnly = errors.New("preview session cannot persist")

// FieldView is one field ready for display: the schema attributes, the
// current value bound per the field type's shape, and the field's current
// validation error, if any.
type FieldView struct {
	Name        string   `json:"name"`
	Label       string   `json:"label"`
	Control     string   `json:"control"`
	Required    bool     `json:"required"`
	Options     []string `json:"options,omitempty"`
	Placeholder string   `json:"placeholder,omitempty"`
	Description string   `json:"description,omitempty"`
	Value       any      `json:"value,omitempty"`
	Error       string   `json:"error,omitempty"`
}

// SectionView is one rendered section.
type SectionView struct {
	Title  string      `json:"title"`
	Fields []FieldView `json:"fields"`
}

// Session owns the transient edit state of one form being filled or
// previewed: the document and the per-field error map are session state,
// never process-wide.
type Session struct {
	mode   Mode
	schema schema.Schema
	doc    response.Document
	errs   map[string]string
}

// NewSession starts a session over a schema with an initial (possibly empty)
// document, e.g. a previously saved draft.
func NewSession(mode Mode, s schema.Schema, initial response.Document) *Session {
	if initial == nil {
		initial = response.Document{}
	}
	return &Session{
		mode:   mode,
		schema: s,
		doc:    initial.Clone(),
		errs:   map[string]string{},
	}
}

// Set records an edit to one field. If the field had a validation error from
// an earlier submit attempt, only that error is cleared; other fields keep
// theirs until the next full validation.
func (s *Session) Set(name string, value any) {
	s.doc[name] = value
	delete(s.errs, name)
}

// Document returns a snapshot of the current in-memory answer document.
func (s *Session) Document() response.Document {
	return s.doc.Clone()
}

// Errors returns the current field error map, as produced by the last failed
// submit attempt minus any fields edited since.
func (s *Session) Errors() map[string]string {
	out := make(map[string]string, len(s.errs))
	for k, v := range s.errs {
		out[k] = v
	}
	return out
}

// SaveDraft hands the current document to persist. Drafts save without
// validation. Preview sessions refuse.
func (s *Session) SaveDraft(persist func(response.Document) error) error {
	if s.mode == Preview {
		return ErrPreviewOnly
	}
	return persist(s.Document())
}

// Submit re-validates the current document in full. On failure the complete
// field error map replaces the session's errors and nothing is persisted; on
// success the document is handed to persist. Preview sessions refuse.
func (s *Session) Submit(persist func(response.Document) error) (map[string]string, error) {
	if s.mode == Preview {
		return nil, ErrPreviewOnly
	}
	errs := schema.ValidateResponse(s.schema, s.doc)
	if len(errs) > 0 {
		s.errs = errs
		return s.Errors(), nil
	}
	s.errs = map[string]string{}
	return nil, persist(s.Document())
}

// Render projects the schema and current document into section views. Every
// field dispatches on its registered type for the control name; unknown
// types degrade to a visible unsupported placeholder instead of failing.
func (s *Session) Render() []SectionView {
	out := make([]SectionView, len(s.schema.Sections))
	for i, sec := range s.schema.Sections {
		views := make([]FieldView, len(sec.Fields))
		for j, f := range sec.Fields {
			views[j] = s.renderField(f)
		}
		out[i] = SectionView{Title: sec.Title, Fields: views}
	}
	return out
}

func (s *Session) renderField(f schema.Field) FieldView {
	view := FieldView{
		Name:        f.Name,
		Label:       f.Label,
		Required:    f.Required,
		Options:     f.Options,
		Placeholder: f.Placeholder,
		Description: f.Description,
		Value:       s.doc[f.Name],
		Error:       s.errs[f.Name],
	}

	ft, known := schema.TypeOf(f.Type)
	if !known {
		view.Control = ControlUnsupported
		return view
	}
	view.Control = ft.Control

	// Bind a zero value of the right shape so the front end never has to
	// guess what an absent answer looks like.
	if view.Value == nil {
		switch ft.Kind {
		case schema.KindBool:
			view.Value = false
		case schema.KindStringList:
			view.Value = []string{}
		default:
			view.Value = ""
		}
	}
	return view
}
