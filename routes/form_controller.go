package routes

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"
	"github.com/mbolis/fieldform/app"
	"github.com/mbolis/fieldform/httpx"
	"github.com/mbolis/fieldform/log"
	"github.com/mbolis/fieldform/model"
	"github.com/mbolis/fieldform/response"
	"github.com/mbolis/fieldform/routes/middlewares"
)

// GetFormForFilling returns a form with its current schema, so the filler UI
// can render it.
func GetFormForFilling(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		formId, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.get_url_param.id")
			return
		}

		form, err := fetchForm(r, app, formId)
		if err != nil {
			httpx.LogInternalError(w, "db.get_form", err)
			return
		}
		if form == nil {
			httpx.LogNotFound(w, "get_form", formId)
			return
		}

		render.JSON(w, r, form)
	}
}

// OpenResponse starts a draft for the acting worker against the form's
// current version, optionally seeded with an initial document or tied to a
// job.
func OpenResponse(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		formId, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.get_url_param.id")
			return
		}

		body := struct {
			JobID    *int              `json:"job_id"`
			Document response.Document `json:"document"`
		}{}
		err = render.DecodeJSON(r.Body, &body)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		form, err := fetchForm(r, app, formId)
		if err != nil {
			httpx.LogInternalError(w, "db.get_form", err)
			return
		}
		if form == nil {
			httpx.LogNotFound(w, "get_form", formId)
			return
		}

		documentJson, err := body.Document.JSON()
		if err != nil {
			httpx.LogInternalError(w, "db.insert_response.marshal_document", err)
			return
		}

		now := time.Now()
		responseId := uuid.NewString()
		_, err = app.ExecContext(r.Context(), `
			INSERT INTO form_response
				(id, form_id, form_version, worker_id, job_id, document, is_submitted, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, 0, ?, ?)`,
			responseId,
			form.ID,
			form.Version,
			middlewares.Username(r),
			body.JobID,
			string(documentJson),
			now,
			now,
		)
		if err != nil {
			httpx.LogInternalError(w, "db.insert_response", err)
			return
		}

		w.WriteHeader(http.StatusCreated)
		render.JSON(w, r, map[string]any{
			"id": responseId,
		})
	}
}

func GetResponse(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responseId := chi.URLParam(r, "id")

		resp, err := fetchResponse(r, app, responseId)
		if err != nil {
			httpx.LogInternalError(w, "db.get_response", err)
			return
		}
		if resp == nil {
			httpx.LogNotFound(w, "get_response", responseId)
			return
		}

		render.JSON(w, r, resp)
	}
}

// SaveResponseDraft overwrites the draft document. Drafts save without
// validation; a submitted response is locked and rejects the save.
func SaveResponseDraft(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responseId := chi.URLParam(r, "id")

		body := struct {
			Document response.Document `json:"document"`
		}{}
		err := render.DecodeJSON(r.Body, &body)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		resp, err := fetchResponse(r, app, responseId)
		if err != nil {
			httpx.LogInternalError(w, "db.get_response", err)
			return
		}
		if resp == nil {
			httpx.LogNotFound(w, "get_response", responseId)
			return
		}

		err = resp.ApplyDraft(body.Document)
		if errors.Is(err, response.ErrSubmitted) {
			httpx.LogStatusMsg(w, http.StatusConflict, log.DebugLevel, "response.locked", "this response is locked")
			return
		}

		documentJson, err := resp.Document.JSON()
		if err != nil {
			httpx.LogInternalError(w, "db.update_response.marshal_document", err)
			return
		}

		// the storage layer also refuses writes to submitted responses
		res, err := app.ExecContext(r.Context(), `
			UPDATE form_response
			SET document = ?, updated_at = ?
			WHERE	id = ?
				AND is_submitted = 0`,
			string(documentJson),
			time.Now(),
			responseId,
		)
		if err != nil {
			httpx.LogInternalError(w, "db.update_response", err)
			return
		}
		n, err := res.RowsAffected()
		if err != nil {
			httpx.LogInternalError(w, "db.update_response.verify", err)
			return
		}
		if n < 1 {
			httpx.LogStatusMsg(w, http.StatusConflict, log.DebugLevel, "response.locked", "this response is locked")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// SubmitResponse validates the submitted document against the form's current
// schema and freezes the response. Validation failures come back as a
// field-keyed error map so the UI can highlight every offending field.
func SubmitResponse(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responseId := chi.URLParam(r, "id")

		body := struct {
			Document response.Document `json:"document"`
		}{}
		err := render.DecodeJSON(r.Body, &body)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		resp, err := fetchResponse(r, app, responseId)
		if err != nil {
			httpx.LogInternalError(w, "db.get_response", err)
			return
		}
		if resp == nil {
			httpx.LogNotFound(w, "get_response", responseId)
			return
		}

		form, err := fetchForm(r, app, resp.FormID)
		if err != nil {
			httpx.LogInternalError(w, "db.get_form", err)
			return
		}
		if form == nil {
			httpx.LogNotFound(w, "get_form", resp.FormID)
			return
		}

		err = resp.Submit(form.Schema, body.Document, time.Now())
		var validationErr *response.ValidationError
		switch {
		case errors.Is(err, response.ErrSubmitted):
			httpx.LogStatusMsg(w, http.StatusConflict, log.DebugLevel, "response.locked", "this response is locked")
			return
		case errors.As(err, &validationErr):
			httpx.LogErrors(w, r, http.StatusUnprocessableEntity, "response.invalid_fields", validationErr.Fields)
			return
		case err != nil:
			httpx.LogInternalError(w, "response.submit", err)
			return
		}

		documentJson, err := resp.Document.JSON()
		if err != nil {
			httpx.LogInternalError(w, "db.submit_response.marshal_document", err)
			return
		}

		res, err := app.ExecContext(r.Context(), `
			UPDATE form_response
			SET
				document = ?,
				is_submitted = 1,
				submitted_at = ?,
				updated_at = ?
			WHERE	id = ?
				AND is_submitted = 0`,
			string(documentJson),
			resp.SubmittedAt,
			resp.SubmittedAt,
			responseId,
		)
		if err != nil {
			httpx.LogInternalError(w, "db.submit_response", err)
			return
		}
		n, err := res.RowsAffected()
		if err != nil {
			httpx.LogInternalError(w, "db.submit_response.verify", err)
			return
		}
		if n < 1 {
			httpx.LogStatusMsg(w, http.StatusConflict, log.DebugLevel, "response.locked", "this response is locked")
			return
		}

		render.JSON(w, r, resp)
	}
}

func fetchForm(r *http.Request, app app.App, formId int) (*model.Form, error) {
	form := model.Form{}
	var schemaJson string
	err := app.QueryRowContext(r.Context(), `
		SELECT f.id, f.version, f.name, f.type, f.schema, f.created_at, f.updated_at
		FROM form f
		WHERE f.id = ?`,
		formId,
	).Scan(&form.ID, &form.Version, &form.Name, &form.Type, &schemaJson, &form.CreatedAt, &form.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	err = json.Unmarshal([]byte(schemaJson), &form.Schema)
	if err != nil {
		return nil, err
	}
	return &form, nil
}

// fetchResponse loads a response scoped to the acting worker, so one worker
// cannot read or edit another's drafts.
func fetchResponse(r *http.Request, app app.App, responseId string) (*response.Response, error) {
	row := app.QueryRowContext(r.Context(), `
		SELECT
			r.id, r.form_id, r.form_version, r.worker_id, r.job_id,
			r.document, r.is_submitted, r.submitted_at
		FROM form_response r
		WHERE	r.id = ?
			AND r.worker_id = ?`,
		responseId,
		middlewares.Username(r),
	)

	resp := response.Response{}
	var jobId sql.NullInt64
	var documentJson string
	var submittedAt sql.NullTime
	err := row.Scan(
		&resp.ID, &resp.FormID, &resp.FormVersion, &resp.WorkerID, &jobId,
		&documentJson, &resp.IsSubmitted, &submittedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if jobId.Valid {
		id := int(jobId.Int64)
		resp.JobID = &id
	}
	if submittedAt.Valid {
		resp.SubmittedAt = submittedAt.Time
	}
	resp.Document, err = response.ParseDocument([]byte(documentJson))
	if err != nil {
		return nil, err
	}
	return &resp, nil
}
