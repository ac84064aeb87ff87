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
	"github.com/mbolis/fieldform/app"
	"github.com/mbolis/fieldform/httpx"
	"github.com/mbolis/fieldform/log"
	"github.com/mbolis/fieldform/model"
	"github.com/mbolis/fieldform/renderer"
	"github.com/mbolis/fieldform/response"
	"github.com/mbolis/fieldform/schema"
)

func CreateForm(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form := model.Form{}
		err := render.DecodeJSON(r.Body, &form)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		err = app.Validate.Struct(form)
		if err != nil {
			httpx.LogStatusMsg(w, http.StatusBadRequest, log.DebugLevel, "request.validate_body", "%s", err)
			return
		}

		// reject structurally broken schemas before anything is persisted
		if violations := schema.Validate(form.Schema); len(violations) > 0 {
			httpx.LogErrors(w, r, http.StatusUnprocessableEntity, "form.schema.invalid", violations)
			return
		}

		schemaJson, err := json.Marshal(form.Schema)
		if err != nil {
			httpx.LogInternalError(w, "db.insert_form.marshal_schema", err)
			return
		}

		now := time.Now()
		var formId int
		err = app.QueryRowContext(r.Context(), `
			INSERT INTO form (name, type, version, schema, created_at, updated_at)
			VALUES (?, ?, 1, ?, ?, ?)
			RETURNING id`,
			form.Name,
			form.Type,
			string(schemaJson),
			now,
			now,
		).Scan(&formId)
		if err != nil {
			httpx.LogInternalError(w, "db.insert_form", err)
			return
		}

		w.WriteHeader(http.StatusCreated)
		render.JSON(w, r, map[string]any{
			"id": formId,
		})
	}
}

func ListForms(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := app.QueryContext(r.Context(), `
			SELECT f.id, f.version, f.name, f.type, f.created_at, f.updated_at
			FROM form f`)
		if err != nil {
			httpx.LogInternalError(w, "db.get_forms", err)
			return
		}
		defer rows.Close()

		forms := []model.Form{}
		for rows.Next() {
			f := model.Form{}
			err = rows.Scan(&f.ID, &f.Version, &f.Name, &f.Type, &f.CreatedAt, &f.UpdatedAt)
			if err != nil {
				httpx.LogInternalError(w, "db.get_forms.scan", err)
				return
			}

			forms = append(forms, f)
		}

		render.JSON(w, r, map[string]any{
			"forms": forms,
		})
	}
}

func GetFormById(app app.App) http.HandlerFunc {
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

func UpdateForm(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		formId, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.get_url_param.id")
			return
		}

		form := model.Form{}
		err = render.DecodeJSON(r.Body, &form)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		err = app.Validate.Struct(form)
		if err != nil {
			httpx.LogStatusMsg(w, http.StatusBadRequest, log.DebugLevel, "request.validate_body", "%s", err)
			return
		}

		if violations := schema.Validate(form.Schema); len(violations) > 0 {
			httpx.LogErrors(w, r, http.StatusUnprocessableEntity, "form.schema.invalid", violations)
			return
		}

		schemaJson, err := json.Marshal(form.Schema)
		if err != nil {
			httpx.LogInternalError(w, "db.update_form.marshal_schema", err)
			return
		}

		res, err := app.ExecContext(r.Context(), `
			UPDATE form
			SET
				name = ?,
				type = ?,
				schema = ?,
				version = version+1,
				updated_at = ?
			WHERE	id = ?
				AND version = ?`,
			form.Name,
			form.Type,
			string(schemaJson),
			time.Now(),
			formId,
			form.Version,
		)
		if err != nil {
			httpx.LogInternalError(w, "db.update_form", err)
			return
		}
		// optimistic lock
		n, err := res.RowsAffected()
		if err != nil {
			httpx.LogInternalError(w, "db.update_form.verify", err)
			return
		}
		if n < 1 {
			httpx.LogStatus(w, http.StatusConflict, log.DebugLevel, "db.update_form.verify.conflict")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func DeleteForm(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		formId, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.get_url_param.id")
			return
		}

		tx, err := app.BeginTx(r.Context(), nil)
		if err != nil {
			httpx.LogInternalError(w, "db.begin_tx", err)
			return
		}
		defer tx.Rollback()

		_, err = tx.ExecContext(r.Context(), `
			DELETE FROM form_response
			WHERE form_id = ?`,
			formId,
		)
		if err != nil {
			httpx.LogInternalError(w, "db.delete_form.responses", err)
			return
		}

		res, err := tx.ExecContext(r.Context(), `
			DELETE FROM form WHERE id = ?`,
			formId,
		)
		if err != nil {
			httpx.LogInternalError(w, "db.delete_form", err)
			return
		}
		n, err := res.RowsAffected()
		if err != nil {
			httpx.LogInternalError(w, "db.delete_form.verify", err)
			return
		}
		if n < 1 {
			httpx.LogNotFound(w, "delete_form", formId)
			return
		}

		err = tx.Commit()
		if err != nil {
			httpx.LogInternalError(w, "db.delete_form.commit", err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func GetFormResponses(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		formId, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.get_url_param.id")
			return
		}

		var exists bool
		err = app.QueryRowContext(r.Context(),
			`SELECT 1 FROM form WHERE id = ?`, formId,
		).Scan(&exists)
		if errors.Is(err, sql.ErrNoRows) {
			httpx.LogNotFound(w, "get_responses", formId)
			return
		}
		if err != nil {
			httpx.LogInternalError(w, "db.get_responses.form", err)
			return
		}

		rows, err := app.QueryContext(r.Context(), `
			SELECT
				r.id, r.form_version, r.worker_id, r.job_id,
				r.document, r.is_submitted, r.submitted_at
			FROM form_response r
			WHERE r.form_id = ?
			ORDER BY r.created_at`,
			formId,
		)
		if err != nil {
			httpx.LogInternalError(w, "db.get_responses", err)
			return
		}
		defer rows.Close()

		responses := []response.Response{}
		for rows.Next() {
			resp := response.Response{FormID: formId}
			var jobId sql.NullInt64
			var documentJson string
			var submittedAt sql.NullTime
			err = rows.Scan(
				&resp.ID, &resp.FormVersion, &resp.WorkerID, &jobId,
				&documentJson, &resp.IsSubmitted, &submittedAt,
			)
			if err != nil {
				httpx.LogInternalError(w, "db.get_responses.scan", err)
				return
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
				httpx.LogInternalError(w, "db.get_responses.parse_document", err)
				return
			}

			responses = append(responses, resp)
		}

		render.JSON(w, r, map[string]any{
			"responses": responses,
		})
	}
}

// PreviewForm renders a candidate schema exactly as workers will see it,
// without persisting anything. Unknown field types show up as unsupported
// placeholders, so administrators can preview schemas the validator would
// reject.
func PreviewForm(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body := struct {
			Schema schema.Schema `json:"schema"`
		}{}
		err := render.DecodeJSON(r.Body, &body)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		sess := renderer.NewSession(renderer.Preview, body.Schema, nil)
		render.JSON(w, r, map[string]any{
			"sections":   sess.Render(),
			"violations": schema.Validate(body.Schema),
		})
	}
}
