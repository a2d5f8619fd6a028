package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/erazemk/resell/internal/model"
	"github.com/erazemk/resell/internal/session"
	"github.com/erazemk/resell/internal/wizard"
)

// WizardHandler drives wizard sessions over JSON.
type WizardHandler struct {
	Sessions *session.Manager
}

type fieldRequest struct {
	Value any `json:"value"`
}

// sessionID parses the {id} path value, writing an error response if it is
// not a UUID.
func sessionID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid session id")
		return uuid.Nil, false
	}
	return id, true
}

// sessionError writes the response for a session lookup failure.
func sessionError(w http.ResponseWriter, err error) {
	if errors.Is(err, session.ErrNotFound) {
		jsonError(w, http.StatusNotFound, "wizard session not found")
		return
	}
	slog.Error("wizard session failed", "error", err)
	jsonError(w, http.StatusInternalServerError, "internal error")
}

// Open handles POST /api/wizard.
func (h *WizardHandler) Open(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusCreated, h.Sessions.Open())
}

// Get handles GET /api/wizard/{id}.
func (h *WizardHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}
	st, err := h.Sessions.Get(id)
	if err != nil {
		sessionError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, st)
}

// SetField handles PUT /api/wizard/{id}/fields/{field}. The value is a JSON
// string in the same text form the web form posts, a boolean for the
// checkbox fields, or null to clear the field.
func (h *WizardHandler) SetField(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}
	field, err := wizard.ParseField(r.PathValue("field"))
	if err != nil {
		jsonError(w, http.StatusNotFound, err.Error())
		return
	}

	var req fieldRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	st, err := h.Sessions.Update(id, func(e *wizard.Engine) error {
		switch v := req.Value.(type) {
		case nil:
			return e.SetFieldText(field, "")
		case string:
			return e.SetFieldText(field, v)
		case bool:
			return e.SetField(field, v)
		default:
			return wizard.ErrFieldType
		}
	})
	if errors.Is(err, session.ErrNotFound) {
		sessionError(w, err)
		return
	}
	if err != nil {
		jsonError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	jsonResponse(w, http.StatusOK, st)
}

// ToggleAccessory handles POST /api/wizard/{id}/accessories/{accessory}.
func (h *WizardHandler) ToggleAccessory(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}
	accessory := model.Accessory(r.PathValue("accessory"))

	st, err := h.Sessions.Update(id, func(e *wizard.Engine) error {
		return e.ToggleAccessory(accessory)
	})
	if errors.Is(err, session.ErrNotFound) {
		sessionError(w, err)
		return
	}
	if errors.Is(err, model.ErrInvalidValue) {
		jsonError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		jsonError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	jsonResponse(w, http.StatusOK, st)
}

// Next handles POST /api/wizard/{id}/next. A refused advance is not an
// error: the response carries the validation errors.
func (h *WizardHandler) Next(w http.ResponseWriter, r *http.Request) {
	h.navigate(w, r, h.Sessions.Next)
}

// Back handles POST /api/wizard/{id}/back.
func (h *WizardHandler) Back(w http.ResponseWriter, r *http.Request) {
	h.navigate(w, r, h.Sessions.Back)
}

func (h *WizardHandler) navigate(w http.ResponseWriter, r *http.Request, move func(uuid.UUID) (session.State, bool, error)) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}
	st, _, err := move(id)
	if err != nil {
		sessionError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, st)
}

// Save handles POST /api/wizard/{id}/save. It answers 201 with the stored
// record, or 409 with the current state when the record is incomplete.
func (h *WizardHandler) Save(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}
	rec, st, saved, err := h.Sessions.Finalize(r.Context(), id)
	if err != nil {
		sessionError(w, err)
		return
	}
	if !saved {
		jsonResponse(w, http.StatusConflict, st)
		return
	}
	slog.Info("inventory item added", "id", rec.ID)
	jsonResponse(w, http.StatusCreated, rec)
}

// Draft handles POST /api/wizard/{id}/draft.
func (h *WizardHandler) Draft(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}
	rec, err := h.Sessions.SaveDraft(r.Context(), id)
	if err != nil {
		sessionError(w, err)
		return
	}
	slog.Info("draft saved", "id", rec.ID)
	jsonResponse(w, http.StatusCreated, rec)
}

// Close handles DELETE /api/wizard/{id}.
func (h *WizardHandler) Close(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}
	if err := h.Sessions.Close(id); err != nil {
		sessionError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"status": "closed"})
}
