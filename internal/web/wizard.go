package web

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/erazemk/resell/internal/model"
	"github.com/erazemk/resell/internal/session"
	"github.com/erazemk/resell/internal/wizard"
)

// wizardPage is the data of the wizard template.
type wizardPage struct {
	PageData
	session.State
	Steps            []wizard.Step
	Models           []model.Model
	Conditions       []model.Condition
	Colors           []model.Color
	ControllerCounts []model.ControllerCount
	Accessories      []model.Accessory
}

// WizardPage handles GET /wizard.
func (s *Server) WizardPage(w http.ResponseWriter, r *http.Request) {
	id, ok := WizardSession(r.Context())
	if !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	st, err := s.Sessions.Get(id)
	if errors.Is(err, session.ErrNotFound) {
		clearWizardCookie(w)
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	if err != nil {
		slog.Error("failed to load wizard session", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	s.Templates.Render(w, "wizard.html", &wizardPage{
		PageData:         PageData{Title: "Add Inventory Item", Counts: s.counts(r)},
		State:            st,
		Steps:            wizard.Steps(),
		Models:           model.Models,
		Conditions:       model.Conditions,
		Colors:           model.Colors,
		ControllerCounts: model.ControllerCounts,
		Accessories:      model.AccessoryCatalog,
	})
}

// WizardSubmit handles POST /wizard. Without an action it opens a new
// wizard. Otherwise the posted fields of the current step are applied and
// the action is dispatched.
func (s *Server) WizardSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	action := r.PostFormValue("action")
	if action == "" && r.PostFormValue("accessory") != "" {
		action = "toggle"
	}
	if action == "" || action == "open" {
		s.openWizard(w, r)
		return
	}

	id, ok := WizardSession(r.Context())
	if !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	_, err := s.Sessions.Update(id, func(e *wizard.Engine) error {
		applyForm(e, r)
		if action == "toggle" {
			return e.ToggleAccessory(model.Accessory(r.PostFormValue("accessory")))
		}
		return nil
	})
	if errors.Is(err, session.ErrNotFound) {
		clearWizardCookie(w)
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	if err != nil {
		slog.Warn("wizard update rejected", "action", action, "error", err)
	}

	switch action {
	case "update", "toggle":
	case "next":
		_, _, err = s.Sessions.Next(id)
	case "back":
		_, _, err = s.Sessions.Back(id)
	case "save":
		var saved bool
		_, _, saved, err = s.Sessions.Finalize(r.Context(), id)
		if err == nil && saved {
			slog.Info("inventory item added")
			s.finishWizard(w, r)
			return
		}
	case "draft":
		if _, err = s.Sessions.SaveDraft(r.Context(), id); err == nil {
			slog.Info("draft saved")
			s.finishWizard(w, r)
			return
		}
	case "close":
		if err = s.Sessions.Close(id); err == nil {
			s.finishWizard(w, r)
			return
		}
	default:
		http.Error(w, "unknown action", http.StatusBadRequest)
		return
	}
	if err != nil {
		slog.Error("wizard action failed", "action", action, "error", err)
	}

	http.Redirect(w, r, "/wizard", http.StatusSeeOther)
}

func (s *Server) openWizard(w http.ResponseWriter, r *http.Request) {
	st := s.Sessions.Open()
	token, err := s.Sessions.IssueToken(st.ID)
	if err != nil {
		slog.Error("failed to issue wizard token", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	setWizardCookie(w, token)
	http.Redirect(w, r, "/wizard", http.StatusSeeOther)
}

func (s *Server) finishWizard(w http.ResponseWriter, r *http.Request) {
	clearWizardCookie(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// applyForm copies the posted fields of the current step into the engine.
// A form rendered for another step is ignored. Unchecked checkboxes are not
// posted, so a missing checkbox means false.
func applyForm(e *wizard.Engine, r *http.Request) {
	step, err := strconv.Atoi(r.PostFormValue("step"))
	if err != nil || wizard.Step(step) != e.Step() {
		return
	}

	for _, f := range e.Step().Fields() {
		if f == wizard.FieldAccessories {
			continue
		}
		values, posted := r.PostForm[string(f)]
		if !posted && !f.Bool() {
			continue
		}
		text := ""
		if len(values) > 0 {
			text = values[len(values)-1]
		}
		if err := e.SetFieldText(f, text); err != nil {
			slog.Warn("ignoring invalid form value", "field", f, "error", err)
		}
	}
}
