package web

import (
	"log/slog"
	"net/http"

	"github.com/erazemk/resell/internal/model"
	"github.com/erazemk/resell/internal/store"
)

// Dashboard handles GET /.
func (s *Server) Dashboard(w http.ResponseWriter, r *http.Request) {
	confirmed, err := store.ListConfirmed(r.Context(), s.DB)
	if err != nil {
		slog.Error("failed to list confirmed items for dashboard", "error", err)
	}
	drafts, err := store.ListDrafts(r.Context(), s.DB)
	if err != nil {
		slog.Error("failed to list drafts for dashboard", "error", err)
	}

	s.Templates.Render(w, "dashboard.html", &struct {
		PageData
		Confirmed []model.Record
		Drafts    []model.Record
	}{
		PageData: PageData{
			Title:  "PS5 Inventory",
			Counts: store.Counts{Confirmed: len(confirmed), Drafts: len(drafts)},
		},
		Confirmed: confirmed,
		Drafts:    drafts,
	})
}

// counts returns the header badge numbers, logging failures.
func (s *Server) counts(r *http.Request) store.Counts {
	c, err := store.CountRecords(r.Context(), s.DB)
	if err != nil {
		slog.Error("failed to count records", "error", err)
	}
	return c
}
