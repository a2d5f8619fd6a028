package web

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/erazemk/resell/internal/store"
)

// ItemDeleteSubmit handles POST /items/{index}/delete. A stale index is
// ignored and the dashboard is shown again.
func (s *Server) ItemDeleteSubmit(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		http.Error(w, "invalid index", http.StatusBadRequest)
		return
	}

	err = store.RemoveConfirmed(r.Context(), s.DB, index)
	switch {
	case errors.Is(err, store.ErrIndexOutOfRange):
		slog.Debug("ignoring delete of missing item", "index", index)
	case err != nil:
		slog.Error("failed to remove item", "index", index, "error", err)
	default:
		slog.Info("item removed", "index", index)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
