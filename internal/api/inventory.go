package api

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/erazemk/resell/internal/model"
	"github.com/erazemk/resell/internal/store"
)

// InventoryHandler handles inventory endpoints.
type InventoryHandler struct {
	DB *sql.DB
}

type inventoryResponse struct {
	Confirmed []model.Record `json:"confirmed"`
	Drafts    []model.Record `json:"drafts"`
}

// List handles GET /api/inventory.
func (h *InventoryHandler) List(w http.ResponseWriter, r *http.Request) {
	confirmed, err := store.ListConfirmed(r.Context(), h.DB)
	if err != nil {
		slog.Error("failed to list confirmed items", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to list inventory")
		return
	}
	drafts, err := store.ListDrafts(r.Context(), h.DB)
	if err != nil {
		slog.Error("failed to list drafts", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to list inventory")
		return
	}
	jsonResponse(w, http.StatusOK, inventoryResponse{Confirmed: confirmed, Drafts: drafts})
}

// Delete handles DELETE /api/inventory/{index}.
func (h *InventoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid index")
		return
	}

	err = store.RemoveConfirmed(r.Context(), h.DB, index)
	if errors.Is(err, store.ErrIndexOutOfRange) {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}
	if err != nil {
		slog.Error("failed to remove item", "index", index, "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to remove item")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"status": "removed"})
}
