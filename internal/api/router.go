package api

import (
	"database/sql"
	"net/http"

	"github.com/erazemk/resell/internal/session"
)

// NewRouter creates the API router with all endpoints registered.
func NewRouter(db *sql.DB, sessions *session.Manager) http.Handler {
	mux := http.NewServeMux()

	inventoryHandler := &InventoryHandler{DB: db}
	wizardHandler := &WizardHandler{Sessions: sessions}

	mux.HandleFunc("GET /api/inventory", inventoryHandler.List)
	mux.HandleFunc("DELETE /api/inventory/{index}", inventoryHandler.Delete)

	mux.HandleFunc("POST /api/wizard", wizardHandler.Open)
	mux.HandleFunc("GET /api/wizard/{id}", wizardHandler.Get)
	mux.HandleFunc("DELETE /api/wizard/{id}", wizardHandler.Close)
	mux.HandleFunc("PUT /api/wizard/{id}/fields/{field}", wizardHandler.SetField)
	mux.HandleFunc("POST /api/wizard/{id}/accessories/{accessory}", wizardHandler.ToggleAccessory)
	mux.HandleFunc("POST /api/wizard/{id}/next", wizardHandler.Next)
	mux.HandleFunc("POST /api/wizard/{id}/back", wizardHandler.Back)
	mux.HandleFunc("POST /api/wizard/{id}/save", wizardHandler.Save)
	mux.HandleFunc("POST /api/wizard/{id}/draft", wizardHandler.Draft)

	return mux
}
