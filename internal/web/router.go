package web

import (
	"database/sql"
	"net/http"

	"github.com/erazemk/resell/internal/session"
	webembed "github.com/erazemk/resell/web"
)

// NewRouter creates the web page router with all page routes registered.
func NewRouter(db *sql.DB, sessions *session.Manager) (http.Handler, error) {
	templates, err := LoadTemplates()
	if err != nil {
		return nil, err
	}

	s := &Server{
		DB:        db,
		Sessions:  sessions,
		Templates: templates,
	}

	mux := http.NewServeMux()
	withWizard := WizardSessionMiddleware(sessions)

	// Static assets.
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(webembed.StaticFS()))))

	mux.HandleFunc("GET /{$}", s.Dashboard)
	mux.HandleFunc("POST /items/{index}/delete", s.ItemDeleteSubmit)

	mux.Handle("GET /wizard", withWizard(http.HandlerFunc(s.WizardPage)))
	mux.Handle("POST /wizard", withWizard(http.HandlerFunc(s.WizardSubmit)))

	return mux, nil
}
