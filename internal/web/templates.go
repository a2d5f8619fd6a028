package web

import (
	"database/sql"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/erazemk/resell/internal/model"
	"github.com/erazemk/resell/internal/session"
	"github.com/erazemk/resell/internal/store"
	"github.com/erazemk/resell/internal/wizard"
	webembed "github.com/erazemk/resell/web"
)

// Templates holds parsed HTML templates.
type Templates struct {
	templates map[string]*template.Template
}

// conditionClass maps a condition to its badge colour.
func conditionClass(c model.Condition) string {
	switch c {
	case model.ConditionNew, model.ConditionLikeNew:
		return "badge-green"
	case model.ConditionGood:
		return "badge-blue"
	case model.ConditionFair:
		return "badge-yellow"
	case model.ConditionPoor:
		return "badge-red"
	default:
		return "badge-slate"
	}
}

// money renders a purchase price with thousands separators and two
// decimals. Text that is not a valid price is shown as entered.
func money(price string) string {
	if price == "" {
		return "Not specified"
	}
	d, ok := wizard.ParsePrice(price)
	if !ok {
		return price
	}
	whole, frac, _ := strings.Cut(d.Abs().StringFixed(2), ".")
	n, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return price
	}
	sign := ""
	if d.IsNegative() {
		sign = "-"
	}
	return "$" + sign + humanize.Comma(n) + "." + frac
}

// FuncMap returns the template function map.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"conditionClass": conditionClass,
		"money":          money,
		"ago":            humanize.Time,
		"date": func(t *time.Time) string {
			if t == nil {
				return "Not specified"
			}
			return t.Format("Jan 2, 2006")
		},
		"dateValue": func(t *time.Time) string {
			if t == nil {
				return ""
			}
			return t.Format(wizard.DateLayout)
		},
		"yesNo": func(b bool) string {
			if b {
				return "Yes"
			}
			return "No"
		},
		"slide": func(direction int) string {
			switch direction {
			case session.Forward:
				return "slide-forward"
			case session.Backward:
				return "slide-backward"
			default:
				return ""
			}
		},
	}
}

// LoadTemplates parses all page templates with the layout.
func LoadTemplates() (*Templates, error) {
	tfs := webembed.TemplatesFS()

	layoutBytes, err := fs.ReadFile(tfs, "layout.html")
	if err != nil {
		return nil, fmt.Errorf("reading layout template: %w", err)
	}

	pages := []string{
		"dashboard.html",
		"wizard.html",
	}

	ts := &Templates{templates: make(map[string]*template.Template)}

	for _, page := range pages {
		pageBytes, err := fs.ReadFile(tfs, page)
		if err != nil {
			return nil, fmt.Errorf("reading template %s: %w", page, err)
		}

		tmpl := template.New(page).Funcs(FuncMap())
		tmpl, err = tmpl.Parse(string(layoutBytes))
		if err != nil {
			return nil, fmt.Errorf("parsing layout for %s: %w", page, err)
		}
		tmpl, err = tmpl.Parse(string(pageBytes))
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", page, err)
		}

		ts.templates[page] = tmpl
	}

	return ts, nil
}

// Render renders a template with the given data.
func (ts *Templates) Render(w http.ResponseWriter, name string, data any) {
	tmpl, ok := ts.templates[name]
	if !ok {
		http.Error(w, "template not found", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, "layout", data); err != nil {
		slog.Error("failed to render template", "template", name, "error", err)
	}
}

// PageData is the base data passed to all templates.
type PageData struct {
	Title  string
	Counts store.Counts
}

// Server holds all dependencies for page handlers.
type Server struct {
	DB        *sql.DB
	Sessions  *session.Manager
	Templates *Templates
}
