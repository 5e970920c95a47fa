package web

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"github.com/bookshelf-web/internal/model"
)

//go:embed templates/*.html
var templateFS embed.FS

var templateFuncs = template.FuncMap{
	// times lets a template repeat a block n times (progress squares).
	"times": func(n int) []struct{} {
		if n < 0 {
			n = 0
		}
		return make([]struct{}, n)
	},
}

var pageNames = []string{
	"index", "login", "register",
	"books", "book_form", "confirm_delete",
	"profile", "admin",
}

// pages holds one template set per page, each sharing the layout.
var pages = func() map[string]*template.Template {
	m := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		m[name] = template.Must(template.New("layout.html").
			Funcs(templateFuncs).
			ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html"))
	}
	return m
}()

// basePage carries what the layout needs on every page: fresh session
// claims for the navigation bar and the pending notification.
type basePage struct {
	Title  string
	Claims *model.SessionClaims
	Flash  *Flash
}

func (h *Handler) render(w http.ResponseWriter, name string, data any) {
	t, ok := pages[name]
	if !ok {
		h.log.Errorw("unknown page template", "name", name)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		h.log.Errorw("render page", "name", name, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}
