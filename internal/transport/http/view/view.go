// Package view renders the embedded HTML templates for gin.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"strings"

	"github.com/gin-gonic/gin/render"

	"gopher-blog/internal/app"
	"gopher-blog/internal/model"
)

//go:embed templates/*.html
var templateFS embed.FS

const layout = "templates/base.html"

// Flash is a one-shot message shown on the next rendered page.
type Flash struct {
	Category string
	Message  string
}

// Page is the data every template receives.
type Page struct {
	SiteTitle   string
	Title       string
	CurrentUser *model.User
	IsAdmin     bool
	Flash       *Flash
	Message     string

	Form   map[string]string
	Errors map[string]string

	Posts  []app.PostDetail
	Post   *app.PostDetail
	IsEdit bool
	Status int
}

// Renderer implements render.HTMLRender with one template set per page, each
// combined with the shared layout.
type Renderer struct {
	pages map[string]*template.Template
}

var funcs = template.FuncMap{
	"safe": func(s string) template.HTML {
		// post bodies come from the admin's rich text editor
		return template.HTML(s)
	},
	"authorName": func(u *model.User) string {
		if u == nil {
			return "Unknown"
		}
		return u.Name
	},
}

func NewRenderer() (*Renderer, error) {
	names, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("list templates failed: %w", err)
	}

	r := &Renderer{pages: make(map[string]*template.Template, len(names))}
	for _, name := range names {
		if name == layout {
			continue
		}
		t, err := template.New(path.Base(layout)).Funcs(funcs).ParseFS(templateFS, layout, name)
		if err != nil {
			return nil, fmt.Errorf("parse template %s failed: %w", name, err)
		}
		r.pages[strings.TrimPrefix(name, "templates/")] = t
	}
	return r, nil
}

func (r *Renderer) Instance(name string, data any) render.Render {
	t, ok := r.pages[name]
	if !ok {
		t = template.Must(template.New("base").Parse(`template {{.}} not found`))
		data = name
	}
	return render.HTML{Template: t, Name: "base", Data: data}
}
