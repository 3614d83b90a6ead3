package storefront

import (
	"embed"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/flatdango/internal/utils"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer implements echo.Renderer over the embedded templates.
type Renderer struct {
	t *template.Template
}

// ErrorView is the data of error.html.
type ErrorView struct {
	Message string
}

// VerifyView is the data of verify.html.
type VerifyView struct {
	Valid  bool
	Claims *utils.ReceiptClaims
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	t, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Renderer{t: t}, nil
}

// MustRenderer is NewRenderer that panics; the templates are compiled in so
// a failure is a build defect.
func MustRenderer() *Renderer {
	r, err := NewRenderer()
	if err != nil {
		panic(err)
	}
	return r
}

// Render executes the named template.
func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return r.t.ExecuteTemplate(w, name, data)
}

// RenderCard writes only the featured card fragment.
func (r *Renderer) RenderCard(w io.Writer, card Card) error {
	return r.t.ExecuteTemplate(w, "card", card)
}
