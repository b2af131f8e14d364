package handler

import (
	"bytes"
	"embed"
	"html/template"

	"github.com/gofiber/fiber/v2"

	"catfacts/internal/model"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// historyPage is the data rendered by history.html.
type historyPage struct {
	Facts []model.Fact
	Q     string
}

// render executes a page template into a buffer first so a template error never produces a half-written page.
func render(c *fiber.Ctx, name string, data any) error {
	var buf bytes.Buffer
	if err := pages.ExecuteTemplate(&buf, name, data); err != nil {
		return err
	}
	c.Type("html", "utf-8")
	return c.Send(buf.Bytes())
}
