package handler

import (
	"bytes"
	"html/template"
	"strings"

	"github.com/gofiber/fiber/v2"

	"advocatehub/internal/model"
	"advocatehub/internal/viewer"
)

var pageTmpl = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>{{.Title}}</title>
</head>
<body>
{{.Body}}
</body>
</html>`))

var loginFormTmpl = template.Must(template.New("login").Parse(`<form class="login" method="post" action="/auth/login">
  <input type="hidden" name="next" value="{{.}}" />
  <label>Email <input type="email" name="email" required /></label>
  <label>Password <input type="password" name="password" required /></label>
  <button type="submit">Sign in</button>
</form>`))

func renderPage(c *fiber.Ctx, status int, title string, body template.HTML) error {
	var buf bytes.Buffer
	if err := pageTmpl.Execute(&buf, struct {
		Title string
		Body  template.HTML
	}{title, body}); err != nil {
		return err
	}
	return c.Status(status).Type("html").Send(buf.Bytes())
}

// LoginPage renders the sign-in form. The optional next parameter is carried through.
func LoginPage() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var buf bytes.Buffer
		if err := loginFormTmpl.Execute(&buf, safeNext(c.Query("next"))); err != nil {
			return err
		}
		return renderPage(c, fiber.StatusOK, "Sign in", template.HTML(buf.String()))
	}
}

// Viewer renders the directive chosen for ?src= and ?type=. Clients asking for JSON
// get the directive itself.
//
// @Summary Render a document locator
// @Tags documents
// @Param src query string false "document locator"
// @Param type query string false "declared type (pdf, image)"
// @Success 200 {object} viewer.Directive
// @Router /viewer [get]
func Viewer() fiber.Handler {
	return func(c *fiber.Ctx) error {
		d := viewer.Select(model.DocumentReference{
			Locator:      c.Query("src"),
			DeclaredType: c.Query("type"),
		})
		if c.Accepts(fiber.MIMETextHTML, fiber.MIMEApplicationJSON) == fiber.MIMEApplicationJSON {
			return c.JSON(d)
		}
		var buf bytes.Buffer
		if err := viewer.Render(&buf, d); err != nil {
			return err
		}
		return renderPage(c, fiber.StatusOK, "Document", template.HTML(buf.String()))
	}
}

// safeNext keeps only local absolute paths so the login form cannot redirect off-site.
func safeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.Contains(next, `\`) {
		return ""
	}
	return next
}
