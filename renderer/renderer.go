// Package renderer renders the purchase desk views as markdown.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"
)

//go:embed templates/*.md
var templateFiles embed.FS

// templates holds the template files at its root.
var templates, _ = fs.Sub(templateFiles, "templates")

// RenderDraft renders the state of a purchase draft.
func RenderDraft(d *Draft) string {
	partials := map[string]string{
		"draft_title":    "draft_title.md",
		"draft_inputs":   "draft_inputs.md",
		"draft_messages": "draft_messages.md",
	}
	return renderTemplate("draft", "draft.md", partials, d)
}

// RenderCatalog renders a list of instruments.
func RenderCatalog(c *Catalog) string {
	return renderTemplate("catalog", "catalog.md", nil, c)
}

// RenderOrder renders an executed order.
func RenderOrder(o *Order) string {
	return renderTemplate("order", "order.md", nil, o)
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		content, err := fs.ReadFile(templates, file)
		if err != nil {
			return fmt.Sprintf("error reading partial template %q: %v", file, err)
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
