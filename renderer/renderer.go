// Package renderer renders replay reports as markdown.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"
)

//go:embed templates/*.md
var templates embed.FS

// RenderPositions renders the positions table.
func RenderPositions(p *Positions) string { return renderTemplate("positions.md", p) }

// RenderHistory renders the state of every pair after each transaction.
func RenderHistory(h *History) string { return renderTemplate("history.md", h) }

// RenderLots renders the open lots of every pair.
func RenderLots(l *Lots) string { return renderTemplate("lots.md", l) }

// RenderCheck renders the list of skipped transactions.
func RenderCheck(c *Check) string { return renderTemplate("check.md", c) }

// renderTemplate renders one of the embedded templates. Failures are rendered
// in place of the document.
func renderTemplate(file string, data any) string {
	content, err := fs.ReadFile(templates, "templates/"+file)
	if err != nil {
		return fmt.Sprintf("error reading template %q: %v", file, err)
	}
	tmpl, err := template.New(file).Parse(string(content))
	if err != nil {
		return fmt.Sprintf("error parsing template %q: %v", file, err)
	}
	var b strings.Builder
	if err := tmpl.Execute(&b, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", file, err)
	}
	return b.String()
}
