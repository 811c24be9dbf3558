package ui

import (
	"fmt"
	"html/template"
	"io/fs"
	"math"

	"github.com/dustin/go-humanize"
	"github.com/gin-gonic/gin"
	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"gemdash/domain/chart"
	"gemdash/ui/templates/fragments"
)

var funcMap = template.FuncMap{
	"minInt": func(a, b int) int {
		if a < b {
			return a
		}
		return b
	},
	"comma": func(n int) string {
		return humanize.Comma(int64(n))
	},
	"dollars": func(v float64) string {
		return "$" + humanize.Comma(int64(math.Round(v)))
	},
	// background is trusted: colours come from the fixed chart palettes.
	"background": func(color string) template.CSS {
		return template.CSS("background-color: " + color)
	},
	"textClass": textClass,
}

// textClass switches heatmap text to white on the darker half of the scale.
func textClass(grid *chart.Grid, i, j int) string {
	cell := grid.Cells[i][j]
	if cell == nil || grid.Max <= grid.Min {
		return ""
	}
	if (*cell-grid.Min)/(grid.Max-grid.Min) > 0.5 {
		return "light"
	}
	return ""
}

// parseTemplates parses every registered template under its path name.
func parseTemplates(assets fs.FS) (*template.Template, error) {
	templatesFS, err := fs.Sub(assets, "templates")
	if err != nil {
		return nil, fmt.Errorf("failed to create templates filesystem: %w", err)
	}

	templates := template.New("").Funcs(funcMap)
	for _, file := range fragments.GetAllTemplatePaths() {
		content, err := fs.ReadFile(templatesFS, file)
		if err != nil {
			return nil, fmt.Errorf("failed to read template %s: %w", file, err)
		}
		if _, err := templates.New(file).Parse(string(content)); err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", file, err)
		}
	}
	return templates, nil
}

// renderMarkdown turns the embedded page copy into HTML.
func renderMarkdown(source []byte) template.HTML {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: mdhtml.CommonFlags})
	return template.HTML(markdown.ToHTML(source, p, renderer))
}

// renderTemplate executes a template with the given data
func (s *Server) renderTemplate(c *gin.Context, templateName string, data interface{}) {
	// Render to a buffer first so errors never produce a partial page
	buf, err := s.render.Render(templateName, data)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Writer.WriteHeader(200)
	if _, err := buf.WriteTo(c.Writer); err != nil {
		s.logger.Warn("error writing template response: %v", err)
	}
}
