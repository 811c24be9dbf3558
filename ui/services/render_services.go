// Package services renders dashboard templates to buffers so a failed render
// never leaves a half-written response.
package services

import (
	"bytes"
	"html/template"
	"strings"

	"gemdash/internal"
	"gemdash/internal/errors"
)

type RenderService struct {
	templates *template.Template
	logger    *internal.Logger
}

func NewRenderService(templates *template.Template, logger *internal.Logger) *RenderService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &RenderService{
		templates: templates,
		logger:    logger.With("Render"),
	}
}

// Render executes the named template into a buffer.
func (s *RenderService) Render(name string, data interface{}) (*bytes.Buffer, error) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		s.logger.Error("template %s failed for %T: %v", name, data, err)
		return nil, errors.Wrapf(err, "failed to render %s", name)
	}

	if strings.HasSuffix(name, ".html") && !strings.Contains(name, "/") && !strings.Contains(buf.String(), "</html>") {
		s.logger.Warn("rendered template %s appears truncated - missing </html> tag (%d bytes)", name, buf.Len())
	}
	return &buf, nil
}
