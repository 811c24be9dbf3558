package ui

import (
	"bytes"
	"html/template"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"gemdash/app"
	"gemdash/domain/chart"
	"gemdash/internal/charts"
	"gemdash/internal/errors"
	"gemdash/internal/telemetry"
	"gemdash/ui/middleware"
	"gemdash/ui/templates/fragments"
)

// chartPanel is one chart slot of the two-column grid
type chartPanel struct {
	Spec     chart.Spec
	ImageURL string
	Width    int
	Height   int
}

type indexPage struct {
	Title     string
	About     template.HTML
	Dashboard *app.Dashboard
	Heatmap   chart.Spec
	Left      []chartPanel
	Right     []chartPanel
	Sample    *app.Sample
	Source    string
}

var (
	leftColumn  = []string{charts.NameBar, charts.NamePrice}
	rightColumn = []string{charts.NameClarity, charts.NameCarat}
)

// handleIndex renders the whole dashboard for the selection in the query string
func (s *Server) handleIndex(c *gin.Context) {
	ctx := c.Request.Context()

	dash, err := s.service.Compose(ctx, c.Request.URL.Query(), telemetry.SurfacePage)
	if err != nil {
		s.respondError(c, err)
		return
	}
	sample, err := s.service.Sample(ctx)
	if err != nil {
		s.respondError(c, err)
		return
	}

	query := app.EncodeSelection(dash.Filters).Encode()
	heatmap, _ := dash.Chart(charts.NameHeatmap)
	s.renderTemplate(c, fragments.IndexPage, indexPage{
		Title:     Title,
		About:     s.about,
		Dashboard: dash,
		Heatmap:   heatmap,
		Left:      s.panels(dash, leftColumn, query),
		Right:     s.panels(dash, rightColumn, query),
		Sample:    sample,
		Source:    s.source,
	})
}

func (s *Server) panels(dash *app.Dashboard, names []string, query string) []chartPanel {
	panels := make([]chartPanel, 0, len(names))
	for _, name := range names {
		spec, ok := dash.Chart(name)
		if !ok {
			continue
		}
		url := "/charts/" + name + ".png"
		if query != "" {
			url += "?" + query
		}
		panels = append(panels, chartPanel{Spec: spec, ImageURL: url, Width: s.width, Height: s.height})
	}
	return panels
}

// handleChart serves one chart as PNG. Empty charts answer 204.
func (s *Server) handleChart(c *gin.Context) {
	name := c.Param("name")
	ext := "." + strings.TrimPrefix(s.renderer.ContentType(), "image/")
	if !strings.HasSuffix(name, ext) {
		s.respondError(c, errors.NotFound("chart "+name))
		return
	}
	name = strings.TrimSuffix(name, ext)

	spec, err := s.service.ChartSpec(c.Request.Context(), c.Request.URL.Query(), name)
	if err != nil {
		s.respondError(c, err)
		return
	}
	if !s.renderer.Supports(spec.Kind) {
		s.respondError(c, errors.NotFound("chart "+name+ext))
		return
	}
	if spec.Empty {
		c.Status(http.StatusNoContent)
		return
	}

	var buf bytes.Buffer
	if err := s.renderer.Render(&buf, spec); err != nil {
		telemetry.ObserveChartError(name)
		s.respondError(c, err)
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, s.renderer.ContentType(), buf.Bytes())
}

// handleHealth reports the dataset size once it is loaded
func (s *Server) handleHealth(c *gin.Context) {
	rows, err := s.service.RowCount(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "rows": rows, "source": s.source})
}

func (s *Server) respondError(c *gin.Context, err error) {
	status := errors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("%s %s (request %s): %v", c.Request.Method, c.Request.URL.Path, middleware.GetRequestID(c), err)
	} else {
		s.logger.Debug("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.AbortWithStatusJSON(status, gin.H{
		"error":   errors.GetCode(err),
		"message": err.Error(),
	})
}
