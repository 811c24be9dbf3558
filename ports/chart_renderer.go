package ports

import (
	"io"

	"gemdash/domain/chart"
)

// ChartRenderer rasterises a chart spec. Specs with Empty set are not
// passed to a renderer.
type ChartRenderer interface {
	// ContentType is the MIME type of the rendered output
	ContentType() string

	// Supports reports whether the renderer can draw this kind of chart
	Supports(kind chart.Kind) bool

	Render(w io.Writer, spec chart.Spec) error
}
