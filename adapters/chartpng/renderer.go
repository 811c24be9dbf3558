// Package chartpng rasterises bar, donut and histogram specs with go-chart.
package chartpng

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/dustin/go-humanize"
	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"gemdash/domain/chart"
	"gemdash/internal/errors"
)

const (
	titlePadding = 40
	barSpacing   = 4
	// histogramTicks is how many bins apart the histogram labels are.
	histogramTicks = 5
	defaultColor   = "#5F4690"
)

// Renderer draws chart specs as PNG images of a fixed size
type Renderer struct {
	width  int
	height int
}

// NewRenderer creates a PNG renderer
func NewRenderer(width, height int) *Renderer {
	return &Renderer{width: width, height: height}
}

func (r *Renderer) ContentType() string {
	return "image/png"
}

// Supports reports whether the kind can be rasterised. Heatmaps are drawn as
// HTML grids instead.
func (r *Renderer) Supports(kind chart.Kind) bool {
	switch kind {
	case chart.KindBar, chart.KindDonut, chart.KindHistogram:
		return true
	}
	return false
}

// Render writes spec as PNG. Empty specs have nothing to draw and are rejected.
func (r *Renderer) Render(w io.Writer, spec chart.Spec) error {
	if !r.Supports(spec.Kind) {
		return errors.InvalidInput(fmt.Sprintf("chart kind %s cannot be rendered as png", spec.Kind))
	}
	if spec.Empty {
		return errors.InvalidInput(fmt.Sprintf("chart %s has no data", spec.Name))
	}

	var err error
	switch spec.Kind {
	case chart.KindBar:
		err = r.barChart(spec).Render(gochart.PNG, w)
	case chart.KindDonut:
		err = r.donutChart(spec).Render(gochart.PNG, w)
	case chart.KindHistogram:
		err = r.histogramChart(spec).Render(gochart.PNG, w)
	}
	if err != nil {
		return errors.RenderFailed(spec.Name, err)
	}
	return nil
}

func (r *Renderer) barChart(spec chart.Spec) gochart.BarChart {
	bars := make([]gochart.Value, len(spec.Bars))
	maxValue := 0.0
	for i, b := range spec.Bars {
		bars[i] = gochart.Value{
			Label: b.Label,
			Value: b.Value,
			Style: fill(b.Color),
		}
		maxValue = math.Max(maxValue, b.Value)
	}

	return gochart.BarChart{
		Title:      spec.Title,
		Width:      r.width,
		Height:     r.height,
		Background: gochart.Style{Padding: gochart.Box{Top: titlePadding}},
		BarWidth:   r.barWidth(len(bars)),
		BarSpacing: barSpacing,
		YAxis: gochart.YAxis{
			Name:           spec.YLabel,
			Range:          &gochart.ContinuousRange{Min: 0, Max: headroom(maxValue)},
			ValueFormatter: dollarFormatter,
		},
		Bars: bars,
	}
}

func (r *Renderer) donutChart(spec chart.Spec) gochart.DonutChart {
	values := make([]gochart.Value, len(spec.Slices))
	for i, s := range spec.Slices {
		values[i] = gochart.Value{
			Label: fmt.Sprintf("%s %.1f%%", s.Label, s.Share*100),
			Value: float64(s.Count),
			Style: fill(s.Color),
		}
	}
	return gochart.DonutChart{
		Title:      spec.Title,
		Width:      r.width,
		Height:     r.height,
		Background: gochart.Style{Padding: gochart.Box{Top: titlePadding}},
		Values:     values,
	}
}

func (r *Renderer) histogramChart(spec chart.Spec) gochart.BarChart {
	color := defaultColor
	if len(spec.Palette) > 0 {
		color = spec.Palette[0]
	}
	bars := make([]gochart.Value, len(spec.Bins))
	maxCount := 0
	for i, b := range spec.Bins {
		label := ""
		if i%histogramTicks == 0 {
			label = binLabel(b.Lower)
		}
		bars[i] = gochart.Value{
			Label: label,
			Value: float64(b.Count),
			Style: fill(color),
		}
		if b.Count > maxCount {
			maxCount = b.Count
		}
	}

	return gochart.BarChart{
		Title:      spec.Title,
		Width:      r.width,
		Height:     r.height,
		Background: gochart.Style{Padding: gochart.Box{Top: titlePadding}},
		BarWidth:   r.barWidth(len(bars)),
		BarSpacing: 1,
		YAxis: gochart.YAxis{
			Name:           spec.YLabel,
			Range:          &gochart.ContinuousRange{Min: 0, Max: headroom(float64(maxCount))},
			ValueFormatter: countFormatter,
		},
		Bars: bars,
	}
}

// barWidth shares the canvas between n bars, leaving room for the y axis.
func (r *Renderer) barWidth(n int) int {
	if n == 0 {
		return 0
	}
	width := (r.width - 120) / n
	if width > barSpacing+1 {
		width -= barSpacing
	}
	if width < 1 {
		width = 1
	}
	return width
}

// headroom pads the axis maximum so the range is never zero.
func headroom(max float64) float64 {
	if max <= 0 {
		return 1
	}
	return max * 1.1
}

func fill(hex string) gochart.Style {
	c := drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
	return gochart.Style{FillColor: c, StrokeColor: c}
}

func binLabel(v float64) string {
	if math.Abs(v) >= 100 {
		return humanize.Comma(int64(math.Round(v)))
	}
	return humanize.FormatFloat("#.##", v)
}

func dollarFormatter(v interface{}) string {
	if f, ok := v.(float64); ok {
		return "$" + humanize.Comma(int64(math.Round(f)))
	}
	return ""
}

func countFormatter(v interface{}) string {
	if f, ok := v.(float64); ok {
		return humanize.Comma(int64(math.Round(f)))
	}
	return ""
}
