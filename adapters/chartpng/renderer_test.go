package chartpng

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gemdash/domain/chart"
	"gemdash/domain/diamond"
	"gemdash/internal/charts"
	"gemdash/internal/errors"
	"gemdash/internal/testkit"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func TestRenderEverySupportedChart(t *testing.T) {
	rows := testkit.NewDiamondGenerator(testkit.GeneratorConfig{Rows: 300, Seed: 4}).Generate()
	view := diamond.NewView(rows)
	r := NewRenderer(640, 420)

	for _, spec := range charts.BuildAll(view) {
		if !r.Supports(spec.Kind) {
			assert.Equal(t, chart.KindHeatmap, spec.Kind)
			continue
		}
		t.Run(spec.Name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, r.Render(&buf, spec))
			assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))
		})
	}
}

func TestRenderSingleRowView(t *testing.T) {
	view := diamond.NewView([]diamond.Diamond{{Carat: 0.5, Cut: "Ideal", Color: "E", Clarity: "VS1", Price: 1500}})
	r := NewRenderer(640, 420)

	for _, build := range []charts.Builder{charts.PriceByCut, charts.ClarityDonut, charts.PriceHistogram, charts.CaratHistogram} {
		spec := build(view)
		var buf bytes.Buffer
		require.NoError(t, r.Render(&buf, spec), spec.Name)
		assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic), spec.Name)
	}
}

func TestRenderRejectsEmptyAndHeatmap(t *testing.T) {
	r := NewRenderer(640, 420)
	empty := charts.PriceByCut(diamond.NewView(nil))

	err := r.Render(&bytes.Buffer{}, empty)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))

	err = r.Render(&bytes.Buffer{}, chart.Spec{Name: "heatmap", Kind: chart.KindHeatmap})
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
	assert.False(t, r.Supports(chart.KindHeatmap))
	assert.Equal(t, "image/png", r.ContentType())
}

func TestBarWidthFitsCanvas(t *testing.T) {
	r := NewRenderer(640, 420)

	assert.Equal(t, 0, r.barWidth(0))
	assert.LessOrEqual(t, 30*(r.barWidth(30)+1), 640)
	assert.Equal(t, 1.0, headroom(0))
}
