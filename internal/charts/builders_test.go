package charts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gemdash/domain/chart"
	"gemdash/domain/diamond"
	"gemdash/internal/testkit"
)

func smallView() diamond.View {
	return diamond.NewView([]diamond.Diamond{
		{Carat: 0.30, Cut: "Ideal", Color: "E", Clarity: "SI2", Price: 100},
		{Carat: 0.50, Cut: "Ideal", Color: "E", Clarity: "SI1", Price: 300},
		{Carat: 0.70, Cut: "Fair", Color: "J", Clarity: "SI2", Price: 900},
		{Carat: 1.10, Cut: "Premium", Color: "D", Clarity: "VS1", Price: 2000},
		{Carat: 2.00, Cut: "Ideal", Color: "J", Clarity: "SI2", Price: 5000},
	})
}

func TestHeatmapPivot(t *testing.T) {
	spec := Heatmap(smallView())

	require.False(t, spec.Empty)
	grid := spec.Heatmap
	require.NotNil(t, grid)
	assert.Equal(t, []string{"Ideal", "Premium", "Fair"}, grid.Rows)
	assert.Equal(t, []string{"D", "E", "J"}, grid.Columns)

	// Ideal/E averages 100 and 300
	require.NotNil(t, grid.Cells[0][1])
	assert.Equal(t, 200.0, *grid.Cells[0][1])
	assert.Equal(t, "200", grid.Text[0][1])

	// Ideal/D and Fair/E have no rows and stay gaps
	assert.Nil(t, grid.Cells[0][0])
	assert.Nil(t, grid.Cells[2][1])
	assert.Empty(t, grid.Text[2][1])
	assert.Empty(t, grid.Colors[2][1])

	assert.Equal(t, 200.0, grid.Min)
	assert.Equal(t, 5000.0, grid.Max)
	assert.Equal(t, Purples[0], grid.Colors[0][1])
	assert.Equal(t, Purples[len(Purples)-1], grid.Colors[0][2])
}

func TestPriceByCutOnlyPresentCuts(t *testing.T) {
	spec := PriceByCut(smallView())

	labels := make([]string, 0, len(spec.Bars))
	for _, b := range spec.Bars {
		labels = append(labels, b.Label)
	}
	assert.Equal(t, []string{"Ideal", "Premium", "Fair"}, labels)
	assert.InDelta(t, 1800.0, spec.Bars[0].Value, 1e-9)
	assert.Equal(t, 2000.0, spec.Bars[1].Value)
	assert.Equal(t, 900.0, spec.Bars[2].Value)
}

func TestClarityDonutSharesSumToView(t *testing.T) {
	view := smallView()
	spec := ClarityDonut(view)

	require.Len(t, spec.Slices, 3)
	assert.Equal(t, "SI2", spec.Slices[0].Label)
	assert.Equal(t, 3, spec.Slices[0].Count)
	assert.Equal(t, view.Len(), spec.Total())
	assert.Equal(t, 0.4, spec.Hole)

	share := 0.0
	for _, s := range spec.Slices {
		share += s.Share
	}
	assert.InDelta(t, 1.0, share, 1e-9)
}

func TestHistogramBins(t *testing.T) {
	view := smallView()
	spec := PriceHistogram(view)

	require.Len(t, spec.Bins, HistogramBins)
	assert.Equal(t, 100.0, spec.Bins[0].Lower)
	assert.Equal(t, 5000.0, spec.Bins[HistogramBins-1].Upper)
	assert.Equal(t, 1, spec.Bins[0].Count)
	assert.Equal(t, 1, spec.Bins[HistogramBins-1].Count, "max lands in the last bin")
	assert.Equal(t, view.Len(), spec.Total())

	width := spec.Bins[0].Upper - spec.Bins[0].Lower
	for _, b := range spec.Bins[:HistogramBins-1] {
		assert.InDelta(t, width, b.Upper-b.Lower, 1e-6)
	}
}

func TestHistogramSingleValue(t *testing.T) {
	view := diamond.NewView([]diamond.Diamond{{Carat: 0.5, Price: 700}, {Carat: 0.5, Price: 700}})

	price := PriceHistogram(view)
	carat := CaratHistogram(view)

	assert.Equal(t, 2, price.Total())
	assert.Equal(t, 2, carat.Total())
	assert.InDelta(t, 685.0, price.Bins[0].Lower, 1e-9)
	assert.InDelta(t, 715.0, price.Bins[HistogramBins-1].Upper, 1e-9)
}

func TestBuildersTolerateEmptyView(t *testing.T) {
	specs := BuildAll(diamond.View{})

	require.Len(t, specs, len(Names))
	for i, spec := range specs {
		assert.Equal(t, Names[i], spec.Name)
		assert.True(t, spec.Empty, spec.Name)
		assert.Empty(t, spec.Bars)
		assert.Empty(t, spec.Slices)
		assert.Empty(t, spec.Bins)
		assert.Nil(t, spec.Heatmap)
	}
}

func TestGroupSizesMatchCount(t *testing.T) {
	gen := testkit.NewDiamondGenerator(testkit.GeneratorConfig{Rows: 400, Seed: 7})
	ds := diamond.NewDataset(gen.Generate())
	sel := diamond.DefaultSelection(ds).With(diamond.FieldColor, []string{"D", "E", "F"})
	view := diamond.Filter(ds, sel)
	require.False(t, view.Empty())

	assert.Equal(t, view.Len(), ClarityDonut(view).Total())
	assert.Equal(t, view.Len(), PriceHistogram(view).Total())
	assert.Equal(t, view.Len(), CaratHistogram(view).Total())

	heat := Heatmap(view)
	assert.Equal(t, []string{"D", "E", "F"}, heat.Heatmap.Columns)
}

func TestLookup(t *testing.T) {
	b, ok := Lookup(NameClarity)
	require.True(t, ok)
	assert.Equal(t, chart.KindDonut, b(smallView()).Kind)

	_, ok = Lookup("scatter")
	assert.False(t, ok)
}
