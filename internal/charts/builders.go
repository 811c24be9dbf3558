// Package charts turns a filtered view into chart specs. Every builder is a
// pure function of the view and tolerates an empty one.
package charts

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"gemdash/domain/chart"
	"gemdash/domain/diamond"
)

// Chart names, used in URLs and JSON.
const (
	NameHeatmap = "heatmap"
	NameBar     = "bar"
	NameClarity = "clarity"
	NamePrice   = "price"
	NameCarat   = "carat"
)

// Names lists every chart in page order.
var Names = []string{NameHeatmap, NameBar, NameClarity, NamePrice, NameCarat}

// HistogramBins is the fixed number of equal-width histogram bins.
const HistogramBins = 30

// Prism is the qualitative palette used for bars, slices and histograms.
var Prism = []string{
	"#5F4690", "#1D6996", "#38A6A5", "#0F8554", "#73AF48", "#EDAD08",
	"#E17C05", "#CC503E", "#94346E", "#6F4070", "#994E95", "#666666",
}

// Purples is the sequential scale of the heatmap, light to dark.
var Purples = []string{
	"#FCFBFD", "#EFEDF5", "#DADAEB", "#BCBDDC", "#9E9AC8",
	"#807DBA", "#6A51A3", "#54278F", "#3F007D",
}

// Builder turns a view into one chart.
type Builder func(view diamond.View) chart.Spec

var builders = map[string]Builder{
	NameHeatmap: Heatmap,
	NameBar:     PriceByCut,
	NameClarity: ClarityDonut,
	NamePrice:   PriceHistogram,
	NameCarat:   CaratHistogram,
}

// Lookup returns the builder registered under name.
func Lookup(name string) (Builder, bool) {
	b, ok := builders[name]
	return b, ok
}

// BuildAll runs every builder in Names order.
func BuildAll(view diamond.View) []chart.Spec {
	specs := make([]chart.Spec, 0, len(Names))
	for _, name := range Names {
		specs = append(specs, builders[name](view))
	}
	return specs
}

// Heatmap pivots mean price by cut (rows) and color (columns). Combinations
// with no rows are left as gaps.
func Heatmap(view diamond.View) chart.Spec {
	spec := chart.Spec{
		Name:    NameHeatmap,
		Kind:    chart.KindHeatmap,
		Title:   "Heatmap of Mean Price by Cut and Color",
		XLabel:  "Color",
		YLabel:  "Cut",
		Palette: Purples,
	}
	if view.Empty() {
		spec.Empty = true
		return spec
	}

	type key struct{ cut, color string }
	groups := make(map[key][]float64)
	var cuts, colors []string
	seenCut, seenColor := map[string]bool{}, map[string]bool{}
	for _, row := range view.Rows() {
		k := key{row.Cut, row.Color}
		groups[k] = append(groups[k], float64(row.Price))
		if !seenCut[row.Cut] {
			seenCut[row.Cut] = true
			cuts = append(cuts, row.Cut)
		}
		if !seenColor[row.Color] {
			seenColor[row.Color] = true
			colors = append(colors, row.Color)
		}
	}
	cuts = diamond.OrderValues(diamond.FieldCut, cuts)
	colors = diamond.OrderValues(diamond.FieldColor, colors)

	grid := &chart.Grid{
		Rows:       cuts,
		Columns:    colors,
		Cells:      make([][]*float64, len(cuts)),
		Text:       make([][]string, len(cuts)),
		Colors:     make([][]string, len(cuts)),
		Min:        math.Inf(1),
		Max:        math.Inf(-1),
		ColorLabel: "Average Price in US $",
	}
	for i, cut := range cuts {
		grid.Cells[i] = make([]*float64, len(colors))
		grid.Text[i] = make([]string, len(colors))
		grid.Colors[i] = make([]string, len(colors))
		for j, color := range colors {
			prices, ok := groups[key{cut, color}]
			if !ok {
				continue
			}
			mean := stat.Mean(prices, nil)
			grid.Cells[i][j] = &mean
			grid.Text[i][j] = fmt.Sprintf("%.0f", mean)
			grid.Min = math.Min(grid.Min, mean)
			grid.Max = math.Max(grid.Max, mean)
		}
	}
	for i := range grid.Cells {
		for j, cell := range grid.Cells[i] {
			if cell != nil {
				grid.Colors[i][j] = scaleColor(Purples, *cell, grid.Min, grid.Max)
			}
		}
	}
	spec.Heatmap = grid
	return spec
}

// PriceByCut averages price per cut present in the view.
func PriceByCut(view diamond.View) chart.Spec {
	spec := chart.Spec{
		Name:    NameBar,
		Kind:    chart.KindBar,
		Title:   "Average Diamond Price by Cut",
		XLabel:  "cut",
		YLabel:  "Avg Price ($)",
		Palette: Prism,
	}
	if view.Empty() {
		spec.Empty = true
		return spec
	}

	groups := make(map[string][]float64)
	var cuts []string
	for _, row := range view.Rows() {
		if _, ok := groups[row.Cut]; !ok {
			cuts = append(cuts, row.Cut)
		}
		groups[row.Cut] = append(groups[row.Cut], float64(row.Price))
	}
	for _, cut := range diamond.OrderValues(diamond.FieldCut, cuts) {
		spec.Bars = append(spec.Bars, chart.Bar{
			Label: cut,
			Value: stat.Mean(groups[cut], nil),
			Color: Prism[0],
		})
	}
	return spec
}

// ClarityDonut counts rows per clarity, largest segment first.
func ClarityDonut(view diamond.View) chart.Spec {
	spec := chart.Spec{
		Name:    NameClarity,
		Kind:    chart.KindDonut,
		Title:   "Diamond Clarity Distribution",
		Hole:    0.4,
		Palette: Prism,
	}
	if view.Empty() {
		spec.Empty = true
		return spec
	}

	counts := make(map[string]int)
	var clarities []string
	for _, row := range view.Rows() {
		if _, ok := counts[row.Clarity]; !ok {
			clarities = append(clarities, row.Clarity)
		}
		counts[row.Clarity]++
	}
	clarities = diamond.OrderValues(diamond.FieldClarity, clarities)
	sort.SliceStable(clarities, func(i, j int) bool {
		return counts[clarities[i]] > counts[clarities[j]]
	})

	total := float64(view.Len())
	for i, clarity := range clarities {
		spec.Slices = append(spec.Slices, chart.Slice{
			Label: clarity,
			Count: counts[clarity],
			Share: float64(counts[clarity]) / total,
			Color: Prism[i%len(Prism)],
		})
	}
	return spec
}

// PriceHistogram bins prices into HistogramBins equal-width buckets.
func PriceHistogram(view diamond.View) chart.Spec {
	return histogram(NamePrice, "Price Distribution", "Price ($)", view.Prices(), 1)
}

// CaratHistogram bins carats into HistogramBins equal-width buckets.
func CaratHistogram(view diamond.View) chart.Spec {
	return histogram(NameCarat, "Carat Distribution", "Carat", view.Carats(), 0.01)
}

// histogram spans [min, max] of values with the last bin closed on the right.
// A single distinct value gets bins of width unit centred on it.
func histogram(name, title, label string, values []float64, unit float64) chart.Spec {
	spec := chart.Spec{
		Name:    name,
		Kind:    chart.KindHistogram,
		Title:   title,
		XLabel:  label,
		YLabel:  "count",
		Palette: Prism,
	}
	if len(values) == 0 {
		spec.Empty = true
		return spec
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	lo, hi := sorted[0], sorted[len(sorted)-1]
	if lo == hi {
		half := unit * HistogramBins / 2
		lo, hi = lo-half, hi+half
	}

	dividers := floats.Span(make([]float64, HistogramBins+1), lo, hi)
	dividers[HistogramBins] = math.Nextafter(math.Max(hi, dividers[HistogramBins]), math.Inf(1))
	counts := stat.Histogram(nil, dividers, sorted, nil)

	spec.Bins = make([]chart.Bin, HistogramBins)
	for i, c := range counts {
		upper := dividers[i+1]
		if i == HistogramBins-1 {
			upper = hi
		}
		spec.Bins[i] = chart.Bin{Lower: dividers[i], Upper: upper, Count: int(c)}
	}
	return spec
}

// scaleColor picks the palette entry for v on [min, max].
func scaleColor(palette []string, v, min, max float64) string {
	if max <= min {
		return palette[len(palette)-1]
	}
	idx := int(math.Round((v - min) / (max - min) * float64(len(palette)-1)))
	if idx < 0 {
		idx = 0
	}
	if idx >= len(palette) {
		idx = len(palette) - 1
	}
	return palette[idx]
}
