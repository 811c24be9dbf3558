// Package chart describes charts declaratively; turning a Spec into pixels is
// the job of a renderer.
package chart

// Kind is the chart type.
type Kind string

const (
	KindHeatmap   Kind = "heatmap"
	KindBar       Kind = "bar"
	KindDonut     Kind = "donut"
	KindHistogram Kind = "histogram"
)

// Spec is one chart: type, data and styling.
type Spec struct {
	Name   string `json:"name"`
	Kind   Kind   `json:"kind"`
	Title  string `json:"title"`
	XLabel string `json:"x_label,omitempty"`
	YLabel string `json:"y_label,omitempty"`

	// Empty is set when the filtered view had no rows; no series are present.
	Empty bool `json:"empty"`

	Bars    []Bar   `json:"bars,omitempty"`
	Slices  []Slice `json:"slices,omitempty"`
	Bins    []Bin   `json:"bins,omitempty"`
	Heatmap *Grid   `json:"heatmap,omitempty"`

	// Hole is the inner radius ratio of a donut.
	Hole    float64  `json:"hole,omitempty"`
	Palette []string `json:"palette,omitempty"`
}

// Bar is one category of a bar chart.
type Bar struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Color string  `json:"color"`
}

// Slice is one segment of a donut.
type Slice struct {
	Label string  `json:"label"`
	Count int     `json:"count"`
	Share float64 `json:"share"`
	Color string  `json:"color"`
}

// Bin is one histogram bucket covering [Lower, Upper).
type Bin struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Count int     `json:"count"`
}

// Grid is a heatmap matrix. Cells[i][j] is nil where the row/column
// combination has no data.
type Grid struct {
	Rows       []string     `json:"rows"`
	Columns    []string     `json:"columns"`
	Cells      [][]*float64 `json:"cells"`
	Text       [][]string   `json:"text"`
	Colors     [][]string   `json:"colors"`
	Min        float64      `json:"min"`
	Max        float64      `json:"max"`
	ColorLabel string       `json:"color_label"`
}

// Total returns the sum of slice counts or bin counts, whichever the spec holds.
func (s Spec) Total() int {
	total := 0
	for _, sl := range s.Slices {
		total += sl.Count
	}
	for _, b := range s.Bins {
		total += b.Count
	}
	return total
}
