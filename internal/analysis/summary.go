// Package analysis computes the scalar reductions shown in the metrics row.
package analysis

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/dustin/go-humanize"
	"github.com/montanaflynn/stats"

	"gemdash/domain/diamond"
)

// NotAvailable is shown in place of a reduction over an empty view.
const NotAvailable = "N/A"

// Summary holds count, mean price, mean carat and max price of a view.
// The three reductions are NaN when Count is zero.
type Summary struct {
	Count     int
	MeanPrice float64
	MeanCarat float64
	MaxPrice  float64
}

// Metric is one labelled, formatted tile of the metrics row.
type Metric struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Summarize reduces a filtered view. It never fails: an empty view gives a
// zero count and NaN reductions.
func Summarize(view diamond.View) Summary {
	summary := Summary{
		Count:     view.Len(),
		MeanPrice: math.NaN(),
		MeanCarat: math.NaN(),
		MaxPrice:  math.NaN(),
	}
	if view.Empty() {
		return summary
	}

	prices := view.Prices()
	if mean, err := stats.Mean(prices); err == nil {
		summary.MeanPrice = mean
	}
	if max, err := stats.Max(prices); err == nil {
		summary.MaxPrice = max
	}
	if mean, err := stats.Mean(view.Carats()); err == nil {
		summary.MeanCarat = mean
	}
	return summary
}

// Valid reports whether the reductions are defined.
func (s Summary) Valid() bool {
	return s.Count > 0
}

// Metrics formats the four tiles.
func (s Summary) Metrics() []Metric {
	return []Metric{
		{Label: "Diamonds", Value: humanize.Comma(int64(s.Count))},
		{Label: "Avg. Price", Value: dollars(s.MeanPrice)},
		{Label: "Avg. Carat", Value: decimal(s.MeanCarat, 2)},
		{Label: "Max Price", Value: dollars(s.MaxPrice)},
	}
}

func dollars(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return NotAvailable
	}
	return "$" + humanize.Comma(int64(math.Round(v)))
}

func decimal(v float64, places int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return NotAvailable
	}
	return fmt.Sprintf("%.*f", places, v)
}

type summaryJSON struct {
	Count     int      `json:"count"`
	MeanPrice *float64 `json:"mean_price"`
	MeanCarat *float64 `json:"mean_carat"`
	MaxPrice  *float64 `json:"max_price"`
	Metrics   []Metric `json:"metrics"`
}

// MarshalJSON writes undefined reductions as null.
func (s Summary) MarshalJSON() ([]byte, error) {
	return json.Marshal(summaryJSON{
		Count:     s.Count,
		MeanPrice: finite(s.MeanPrice),
		MeanCarat: finite(s.MeanCarat),
		MaxPrice:  finite(s.MaxPrice),
		Metrics:   s.Metrics(),
	})
}

func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
