package analysis

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gemdash/domain/diamond"
)

func exampleDataset() *diamond.Dataset {
	return diamond.NewDataset([]diamond.Diamond{
		{Carat: 0.2, Cut: "Ideal", Color: "E", Clarity: "SI2", Price: 100},
		{Carat: 0.4, Cut: "Ideal", Color: "E", Clarity: "SI1", Price: 200},
		{Carat: 0.6, Cut: "Fair", Color: "F", Clarity: "VS1", Price: 300},
		{Carat: 0.8, Cut: "Good", Color: "G", Clarity: "VS2", Price: 400},
		{Carat: 1.0, Cut: "Ideal", Color: "H", Clarity: "SI2", Price: 500},
	})
}

func TestSummarizeIdealCut(t *testing.T) {
	ds := exampleDataset()
	view := diamond.Filter(ds, diamond.DefaultSelection(ds).With(diamond.FieldCut, []string{"Ideal"}))

	s := Summarize(view)

	assert.Equal(t, 3, s.Count)
	assert.InDelta(t, 266.67, s.MeanPrice, 0.01)
	assert.InDelta(t, 0.5333, s.MeanCarat, 0.0001)
	assert.Equal(t, 500.0, s.MaxPrice)
	assert.True(t, s.Valid())
	assert.Equal(t, []Metric{
		{Label: "Diamonds", Value: "3"},
		{Label: "Avg. Price", Value: "$267"},
		{Label: "Avg. Carat", Value: "0.53"},
		{Label: "Max Price", Value: "$500"},
	}, s.Metrics())
}

func TestSummarizeEmptyView(t *testing.T) {
	ds := exampleDataset()
	sel := diamond.DefaultSelection(ds).
		With(diamond.FieldCut, nil).
		With(diamond.FieldColor, nil).
		With(diamond.FieldClarity, nil)

	s := Summarize(diamond.Filter(ds, sel))

	assert.Equal(t, 0, s.Count)
	assert.False(t, s.Valid())
	assert.True(t, math.IsNaN(s.MeanPrice))
	assert.True(t, math.IsNaN(s.MaxPrice))
	for _, m := range s.Metrics()[1:] {
		assert.Equal(t, NotAvailable, m.Value, m.Label)
	}
	assert.Equal(t, "0", s.Metrics()[0].Value)
}

func TestSummarizeMatchesIndependentRecomputation(t *testing.T) {
	ds := exampleDataset()
	sel := diamond.DefaultSelection(ds).With(diamond.FieldClarity, []string{"SI2", "VS2"})

	_ = Summarize(diamond.Filter(ds, diamond.DefaultSelection(ds)))
	s := Summarize(diamond.Filter(ds, sel))

	var sum, max float64
	n := 0
	for i := 0; i < ds.Len(); i++ {
		row := ds.At(i)
		if row.Clarity != "SI2" && row.Clarity != "VS2" {
			continue
		}
		n++
		sum += float64(row.Price)
		if float64(row.Price) > max {
			max = float64(row.Price)
		}
	}
	assert.Equal(t, n, s.Count)
	assert.InDelta(t, sum/float64(n), s.MeanPrice, 1e-9)
	assert.Equal(t, max, s.MaxPrice)
}

func TestThousandsFormatting(t *testing.T) {
	s := Summary{Count: 53940, MeanPrice: 3932.7997, MeanCarat: 0.7979, MaxPrice: 18823}

	metrics := s.Metrics()
	assert.Equal(t, "53,940", metrics[0].Value)
	assert.Equal(t, "$3,933", metrics[1].Value)
	assert.Equal(t, "0.80", metrics[2].Value)
	assert.Equal(t, "$18,823", metrics[3].Value)
}

func TestSummaryJSONUsesNullForUndefined(t *testing.T) {
	raw, err := json.Marshal(Summarize(diamond.View{}))
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, float64(0), decoded["count"])
	assert.Nil(t, decoded["mean_price"])
	assert.Nil(t, decoded["max_price"])
	assert.Len(t, decoded["metrics"], 4)
}
