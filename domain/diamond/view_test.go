package diamond

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDataset() *Dataset {
	return NewDataset([]Diamond{
		{Carat: 0.23, Cut: "Ideal", Color: "E", Clarity: "SI2", Price: 100},
		{Carat: 0.21, Cut: "Ideal", Color: "E", Clarity: "SI1", Price: 200},
		{Carat: 0.23, Cut: "Fair", Color: "E", Clarity: "VS1", Price: 300},
		{Carat: 0.29, Cut: "Good", Color: "I", Clarity: "VS2", Price: 400},
		{Carat: 0.31, Cut: "Ideal", Color: "J", Clarity: "SI2", Price: 500},
	})
}

func TestFilterByCut(t *testing.T) {
	ds := sampleDataset()
	sel := DefaultSelection(ds).With(FieldCut, []string{"Ideal"})

	view := Filter(ds, sel)

	require.Equal(t, 3, view.Len())
	assert.Equal(t, []float64{100, 200, 500}, view.Prices())
}

func TestFilterDefaultSelectionIsIdentity(t *testing.T) {
	ds := sampleDataset()

	view := Filter(ds, DefaultSelection(ds))

	require.Equal(t, ds.Len(), view.Len())
	for i, row := range view.Rows() {
		assert.Equal(t, ds.At(i), row)
	}
}

func TestFilterEmptyFieldYieldsEmptyView(t *testing.T) {
	ds := sampleDataset()

	for _, f := range Fields {
		t.Run(string(f), func(t *testing.T) {
			view := Filter(ds, DefaultSelection(ds).With(f, nil))
			assert.True(t, view.Empty())
			assert.Equal(t, 0, view.Len())
			assert.Empty(t, view.Prices())
		})
	}

	assert.True(t, Filter(ds, Selection{}).Empty(), "zero selection selects nothing")
}

func TestFilterSubsetAndMembership(t *testing.T) {
	ds := sampleDataset()
	selections := []Selection{
		DefaultSelection(ds).With(FieldColor, []string{"E"}),
		DefaultSelection(ds).With(FieldClarity, []string{"SI2", "VS2"}),
		DefaultSelection(ds).With(FieldCut, []string{"Ideal", "Good"}).With(FieldColor, []string{"J", "I"}),
		DefaultSelection(ds).With(FieldCut, []string{"Premium"}),
	}

	for _, sel := range selections {
		view := Filter(ds, sel)

		// every kept row satisfies all three memberships
		for _, row := range view.Rows() {
			for _, f := range Fields {
				assert.True(t, sel.Contains(f, row.Category(f)), "%s=%s", f, row.Category(f))
			}
		}

		// kept rows appear in dataset order
		next := 0
		for _, row := range view.Rows() {
			found := false
			for next < ds.Len() {
				if ds.At(next) == row {
					found = true
					next++
					break
				}
				next++
			}
			assert.True(t, found, "row %+v not a subsequence of the dataset", row)
		}
	}
}

func TestFilterIsRecomputedFromInputs(t *testing.T) {
	ds := sampleDataset()
	first := Filter(ds, DefaultSelection(ds).With(FieldCut, []string{"Fair"}))
	second := Filter(ds, DefaultSelection(ds).With(FieldCut, []string{"Ideal"}))
	again := Filter(ds, DefaultSelection(ds).With(FieldCut, []string{"Fair"}))

	assert.Equal(t, 1, first.Len())
	assert.Equal(t, 3, second.Len())
	assert.Equal(t, first.Rows(), again.Rows())
}

func TestNewViewCopiesRows(t *testing.T) {
	rows := []Diamond{{Cut: "Ideal", Price: 1}}
	view := NewView(rows)
	rows[0].Price = 99

	assert.Equal(t, 1, view.Rows()[0].Price)
	assert.Equal(t, []float64{0}, view.Carats())
}
