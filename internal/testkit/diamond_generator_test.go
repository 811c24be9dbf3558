package testkit

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"gemdash/domain/diamond"
)

func TestDiamondGenerator_Deterministic(t *testing.T) {
	config := GeneratorConfig{Rows: 200, Seed: 42}

	first := NewDiamondGenerator(config).Generate()
	second := NewDiamondGenerator(config).Generate()

	require.Len(t, first, 200)
	assert.Equal(t, first, second)
}

func TestDiamondGenerator_Ranges(t *testing.T) {
	rows := NewDiamondGenerator(GeneratorConfig{Rows: 1000, Seed: 3}).Generate()

	known := map[diamond.Field]map[string]bool{}
	for _, f := range diamond.Fields {
		known[f] = map[string]bool{}
		for _, v := range diamond.Vocabulary(f) {
			known[f][v] = true
		}
	}

	for i, row := range rows {
		if row.Carat < 0.2 || row.Carat > 5.01 {
			t.Errorf("row %d carat %v out of range", i, row.Carat)
		}
		if row.Price < minPrice || row.Price > maxPrice {
			t.Errorf("row %d price %d out of range", i, row.Price)
		}
		for _, f := range diamond.Fields {
			if !known[f][row.Category(f)] {
				t.Errorf("row %d has unknown %s %q", i, f, row.Category(f))
			}
		}
	}

	ds := diamond.NewDataset(rows)
	assert.Len(t, diamond.DistinctValues(ds, diamond.FieldCut), len(diamond.CutOrder))
	assert.Len(t, diamond.DistinctValues(ds, diamond.FieldColor), len(diamond.ColorOrder))
}

func TestWriteCSV(t *testing.T) {
	rows := NewDiamondGenerator(GeneratorConfig{Rows: 10, Seed: 1}).Generate()
	path := filepath.Join(t.TempDir(), "diamonds.csv")

	require.NoError(t, WriteCSV(path, rows))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 11)
	assert.Equal(t, diamond.Columns, records[0])
	assert.Equal(t, rows[0].Record(), records[1])
}

func TestWriteXLSX(t *testing.T) {
	rows := NewDiamondGenerator(GeneratorConfig{Rows: 5, Seed: 1}).Generate()
	path := filepath.Join(t.TempDir(), "diamonds.xlsx")

	require.NoError(t, WriteXLSX(path, rows))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	got, err := f.GetRows("Sheet1")
	require.NoError(t, err)
	require.Len(t, got, 6)
	assert.Equal(t, diamond.Columns, got[0])
	assert.Equal(t, rows[2].Cut, got[3][1])
}
