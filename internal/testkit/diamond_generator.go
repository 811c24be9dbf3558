// Package testkit generates synthetic diamonds tables for tests and for the
// bundled sample.
package testkit

import (
	"encoding/csv"
	"math"
	"math/rand"
	"os"

	"github.com/xuri/excelize/v2"

	"gemdash/domain/diamond"
)

// GeneratorConfig configures the diamond generator
type GeneratorConfig struct {
	Rows int   `json:"rows"`
	Seed int64 `json:"seed"`
}

// DefaultGeneratorConfig returns the settings used for the bundled sample
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Rows: 5000,
		Seed: 42,
	}
}

type weighted struct {
	value  string
	weight float64
	factor float64 // price multiplier
}

// Category mixes roughly follow the classic diamonds table.
var (
	cutMix = []weighted{
		{"Ideal", 0.400, 1.00}, {"Premium", 0.255, 1.08}, {"Very Good", 0.224, 0.98},
		{"Good", 0.091, 0.93}, {"Fair", 0.030, 0.85},
	}
	colorMix = []weighted{
		{"D", 0.126, 1.18}, {"E", 0.182, 1.12}, {"F", 0.177, 1.07}, {"G", 0.209, 1.02},
		{"H", 0.154, 0.94}, {"I", 0.100, 0.86}, {"J", 0.052, 0.79},
	}
	clarityMix = []weighted{
		{"IF", 0.033, 1.45}, {"VVS1", 0.068, 1.33}, {"VVS2", 0.094, 1.25}, {"VS1", 0.151, 1.15},
		{"VS2", 0.227, 1.08}, {"SI1", 0.242, 1.00}, {"SI2", 0.170, 0.90}, {"I1", 0.014, 0.62},
	}
)

const (
	minPrice = 326
	maxPrice = 18823
)

// DiamondGenerator generates a deterministic diamonds table from a seed
type DiamondGenerator struct {
	config GeneratorConfig
	rng    *rand.Rand
}

// NewDiamondGenerator creates a new diamond generator
func NewDiamondGenerator(config GeneratorConfig) *DiamondGenerator {
	return &DiamondGenerator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

// Generate produces config.Rows diamonds
func (g *DiamondGenerator) Generate() []diamond.Diamond {
	rows := make([]diamond.Diamond, 0, g.config.Rows)
	for i := 0; i < g.config.Rows; i++ {
		rows = append(rows, g.generateOne())
	}
	return rows
}

func (g *DiamondGenerator) generateOne() diamond.Diamond {
	cut := g.pick(cutMix)
	color := g.pick(colorMix)
	clarity := g.pick(clarityMix)

	carat := math.Exp(math.Log(0.7) + g.rng.NormFloat64()*0.45)
	carat = round(clamp(carat, 0.2, 5.01), 2)

	price := 4000 * math.Pow(carat, 1.8) * cut.factor * color.factor * clarity.factor
	price *= math.Exp(g.rng.NormFloat64() * 0.15)
	price = clamp(math.Round(price), minPrice, maxPrice)

	depth := round(clamp(61.75+g.rng.NormFloat64()*1.4, 43, 79), 1)
	table := math.Round(clamp(57.5+g.rng.NormFloat64()*2.2, 43, 95))

	x := round(6.45*math.Cbrt(carat)+g.rng.NormFloat64()*0.05, 2)
	y := round(x+g.rng.NormFloat64()*0.04, 2)
	z := round((x+y)/2*depth/100, 2)

	return diamond.Diamond{
		Carat:   carat,
		Cut:     cut.value,
		Color:   color.value,
		Clarity: clarity.value,
		Depth:   depth,
		Table:   table,
		Price:   int(price),
		X:       x,
		Y:       y,
		Z:       z,
	}
}

func (g *DiamondGenerator) pick(mix []weighted) weighted {
	total := 0.0
	for _, w := range mix {
		total += w.weight
	}
	r := g.rng.Float64() * total
	for _, w := range mix {
		if r < w.weight {
			return w
		}
		r -= w.weight
	}
	return mix[len(mix)-1]
}

// Records formats rows as a header plus one record per diamond
func Records(rows []diamond.Diamond) [][]string {
	out := make([][]string, 0, len(rows)+1)
	out = append(out, append([]string(nil), diamond.Columns...))
	for _, row := range rows {
		out = append(out, row.Record())
	}
	return out
}

// WriteCSV writes rows with a header line
func WriteCSV(path string, rows []diamond.Diamond) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(Records(rows)); err != nil {
		return err
	}
	return w.Error()
}

// WriteXLSX writes rows to Sheet1, numbers as numeric cells
func WriteXLSX(path string, rows []diamond.Diamond) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Sheet1"
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx == -1 {
		idx, err := f.NewSheet(sheet)
		if err != nil {
			return err
		}
		f.SetActiveSheet(idx)
	}

	if err := f.SetSheetRow(sheet, "A1", &diamond.Columns); err != nil {
		return err
	}
	for r, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		values := []interface{}{
			row.Carat, row.Cut, row.Color, row.Clarity, row.Depth,
			row.Table, row.Price, row.X, row.Y, row.Z,
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
	}

	return f.SaveAs(path)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func round(x float64, decimals int) float64 {
	p := math.Pow10(decimals)
	return math.Round(x*p) / p
}
