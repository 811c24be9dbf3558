// Package frame decodes raw tabular records into a diamond.Dataset by way of
// a gota dataframe, which does the column typing.
package frame

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"gemdash/domain/diamond"
	"gemdash/internal/errors"
)

// RequiredColumns must be present in every source.
var RequiredColumns = []string{"cut", "color", "clarity", "carat", "price"}

var columnTypes = map[string]series.Type{
	"carat":   series.Float,
	"cut":     series.String,
	"color":   series.String,
	"clarity": series.String,
	"depth":   series.Float,
	"table":   series.Float,
	"price":   series.Int,
	"x":       series.Float,
	"y":       series.Float,
	"z":       series.Float,
}

// Decode builds a dataset from records whose first row is the header.
func Decode(records [][]string) (*diamond.Dataset, error) {
	if len(records) < 2 {
		return nil, errors.DatasetInvalid("table needs a header row and at least one data row")
	}
	for i, name := range records[0] {
		records[0][i] = strings.ToLower(strings.TrimSpace(name))
	}
	df := dataframe.LoadRecords(records,
		dataframe.HasHeader(true),
		dataframe.WithTypes(columnTypes),
	)
	return fromFrame(df)
}

// DecodeCSV parses CSV text, header first.
func DecodeCSV(r io.Reader) (*diamond.Dataset, error) {
	df := dataframe.ReadCSV(r,
		dataframe.HasHeader(true),
		dataframe.WithTypes(columnTypes),
	)
	return fromFrame(df)
}

func fromFrame(df dataframe.DataFrame) (*diamond.Dataset, error) {
	if df.Err != nil {
		return nil, errors.Wrap(errors.DatasetInvalid(df.Err.Error()), "cannot parse diamonds table")
	}
	if df.Nrow() == 0 {
		return nil, errors.DatasetInvalid("diamonds table has no rows")
	}

	present := make(map[string]bool, df.Ncol())
	for _, name := range df.Names() {
		present[name] = true
	}
	var missing []string
	for _, name := range RequiredColumns {
		if !present[name] {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, errors.DatasetInvalid(fmt.Sprintf("missing required columns: %s", strings.Join(missing, ", ")))
	}

	for name := range columnTypes {
		if present[name] && df.Col(name).HasNaN() {
			return nil, errors.DatasetInvalid(fmt.Sprintf("column %s has missing or unparsable values", name))
		}
	}

	prices, err := df.Col("price").Int()
	if err != nil {
		return nil, errors.Wrap(errors.DatasetInvalid(err.Error()), "column price is not integral")
	}
	cuts := df.Col("cut").Records()
	colors := df.Col("color").Records()
	clarities := df.Col("clarity").Records()
	carats := df.Col("carat").Float()
	depth := optionalFloats(df, present, "depth")
	table := optionalFloats(df, present, "table")
	x := optionalFloats(df, present, "x")
	y := optionalFloats(df, present, "y")
	z := optionalFloats(df, present, "z")

	rows := make([]diamond.Diamond, df.Nrow())
	for i := range rows {
		rows[i] = diamond.Diamond{
			Carat:   carats[i],
			Cut:     cuts[i],
			Color:   colors[i],
			Clarity: clarities[i],
			Depth:   depth[i],
			Table:   table[i],
			Price:   prices[i],
			X:       x[i],
			Y:       y[i],
			Z:       z[i],
		}
	}
	return diamond.NewDataset(rows), nil
}

func optionalFloats(df dataframe.DataFrame, present map[string]bool, name string) []float64 {
	if !present[name] {
		return make([]float64, df.Nrow())
	}
	return df.Col(name).Float()
}

// CSVSource serves a CSV document held in memory, such as the bundled sample.
type CSVSource struct {
	name    string
	content []byte
}

// NewCSVSource wraps CSV bytes as a dataset source.
func NewCSVSource(name string, content []byte) *CSVSource {
	return &CSVSource{name: name, content: content}
}

func (s *CSVSource) Name() string {
	return s.name
}

func (s *CSVSource) Load(ctx context.Context) (*diamond.Dataset, error) {
	if len(s.content) == 0 {
		return nil, errors.DatasetUnavailable(s.name, io.ErrUnexpectedEOF)
	}
	return DecodeCSV(bytes.NewReader(s.content))
}
