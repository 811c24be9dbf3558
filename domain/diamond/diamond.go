// Package diamond holds the diamonds table, the categorical filter selection
// and the filtered view derived from both.
package diamond

import (
	"strconv"
)

// Field names one of the categorical columns a user can filter on.
type Field string

const (
	FieldCut     Field = "cut"
	FieldColor   Field = "color"
	FieldClarity Field = "clarity"
)

// Fields lists the filterable fields in sidebar order.
var Fields = []Field{FieldCut, FieldColor, FieldClarity}

// ParseField returns the Field for a column name.
func ParseField(s string) (Field, bool) {
	switch Field(s) {
	case FieldCut, FieldColor, FieldClarity:
		return Field(s), true
	}
	return "", false
}

// Label is the human readable field name.
func (f Field) Label() string {
	switch f {
	case FieldCut:
		return "Cut"
	case FieldColor:
		return "Color"
	case FieldClarity:
		return "Clarity"
	}
	return string(f)
}

// Vocabularies in display order, best grade first.
var (
	CutOrder     = []string{"Ideal", "Premium", "Very Good", "Good", "Fair"}
	ColorOrder   = []string{"D", "E", "F", "G", "H", "I", "J"}
	ClarityOrder = []string{"IF", "VVS1", "VVS2", "VS1", "VS2", "SI1", "SI2", "I1"}
)

// Vocabulary returns the known values of a field in display order.
func Vocabulary(f Field) []string {
	switch f {
	case FieldCut:
		return CutOrder
	case FieldColor:
		return ColorOrder
	case FieldClarity:
		return ClarityOrder
	}
	return nil
}

// Columns is the column order of the classic diamonds table.
var Columns = []string{"carat", "cut", "color", "clarity", "depth", "table", "price", "x", "y", "z"}

// Diamond is one row of the diamonds table.
type Diamond struct {
	Carat   float64 `json:"carat" db:"carat"`
	Cut     string  `json:"cut" db:"cut"`
	Color   string  `json:"color" db:"color"`
	Clarity string  `json:"clarity" db:"clarity"`
	Depth   float64 `json:"depth" db:"depth"`
	Table   float64 `json:"table" db:"table"`
	Price   int     `json:"price" db:"price"`
	X       float64 `json:"x" db:"x"`
	Y       float64 `json:"y" db:"y"`
	Z       float64 `json:"z" db:"z"`
}

// Category returns the value of a categorical field.
func (d Diamond) Category(f Field) string {
	switch f {
	case FieldCut:
		return d.Cut
	case FieldColor:
		return d.Color
	case FieldClarity:
		return d.Clarity
	}
	return ""
}

// Record formats the row in Columns order.
func (d Diamond) Record() []string {
	return []string{
		formatFloat(d.Carat),
		d.Cut,
		d.Color,
		d.Clarity,
		formatFloat(d.Depth),
		formatFloat(d.Table),
		strconv.Itoa(d.Price),
		formatFloat(d.X),
		formatFloat(d.Y),
		formatFloat(d.Z),
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
