package diamond

// View is the subsequence of a Dataset matching a Selection. It belongs to a
// single render pass.
type View struct {
	rows []Diamond
}

// Filter keeps the rows whose cut, color and clarity are all selected,
// preserving dataset order. It never fails; an empty selection on any field
// yields an empty view.
func Filter(d *Dataset, sel Selection) View {
	cuts, colors, clarities := sel.set(FieldCut), sel.set(FieldColor), sel.set(FieldClarity)
	if len(cuts) == 0 || len(colors) == 0 || len(clarities) == 0 {
		return View{}
	}

	var rows []Diamond
	for _, row := range d.rows {
		if _, ok := cuts[row.Cut]; !ok {
			continue
		}
		if _, ok := colors[row.Color]; !ok {
			continue
		}
		if _, ok := clarities[row.Clarity]; !ok {
			continue
		}
		rows = append(rows, row)
	}
	return View{rows: rows}
}

// NewView wraps rows directly; used by builders and tests that do not start
// from a Dataset.
func NewView(rows []Diamond) View {
	return View{rows: append([]Diamond(nil), rows...)}
}

// Len returns the number of rows in the view.
func (v View) Len() int {
	return len(v.rows)
}

// Empty reports whether no row matched.
func (v View) Empty() bool {
	return len(v.rows) == 0
}

// Rows returns the matched rows. Callers must not modify them.
func (v View) Rows() []Diamond {
	return v.rows
}

// Prices returns the price column as floats.
func (v View) Prices() []float64 {
	out := make([]float64, len(v.rows))
	for i, row := range v.rows {
		out[i] = float64(row.Price)
	}
	return out
}

// Carats returns the carat column.
func (v View) Carats() []float64 {
	out := make([]float64, len(v.rows))
	for i, row := range v.rows {
		out[i] = row.Carat
	}
	return out
}
