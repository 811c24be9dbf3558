package diamond

// Dataset is the full diamonds table. It is never modified after NewDataset.
type Dataset struct {
	rows []Diamond
}

// NewDataset copies rows into a new Dataset.
func NewDataset(rows []Diamond) *Dataset {
	owned := make([]Diamond, len(rows))
	copy(owned, rows)
	return &Dataset{rows: owned}
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	return len(d.rows)
}

// At returns row i.
func (d *Dataset) At(i int) Diamond {
	return d.rows[i]
}

// Head returns up to n leading rows formatted in Columns order.
func (d *Dataset) Head(n int) [][]string {
	if n > len(d.rows) {
		n = len(d.rows)
	}
	if n < 0 {
		n = 0
	}
	out := make([][]string, n)
	for i := 0; i < n; i++ {
		out[i] = d.rows[i].Record()
	}
	return out
}

// DistinctValues returns the values of f observed anywhere in the dataset.
// Known vocabulary values come first in vocabulary order, unknown values
// follow in order of first appearance.
func DistinctValues(d *Dataset, f Field) []string {
	seen := make(map[string]bool)
	var unknown []string
	known := make(map[string]bool)
	for _, v := range Vocabulary(f) {
		known[v] = true
	}
	for _, row := range d.rows {
		v := row.Category(f)
		if seen[v] {
			continue
		}
		seen[v] = true
		if !known[v] {
			unknown = append(unknown, v)
		}
	}

	out := make([]string, 0, len(seen))
	for _, v := range Vocabulary(f) {
		if seen[v] {
			out = append(out, v)
		}
	}
	return append(out, unknown...)
}

// Options returns DistinctValues for every filterable field.
func Options(d *Dataset) map[Field][]string {
	opts := make(map[Field][]string, len(Fields))
	for _, f := range Fields {
		opts[f] = DistinctValues(d, f)
	}
	return opts
}

// OrderValues sorts values the same way DistinctValues does, using their order
// in values for anything outside the vocabulary.
func OrderValues(f Field, values []string) []string {
	present := make(map[string]bool, len(values))
	for _, v := range values {
		present[v] = true
	}
	out := make([]string, 0, len(values))
	for _, v := range Vocabulary(f) {
		if present[v] {
			out = append(out, v)
			delete(present, v)
		}
	}
	for _, v := range values {
		if present[v] {
			out = append(out, v)
			delete(present, v)
		}
	}
	return out
}
