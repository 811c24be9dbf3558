package excel

// Table is a sheet read as strings, header first
type Table struct {
	Headers []string   // Column headers, trimmed
	Rows    [][]string // Data rows, padded or cut to len(Headers)
}

// Records returns the header followed by the data rows
func (t *Table) Records() [][]string {
	out := make([][]string, 0, len(t.Rows)+1)
	out = append(out, append([]string(nil), t.Headers...))
	return append(out, t.Rows...)
}
