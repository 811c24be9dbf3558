// Package data bundles the sample diamonds table into the binary.
// Regenerate with: go run ./cmd/gendata -out data/diamonds.csv
package data

import (
	_ "embed"
)

// DiamondsCSV is the bundled sample, header first.
//
//go:embed diamonds.csv
var DiamondsCSV []byte
