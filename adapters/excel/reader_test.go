package excel

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gemdash/internal"
	"gemdash/internal/errors"
	"gemdash/internal/testkit"
)

func quietLogger() *internal.Logger {
	return internal.NewLogger(internal.LogLevelError)
}

func TestDataReaderPicksTypeByExtension(t *testing.T) {
	assert.Equal(t, "csv", NewDataReader(DefaultFileConfig("a/b.CSV"), quietLogger()).FileType())
	assert.Equal(t, "xlsx", NewDataReader(DefaultFileConfig("a/b.xlsx"), quietLogger()).FileType())
}

func TestReadCSVPadsShortRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "short.csv")
	content := "carat, cut ,color\n0.3,Ideal\n,,\n0.4,Good,E\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	table, err := NewDataReader(DefaultFileConfig(path), quietLogger()).ReadData()
	require.NoError(t, err)

	assert.Equal(t, []string{"carat", "cut", "color"}, table.Headers)
	assert.Equal(t, [][]string{{"0.3", "Ideal", ""}, {"0.4", "Good", "E"}}, table.Rows)
}

func TestReadMissingFile(t *testing.T) {
	_, err := NewDataReader(DefaultFileConfig(filepath.Join(t.TempDir(), "nope.csv")), quietLogger()).ReadData()
	require.Error(t, err)
	assert.Equal(t, errors.CodeDatasetUnavailable, errors.GetCode(err))
}

func TestFileSourceCSVAndXLSXAgree(t *testing.T) {
	rows := testkit.NewDiamondGenerator(testkit.GeneratorConfig{Rows: 25, Seed: 11}).Generate()
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "diamonds.csv")
	xlsxPath := filepath.Join(dir, "diamonds.xlsx")
	require.NoError(t, testkit.WriteCSV(csvPath, rows))
	require.NoError(t, testkit.WriteXLSX(xlsxPath, rows))

	fromCSV, err := NewFileSource(DefaultFileConfig(csvPath), quietLogger()).Load(context.Background())
	require.NoError(t, err)
	fromXLSX, err := NewFileSource(DefaultFileConfig(xlsxPath), quietLogger()).Load(context.Background())
	require.NoError(t, err)

	require.Equal(t, len(rows), fromCSV.Len())
	require.Equal(t, len(rows), fromXLSX.Len())
	for i := range rows {
		assert.Equal(t, rows[i], fromCSV.At(i))
		assert.Equal(t, rows[i].Cut, fromXLSX.At(i).Cut)
		assert.Equal(t, rows[i].Price, fromXLSX.At(i).Price)
		assert.InDelta(t, rows[i].Carat, fromXLSX.At(i).Carat, 1e-9)
	}
}

func TestFileSourceMissingSheet(t *testing.T) {
	rows := testkit.NewDiamondGenerator(testkit.GeneratorConfig{Rows: 3, Seed: 1}).Generate()
	path := filepath.Join(t.TempDir(), "diamonds.xlsx")
	require.NoError(t, testkit.WriteXLSX(path, rows))

	src := NewFileSource(FileConfig{FilePath: path, Sheet: "Prices"}, quietLogger())
	_, err := src.Load(context.Background())
	require.Error(t, err)
	assert.Equal(t, errors.CodeDatasetInvalid, errors.GetCode(err))
	assert.Equal(t, "file:"+path, src.Name())
}
