package migration

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"gemdash/internal/errors"
)

func TestCreateTableQuery(t *testing.T) {
	q := CreateTableQuery("diamonds")

	assert.Contains(t, q, `CREATE TABLE IF NOT EXISTS "diamonds"`)
	assert.Contains(t, q, "price INTEGER NOT NULL")
	assert.Contains(t, q, `"table" DOUBLE PRECISION`)
}

func TestIndexQueries(t *testing.T) {
	qs := IndexQueries("gems")

	assert.Len(t, qs, 3)
	assert.Equal(t, `CREATE INDEX IF NOT EXISTS "idx_gems_cut" ON "gems" (cut)`, qs[0])
	assert.Contains(t, qs[2], "(clarity)")
}

func TestRunnerRejectsEmptyTable(t *testing.T) {
	var m Migrator = NewRunner("")

	assert.Equal(t, "1.0.0", m.Version())
	err := m.Run(context.Background(), nil)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
}
