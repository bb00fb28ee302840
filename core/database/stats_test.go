package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountRows(t *testing.T) {
	cfg := Config{
		Driver: "sqlite",
		Name:   ":memory:",
	}
	db, err := Connect(cfg)
	assert.NoError(t, err)
	assert.NotNil(t, db)

	err = db.Exec("CREATE TABLE runs (id TEXT PRIMARY KEY, operation TEXT)").Error
	assert.NoError(t, err)

	count, err := CountRows(db, "runs")
	assert.NoError(t, err)
	assert.Equal(t, int64(0), count)

	err = db.Exec("INSERT INTO runs (id, operation) VALUES ('a', 'update'), ('b', 'validate')").Error
	assert.NoError(t, err)

	count, err = CountRows(db, "runs")
	assert.NoError(t, err)
	assert.Equal(t, int64(2), count)

	// Missing table surfaces the dialect error
	_, err = CountRows(db, "non_existent")
	assert.Error(t, err)
}
