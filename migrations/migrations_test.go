package migrations

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationsAreEmbedded(t *testing.T) {
	files, err := fs.Glob(FS, "*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, name := range files {
		body, err := fs.ReadFile(FS, name)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(body), "-- +goose Up"), name)
		assert.Contains(t, string(body), "-- +goose Down", name)
	}
}

func TestInitCreatesExportUniqueIndex(t *testing.T) {
	body, err := fs.ReadFile(FS, "00001_init.sql")
	require.NoError(t, err)

	assert.Contains(t, string(body), "uq_payroll_export_period")
	assert.Contains(t, string(body), "CREATE TABLE outbox_events")
}
