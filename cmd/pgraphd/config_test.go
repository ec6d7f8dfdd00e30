package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pgraphd.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
database:
  host: db.internal
  port: 5433
  user: reader
  database: app
http:
  listen: ":9090"
log:
  level: debug
snapshots:
  endpoint: minio.internal:9000
  accessKey: ak
  secretKey: sk
  bucket: schema-snapshots
graph:
  includeSchemas: ["pub%"]
  excludeSchemas: ["pub_test"]
`), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 5433, cfg.Database.Port)
	assert.Equal(t, ":9090", cfg.HTTP.Listen)
	assert.Equal(t, "debug", cfg.Log.Level)
	require.NotNil(t, cfg.Snapshots)
	assert.Equal(t, "schema-snapshots", cfg.Snapshots.Bucket)
	assert.Equal(t, []string{"pub%"}, cfg.Graph.IncludeSchemas)
	assert.Equal(t, []string{"pub_test"}, cfg.Graph.ExcludeSchemas)
}

func TestLoadConfigDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pgraphd.yaml")
	require.NoError(t, os.WriteFile(path, []byte("database:\n  host: localhost\n"), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.HTTP.Listen)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Nil(t, cfg.Snapshots)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
