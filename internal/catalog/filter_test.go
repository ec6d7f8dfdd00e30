package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildSchemaQueryDefaults(t *testing.T) {
	sql, args := SchemaFilter{}.BuildSchemaQuery()

	assert.Empty(t, args)
	assert.Contains(t, sql, `NOT LIKE 'pg\_toast%'`)
	assert.Contains(t, sql, `NOT LIKE 'pg\_temp%'`)
	assert.Contains(t, sql, `NOT LIKE 'pg\_%'`)
	assert.Contains(t, sql, `<> 'information_schema'`)
	assert.Contains(t, sql, "ORDER BY n.nspname")
}

func TestBuildSchemaQueryPatterns(t *testing.T) {
	f := SchemaFilter{
		Include: []string{"pub%", "app"},
		Exclude: []string{"pub_test"},
	}
	sql, args := f.BuildSchemaQuery()

	assert.Equal(t, []any{"pub%", "app", "pub_test"}, args)
	assert.Contains(t, sql, "(n.nspname LIKE $1 OR n.nspname LIKE $2)")
	assert.Contains(t, sql, "NOT LIKE $3")
}

func TestBuildSchemaQueryIncludeSystem(t *testing.T) {
	sql, _ := SchemaFilter{IncludeSystem: true}.BuildSchemaQuery()

	assert.NotContains(t, sql, `NOT LIKE 'pg\_%'`)
	assert.NotContains(t, sql, "information_schema")
	// Toast and temp schemas stay excluded regardless.
	assert.Contains(t, sql, `NOT LIKE 'pg\_toast%'`)
	assert.Contains(t, sql, `NOT LIKE 'pg\_temp%'`)
}
