package catalog

import (
	"fmt"
	"strings"
)

// SchemaFilter controls which schemas the discovery query returns.
// Include and Exclude carry SQL LIKE patterns ("%" and "_" wildcards) that
// feed directly into LIKE / NOT LIKE clauses as bound parameters.
type SchemaFilter struct {
	Include       []string
	Exclude       []string
	IncludeSystem bool
}

// SystemSchemaQuery selects the always-present system schemas (pg_catalog).
const SystemSchemaQuery = `
SELECT n.oid,
       n.nspname     AS name,
       d.description AS comment
FROM pg_namespace n
LEFT JOIN pg_description d ON d.objoid = n.oid
WHERE n.nspname = 'pg_catalog'`

// BuildSchemaQuery produces the parameterized schema discovery query.
// Toast and temp schemas never load; pg_% and information_schema load only
// when IncludeSystem is set, in which case they still go through the
// include/exclude patterns like any other schema.
func (f SchemaFilter) BuildSchemaQuery() (string, []any) {
	var sb strings.Builder
	sb.WriteString(`
SELECT n.oid,
       n.nspname     AS name,
       d.description AS comment
FROM pg_namespace n
LEFT JOIN pg_description d ON d.objoid = n.oid
WHERE n.nspname NOT LIKE 'pg\_toast%'
  AND n.nspname NOT LIKE 'pg\_temp%'
  AND n.nspname NOT LIKE 'pg\_toast\_temp%'`)

	if !f.IncludeSystem {
		sb.WriteString(`
  AND n.nspname NOT LIKE 'pg\_%'
  AND n.nspname <> 'information_schema'`)
	}

	var args []any
	placeholder := func(v string) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if len(f.Include) > 0 {
		parts := make([]string, len(f.Include))
		for i, pattern := range f.Include {
			parts[i] = "n.nspname LIKE " + placeholder(pattern)
		}
		sb.WriteString("\n  AND (" + strings.Join(parts, " OR ") + ")")
	}
	for _, pattern := range f.Exclude {
		sb.WriteString("\n  AND n.nspname NOT LIKE " + placeholder(pattern))
	}

	sb.WriteString("\nORDER BY n.nspname")
	return sb.String(), args
}
