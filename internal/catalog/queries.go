// Package catalog owns the SQL resources for reading pg_catalog and the
// schema filter clause builder. Query text is keyed by a logical name and a
// server version tier; each tier directory overrides only the files that
// changed, falling back to the nearest lower tier for the rest.
package catalog

import (
	"embed"
	"fmt"

	"github.com/pgraph-io/pgraph/internal/errs"
)

//go:embed queries
var queryFS embed.FS

// tiers lists the embedded version tiers, highest first.
var tiers = []int{12, 11}

// Logical query names, in assembly phase order.
const (
	QueryType       = "type"
	QueryEntity     = "entity"
	QueryColumn     = "column"
	QueryIndex      = "index"
	QueryConstraint = "constraint"
	QueryFunction   = "function"
	QueryTrigger    = "trigger"
)

// QueryFor returns the SQL text for the logical query name, choosing the
// highest embedded tier not newer than the server's major version.
func QueryFor(serverVersionNum int, name string) (string, error) {
	major := serverVersionNum / 10000
	for _, tier := range tiers {
		if tier > major {
			continue
		}
		data, err := queryFS.ReadFile(fmt.Sprintf("queries/%d/%s.sql", tier, name))
		if err != nil {
			continue
		}
		return string(data), nil
	}
	return "", errs.New(errs.KindQuery, fmt.Sprintf("no %s query for server version %d", name, serverVersionNum))
}
