package pgraph

import (
	"context"

	"github.com/pgraph-io/pgraph/internal/catalog"
	"github.com/pgraph-io/pgraph/internal/database"
	"github.com/pgraph-io/pgraph/internal/errs"
)

// fetchQueryResults executes the nine catalog queries in phase order and
// binds their rows. Entities, columns, indexes, constraints, functions, and
// triggers are scoped to the user schemas; types additionally cover the
// system schemas, because user objects routinely reference pg_catalog
// types.
func fetchQueryResults(ctx context.Context, db database.DB, versionNum int, o *Options) (*QueryResults, error) {
	q := &QueryResults{}

	filter := catalog.SchemaFilter{
		Include:       o.IncludeSchemas,
		Exclude:       o.ExcludeSchemas,
		IncludeSystem: o.IncludeSystemSchemas,
	}
	schemaSQL, schemaArgs := filter.BuildSchemaQuery()

	var err error
	if q.Schemas, err = fetchSchemas(ctx, db, schemaSQL, schemaArgs...); err != nil {
		return nil, err
	}
	if q.SystemSchemas, err = fetchSchemas(ctx, db, catalog.SystemSchemaQuery); err != nil {
		return nil, err
	}

	userOIDs := make([]uint32, 0, len(q.Schemas))
	for _, s := range q.Schemas {
		userOIDs = append(userOIDs, uint32(s.OID))
	}
	typeOIDs := userOIDs
	for _, s := range q.SystemSchemas {
		if !containsOID(typeOIDs, uint32(s.OID)) {
			typeOIDs = append(typeOIDs, uint32(s.OID))
		}
	}

	sql := func(name string) (string, error) { return catalog.QueryFor(versionNum, name) }

	if q.Types, err = fetchRows(ctx, db, sql, catalog.QueryType, scanTypeRow, typeOIDs); err != nil {
		return nil, err
	}
	if q.Entities, err = fetchRows(ctx, db, sql, catalog.QueryEntity, scanEntityRow, userOIDs); err != nil {
		return nil, err
	}
	if q.Columns, err = fetchRows(ctx, db, sql, catalog.QueryColumn, scanColumnRow, userOIDs); err != nil {
		return nil, err
	}
	if q.Indexes, err = fetchRows(ctx, db, sql, catalog.QueryIndex, scanIndexRow, userOIDs); err != nil {
		return nil, err
	}
	if q.Constraints, err = fetchRows(ctx, db, sql, catalog.QueryConstraint, scanConstraintRow, userOIDs); err != nil {
		return nil, err
	}
	if q.Functions, err = fetchRows(ctx, db, sql, catalog.QueryFunction, scanFunctionRow, userOIDs); err != nil {
		return nil, err
	}
	if q.Triggers, err = fetchRows(ctx, db, sql, catalog.QueryTrigger, scanTriggerRow, userOIDs); err != nil {
		return nil, err
	}
	return q, nil
}

func containsOID(oids []uint32, oid uint32) bool {
	for _, o := range oids {
		if o == oid {
			return true
		}
	}
	return false
}

func fetchSchemas(ctx context.Context, db database.DB, sql string, args ...any) ([]SchemaRow, error) {
	rows, err := db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []SchemaRow{}
	for rows.Next() {
		var row SchemaRow
		var oid uint32
		if err := rows.Scan(&oid, &row.Name, &row.Comment); err != nil {
			return nil, errs.Wrap(errs.KindQuery, "scan schema row", err)
		}
		row.OID = OID(oid)
		out = append(out, row)
	}
	return out, rows.Err()
}

// fetchRows runs one named catalog query scoped to the given schema OIDs.
func fetchRows[T any](ctx context.Context, db database.DB, sqlFor func(string) (string, error), name string, scan func(database.Rows) (T, error), schemaOIDs []uint32) ([]T, error) {
	sql, err := sqlFor(name)
	if err != nil {
		return nil, err
	}
	rows, err := db.Query(ctx, sql, schemaOIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		row, err := scan(rows)
		if err != nil {
			return nil, errs.Wrap(errs.KindQuery, "scan "+name+" row", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func scanTypeRow(rows database.Rows) (TypeRow, error) {
	var row TypeRow
	var oid, classOID, schemaOID, baseOID uint32
	err := rows.Scan(&oid, &classOID, &schemaOID, &row.Name, &row.Kind,
		&row.NotNull, &row.Default, &baseOID, &row.EnumValues, &row.Comment)
	row.OID, row.ClassOID, row.SchemaOID, row.BaseTypeOID = OID(oid), OID(classOID), OID(schemaOID), OID(baseOID)
	return row, err
}

func scanEntityRow(rows database.Rows) (EntityRow, error) {
	var row EntityRow
	var oid, schemaOID uint32
	err := rows.Scan(&oid, &schemaOID, &row.Name, &row.Kind, &row.Comment)
	row.OID, row.SchemaOID = OID(oid), OID(schemaOID)
	return row, err
}

func scanColumnRow(rows database.Rows) (ColumnRow, error) {
	var row ColumnRow
	var parentOID, typeOID uint32
	var attNum int16
	err := rows.Scan(&parentOID, &row.ParentKind, &row.Name, &attNum, &typeOID,
		&row.NotNull, &row.Default, &row.Length, &row.Precision, &row.Scale,
		&row.Identity, &row.GeneratedExpression, &row.Comment)
	row.ParentOID, row.TypeOID = OID(parentOID), OID(typeOID)
	row.AttributeNumber = int(attNum)
	return row, err
}

func scanIndexRow(rows database.Rows) (IndexRow, error) {
	var row IndexRow
	var oid, tableOID uint32
	var positions []int16
	err := rows.Scan(&oid, &tableOID, &row.Name, &row.IsUnique, &row.IsPrimary,
		&positions, &row.Expressions, &row.PartialPredicate, &row.Comment)
	row.OID, row.TableOID = OID(oid), OID(tableOID)
	row.ColumnPositions = toIntSlice(positions)
	return row, err
}

func scanConstraintRow(rows database.Rows) (ConstraintRow, error) {
	var row ConstraintRow
	var oid, tableOID, domainOID, indexOID uint32
	var numbers []int16
	err := rows.Scan(&oid, &row.Name, &row.Kind, &tableOID, &domainOID, &indexOID,
		&numbers, &row.Expression, &row.OnUpdate, &row.OnDelete, &row.MatchType, &row.Comment)
	row.OID, row.TableOID, row.DomainOID, row.IndexOID = OID(oid), OID(tableOID), OID(domainOID), OID(indexOID)
	row.ColumnNumbers = toIntSlice(numbers)
	return row, err
}

func scanFunctionRow(rows database.Rows) (FunctionRow, error) {
	var row FunctionRow
	var oid, schemaOID, retOID uint32
	var argOIDs []uint32
	err := rows.Scan(&oid, &schemaOID, &row.Name, &row.Kind, &retOID,
		&argOIDs, &row.ArgumentNames, &row.ArgumentModes,
		&row.Volatility, &row.IsStrict, &row.Language, &row.Comment)
	row.OID, row.SchemaOID, row.ReturnTypeOID = OID(oid), OID(schemaOID), OID(retOID)
	row.ArgumentTypeOIDs = make([]OID, len(argOIDs))
	for i, a := range argOIDs {
		row.ArgumentTypeOIDs[i] = OID(a)
	}
	return row, err
}

func scanTriggerRow(rows database.Rows) (TriggerRow, error) {
	var row TriggerRow
	var oid, tableOID, fnOID uint32
	err := rows.Scan(&oid, &tableOID, &fnOID, &row.Name, &row.Comment)
	row.OID, row.TableOID, row.FunctionOID = OID(oid), OID(tableOID), OID(fnOID)
	return row, err
}

func toIntSlice(in []int16) []int {
	out := make([]int, len(in))
	for i, v := range in {
		out[i] = int(v)
	}
	return out
}
