package pgraph

import (
	"fmt"

	"github.com/pgraph-io/pgraph/internal/errs"
	"github.com/pgraph-io/pgraph/internal/logger"
)

// assemble builds a Db from a snapshot. The phase order is part of the
// contract: each phase resolves references made available by earlier ones
// (types before entities so composite parents exist for columns, indexes
// before constraints so key constraints can borrow their columns, entities
// before triggers).
//
// A mandatory reference that does not resolve aborts the build with an
// integrity error carrying the offending OID; the optional references
// (foreign key to a dropped index, trigger to a dropped function) are
// logged and skipped. A failed build yields no Db.
func assemble(snap *Snapshot, o *Options) (*Db, error) {
	db := newDb(snap.Name, snap.ServerVersion, o, o.namerFor())
	db.snapshot = snap

	a := &assembler{db: db, log: o.Logger}
	phases := []func(*QueryResults) error{
		a.addSchemas,
		a.addSystemSchemas,
		a.addTypes,
		a.addEntities,
		a.addColumns,
		a.addIndexes,
		a.addConstraints,
		a.addFunctions,
		a.addTriggers,
	}
	for _, phase := range phases {
		if err := phase(&snap.QueryResults); err != nil {
			return nil, err
		}
	}
	return db, nil
}

type assembler struct {
	db  *Db
	log *logger.Logger
}

func integrity(format string, args ...any) error {
	return errs.New(errs.KindIntegrity, fmt.Sprintf(format, args...))
}

// Phase 1: user schemas from the filtered catalog query.
func (a *assembler) addSchemas(q *QueryResults) error {
	for _, row := range q.Schemas {
		s := newSchema(a.db, row.OID, row.Name, row.Comment, false)
		if err := a.db.Schemas.append(s); err != nil {
			return integrity("schema %d: %v", row.OID, err)
		}
	}
	return nil
}

// Phase 2: system schemas (pg_catalog). When a system schema also passed
// the user filters, the same object is shared by both collections.
func (a *assembler) addSystemSchemas(q *QueryResults) error {
	for _, row := range q.SystemSchemas {
		s, ok := a.db.Schemas.MaybeByOID(row.OID)
		if !ok {
			s = newSchema(a.db, row.OID, row.Name, row.Comment, true)
		}
		s.IsSystem = true
		if err := a.db.SystemSchemas.append(s); err != nil {
			return integrity("system schema %d: %v", row.OID, err)
		}
	}
	return nil
}

// Phase 3: types. Schema references resolve against system schemas first
// because user objects routinely use pg_catalog types. Domain base types
// are linked in a second pass so declaration order does not matter.
func (a *assembler) addTypes(q *QueryResults) error {
	for _, row := range q.Types {
		schema, ok := a.db.resolveSchemaSystemFirst(row.SchemaOID)
		if !ok {
			return integrity("type %d (%s): schema %d not found", row.OID, row.Name, row.SchemaOID)
		}
		t := newType(schema, row)
		if err := schema.TypesIncludingEntities.append(t); err != nil {
			return integrity("type %d: %v", row.OID, err)
		}
		a.db.typesByOID[t.OID] = t
		if t.Kind == TypeKindComposite && t.ClassOID != 0 {
			a.db.typesByClassOID[t.ClassOID] = t
		}
	}
	for _, row := range q.Types {
		if typeKinds[row.Kind] != TypeKindDomain {
			continue
		}
		t := a.db.typesByOID[row.OID]
		base, ok := a.db.resolveType(row.BaseTypeOID)
		if !ok {
			return integrity("domain %d (%s): base type %d not found", row.OID, row.Name, row.BaseTypeOID)
		}
		t.SQLType = base
	}
	return nil
}

// Phase 4: entities, dispatched by kind. Table-backed composite types get
// their entity back-reference here.
func (a *assembler) addEntities(q *QueryResults) error {
	for _, row := range q.Entities {
		kind, ok := entityKinds[row.Kind]
		if !ok {
			a.log.Warn().Str("entity", row.Name).Str("kind", row.Kind).Msg("skipping entity of unsupported kind")
			continue
		}
		schema, ok := a.db.resolveSchema(row.SchemaOID)
		if !ok {
			return integrity("entity %d (%s): schema %d not found", row.OID, row.Name, row.SchemaOID)
		}
		e := newEntity(schema, row.OID, row.Name, kind, row.Comment)
		coll, err := schema.entityCollection(kind)
		if err != nil {
			return integrity("entity %d: %v", row.OID, err)
		}
		if err := coll.append(e); err != nil {
			return integrity("entity %d: %v", row.OID, err)
		}
		a.db.entitiesByOID[e.OID] = e
		if t, ok := a.db.resolveCompositeType(e.OID); ok {
			t.Entity = e
		}
	}
	return nil
}

// Phase 5: columns. The parent is a composite type when the catalog marks
// the owning class as composite, an entity otherwise.
func (a *assembler) addColumns(q *QueryResults) error {
	for _, row := range q.Columns {
		var parent ColumnParent
		if row.ParentKind == "c" {
			t, ok := a.db.resolveCompositeType(row.ParentOID)
			if !ok {
				return integrity("column %s: composite type with class %d not found", row.Name, row.ParentOID)
			}
			parent = t
		} else {
			e, ok := a.db.resolveEntity(row.ParentOID)
			if !ok {
				return integrity("column %s: entity %d not found", row.Name, row.ParentOID)
			}
			parent = e
		}

		typ, ok := a.db.resolveType(row.TypeOID)
		if !ok {
			return integrity("column %s.%s: type %d not found", parent.ObjectFullName(), row.Name, row.TypeOID)
		}

		col := &Column{
			Name:                row.Name,
			AttributeNumber:     row.AttributeNumber,
			Parent:              parent,
			Type:                typ,
			NotNull:             row.NotNull,
			Default:             row.Default,
			Length:              row.Length,
			Precision:           row.Precision,
			Scale:               row.Scale,
			IdentityKind:        identityKinds[row.Identity],
			GeneratedExpression: row.GeneratedExpression,
			Comment:             row.Comment,
			CommentData:         parseCommentData(row.Comment, a.db.options.CommentDataToken),
		}
		if err := parent.ColumnCollection().append(col); err != nil {
			return integrity("column %s.%s: %v", parent.ObjectFullName(), row.Name, err)
		}
	}
	return nil
}

// Phase 6: indexes. The member list walks the catalog's column positions:
// a positive position resolves a column by attribute number, a zero
// position consumes the next expression from the side list, in order.
func (a *assembler) addIndexes(q *QueryResults) error {
	for _, row := range q.Indexes {
		table, ok := a.db.resolveEntity(row.TableOID)
		if !ok {
			return integrity("index %d (%s): table %d not found", row.OID, row.Name, row.TableOID)
		}
		if table.Indexes == nil {
			a.log.Warn().Str("index", row.Name).Str("table", table.ObjectFullName()).Msg("skipping index on non-indexable entity")
			continue
		}

		ix := &Index{
			OID:              row.OID,
			Name:             row.Name,
			Table:            table,
			IsUnique:         row.IsUnique,
			IsPrimary:        row.IsPrimary,
			PartialPredicate: row.PartialPredicate,
			Comment:          row.Comment,
			CommentData:      parseCommentData(row.Comment, a.db.options.CommentDataToken),
		}

		exprIdx := 0
		for _, pos := range row.ColumnPositions {
			if pos > 0 {
				col, ok := table.Columns.MaybeByPosition(pos)
				if !ok {
					return integrity("index %d (%s): column %d on %s not found", row.OID, row.Name, pos, table.ObjectFullName())
				}
				ix.ColumnsAndExpressions = append(ix.ColumnsAndExpressions, IndexMember{Column: col})
				continue
			}
			if exprIdx >= len(row.Expressions) {
				return integrity("index %d (%s): expression list exhausted", row.OID, row.Name)
			}
			ix.ColumnsAndExpressions = append(ix.ColumnsAndExpressions, IndexMember{Expression: row.Expressions[exprIdx]})
			exprIdx++
		}

		if err := table.Indexes.append(ix); err != nil {
			return integrity("index %d: %v", row.OID, err)
		}
		a.db.indexesByOID[ix.OID] = ix
	}
	return nil
}

// Phase 7: constraints, dispatched by kind. A foreign key whose referenced
// index did not load is dropped; on success it is registered on both the
// owning table and the referenced table's reverse list.
func (a *assembler) addConstraints(q *QueryResults) error {
	for _, row := range q.Constraints {
		kind, ok := constraintKinds[row.Kind]
		if !ok {
			a.log.Warn().Str("constraint", row.Name).Str("kind", row.Kind).Msg("skipping constraint of unsupported kind")
			continue
		}

		switch kind {
		case ConstraintKindCheck:
			if err := a.addCheckConstraint(row); err != nil {
				return err
			}
		case ConstraintKindPrimaryKey, ConstraintKindUnique, ConstraintKindExclusion:
			if err := a.addIndexBackedConstraint(row, kind); err != nil {
				return err
			}
		case ConstraintKindForeignKey:
			if err := a.addForeignKey(row); err != nil {
				return err
			}
		}
	}
	return nil
}

func (a *assembler) addCheckConstraint(row ConstraintRow) error {
	c := &Constraint{
		OID:         row.OID,
		Name:        row.Name,
		Kind:        ConstraintKindCheck,
		Comment:     row.Comment,
		CommentData: parseCommentData(row.Comment, a.db.options.CommentDataToken),
	}
	if row.Expression != nil {
		c.Expression = *row.Expression
	}

	if row.DomainOID != 0 {
		domain, ok := a.db.resolveType(row.DomainOID)
		if !ok || domain.Kind != TypeKindDomain {
			return integrity("check constraint %d (%s): domain %d not found", row.OID, row.Name, row.DomainOID)
		}
		c.Domain = domain
		if err := domain.CheckConstraints.append(c); err != nil {
			return integrity("check constraint %d: %v", row.OID, err)
		}
		return nil
	}

	table, ok := a.db.resolveEntity(row.TableOID)
	if !ok {
		return integrity("check constraint %d (%s): table %d not found", row.OID, row.Name, row.TableOID)
	}
	c.Table = table
	if err := table.Constraints.append(c); err != nil {
		return integrity("check constraint %d: %v", row.OID, err)
	}
	return nil
}

func (a *assembler) addIndexBackedConstraint(row ConstraintRow, kind ConstraintKind) error {
	table, ok := a.db.resolveEntity(row.TableOID)
	if !ok {
		return integrity("constraint %d (%s): table %d not found", row.OID, row.Name, row.TableOID)
	}
	index, ok := a.db.resolveIndex(row.IndexOID)
	if !ok {
		return integrity("constraint %d (%s): index %d not found", row.OID, row.Name, row.IndexOID)
	}
	c := &Constraint{
		OID:         row.OID,
		Name:        row.Name,
		Kind:        kind,
		Table:       table,
		Index:       index,
		Comment:     row.Comment,
		CommentData: parseCommentData(row.Comment, a.db.options.CommentDataToken),
	}
	if err := table.Constraints.append(c); err != nil {
		return integrity("constraint %d: %v", row.OID, err)
	}
	return nil
}

func (a *assembler) addForeignKey(row ConstraintRow) error {
	table, ok := a.db.resolveEntity(row.TableOID)
	if !ok {
		return integrity("foreign key %d (%s): table %d not found", row.OID, row.Name, row.TableOID)
	}

	index, ok := a.db.resolveIndex(row.IndexOID)
	if !ok {
		// The referenced index was not loaded (typically filtered out with
		// its schema). The constraint cannot be modeled; drop it.
		a.log.Warn().Str("constraint", row.Name).Uint32("oid", uint32(row.OID)).Uint32("index", uint32(row.IndexOID)).Msg("dropping foreign key with unresolved index")
		return nil
	}

	cols := make([]*Column, 0, len(row.ColumnNumbers))
	for _, n := range row.ColumnNumbers {
		col, ok := table.Columns.MaybeByPosition(n)
		if !ok {
			return integrity("foreign key %d (%s): column %d on %s not found", row.OID, row.Name, n, table.ObjectFullName())
		}
		cols = append(cols, col)
	}

	c := &Constraint{
		OID:         row.OID,
		Name:        row.Name,
		Kind:        ConstraintKindForeignKey,
		Table:       table,
		Index:       index,
		Columns:     cols,
		OnUpdate:    fkActions[row.OnUpdate],
		OnDelete:    fkActions[row.OnDelete],
		MatchType:   fkMatchTypes[row.MatchType],
		Comment:     row.Comment,
		CommentData: parseCommentData(row.Comment, a.db.options.CommentDataToken),
	}
	if err := table.Constraints.append(c); err != nil {
		return integrity("foreign key %d: %v", row.OID, err)
	}
	if refTable := index.Table; refTable.ForeignKeysToThis != nil {
		if err := refTable.ForeignKeysToThis.append(c); err != nil {
			return integrity("foreign key %d: %v", row.OID, err)
		}
	}
	return nil
}

// Phase 8: functions, dispatched by kind.
func (a *assembler) addFunctions(q *QueryResults) error {
	for _, row := range q.Functions {
		kind, ok := functionKinds[row.Kind]
		if !ok {
			a.log.Warn().Str("function", row.Name).Str("kind", row.Kind).Msg("skipping function of unsupported kind")
			continue
		}
		schema, ok := a.db.resolveSchema(row.SchemaOID)
		if !ok {
			return integrity("function %d (%s): schema %d not found", row.OID, row.Name, row.SchemaOID)
		}

		f := &Function{
			OID:         row.OID,
			Name:        row.Name,
			Kind:        kind,
			Schema:      schema,
			Volatility:  volatilities[row.Volatility],
			IsStrict:    row.IsStrict,
			Language:    row.Language,
			Comment:     row.Comment,
			CommentData: parseCommentData(row.Comment, a.db.options.CommentDataToken),
		}
		for i, toid := range row.ArgumentTypeOIDs {
			typ, ok := a.db.resolveType(toid)
			if !ok {
				return integrity("function %d (%s): argument type %d not found", row.OID, row.Name, toid)
			}
			arg := FunctionArgument{Type: typ, Mode: "in"}
			if i < len(row.ArgumentNames) {
				arg.Name = row.ArgumentNames[i]
			}
			if i < len(row.ArgumentModes) && row.ArgumentModes[i] != "" {
				arg.Mode = row.ArgumentModes[i]
			}
			f.Arguments = append(f.Arguments, arg)
		}
		if row.ReturnTypeOID != 0 && kind != FunctionKindProcedure {
			ret, ok := a.db.resolveType(row.ReturnTypeOID)
			if !ok {
				return integrity("function %d (%s): return type %d not found", row.OID, row.Name, row.ReturnTypeOID)
			}
			f.ReturnType = ret
		}

		coll := schema.NormalFunctions
		switch kind {
		case FunctionKindProcedure:
			coll = schema.Procedures
		case FunctionKindAggregate:
			coll = schema.AggregateFunctions
		case FunctionKindWindow:
			coll = schema.WindowFunctions
		}
		if err := coll.append(f); err != nil {
			return integrity("function %d: %v", row.OID, err)
		}
		a.db.functionsByOID[f.OID] = f
	}
	return nil
}

// Phase 9: triggers. A trigger whose entity or function did not load is
// dropped with a warning.
func (a *assembler) addTriggers(q *QueryResults) error {
	for _, row := range q.Triggers {
		table, ok := a.db.resolveEntity(row.TableOID)
		if !ok || table.Triggers == nil {
			a.log.Warn().Str("trigger", row.Name).Uint32("table", uint32(row.TableOID)).Msg("dropping trigger with unresolved entity")
			continue
		}
		fn, ok := a.db.resolveFunction(row.FunctionOID)
		if !ok {
			a.log.Warn().Str("trigger", row.Name).Uint32("function", uint32(row.FunctionOID)).Msg("dropping trigger with unresolved function")
			continue
		}
		t := &Trigger{
			OID:         row.OID,
			Name:        row.Name,
			Table:       table,
			Function:    fn,
			Comment:     row.Comment,
			CommentData: parseCommentData(row.Comment, a.db.options.CommentDataToken),
		}
		if err := table.Triggers.append(t); err != nil {
			return integrity("trigger %d: %v", row.OID, err)
		}
	}
	return nil
}
