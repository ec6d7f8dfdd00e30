package pgraph

import (
	"fmt"
	"sync"
)

// ColumnParent is the owner of a column collection: a table-like entity or
// a composite type.
type ColumnParent interface {
	Object
	ColumnCollection() *Collection[*Column]
}

// Entity is a pg_class-backed object: a table, view, materialized view, or
// sequence, discriminated by Kind. Indexes, Constraints, and Triggers are
// populated for tables and materialized views, ForeignKeysToThis for tables
// only; they are nil on the other kinds.
type Entity struct {
	OID  OID
	Name string
	Kind EntityKind

	Comment     *string
	CommentData any

	Schema *Schema

	// Columns is ordered by attribute number and indexed by it.
	Columns *Collection[*Column]

	Indexes     *Collection[*Index]
	Constraints *Collection[*Constraint]
	Triggers    *Collection[*Trigger]

	// ForeignKeysToThis lists the foreign keys on other tables whose
	// referenced table is this one, across all loaded schemas.
	ForeignKeysToThis *Collection[*Constraint]

	relOnce   sync.Once
	relations tableRelations
}

// ObjectName implements Object.
func (e *Entity) ObjectName() string { return e.Name }

// ObjectFullName implements Object.
func (e *Entity) ObjectFullName() string { return e.Schema.Name + "." + e.Name }

// ColumnCollection implements ColumnParent.
func (e *Entity) ColumnCollection() *Collection[*Column] { return e.Columns }

// Get resolves a column by name. A miss wraps ErrNotFound.
func (e *Entity) Get(name string) (*Column, error) {
	return e.Columns.Get(name)
}

// PrimaryKey returns the table's primary key constraint, or nil.
func (e *Entity) PrimaryKey() *Constraint {
	if e.Constraints == nil {
		return nil
	}
	for _, c := range e.Constraints.All() {
		if c.Kind == ConstraintKindPrimaryKey {
			return c
		}
	}
	return nil
}

// ForeignKeys returns the table's outgoing foreign key constraints in
// catalog order.
func (e *Entity) ForeignKeys() []*Constraint {
	if e.Constraints == nil {
		return nil
	}
	var out []*Constraint
	for _, c := range e.Constraints.All() {
		if c.Kind == ConstraintKindForeignKey {
			out = append(out, c)
		}
	}
	return out
}

func newEntity(schema *Schema, oid OID, name string, kind EntityKind, comment *string) *Entity {
	e := &Entity{
		OID:         oid,
		Name:        name,
		Kind:        kind,
		Comment:     comment,
		CommentData: parseCommentData(comment, schema.Db.options.CommentDataToken),
		Schema:      schema,
		Columns:     newColumnCollection(),
	}
	switch kind {
	case EntityKindTable:
		e.Indexes = newIndexCollection()
		e.Constraints = newConstraintCollection()
		e.Triggers = newTriggerCollection()
		e.ForeignKeysToThis = newConstraintCollection()
	case EntityKindMaterializedView:
		e.Indexes = newIndexCollection()
		e.Constraints = newConstraintCollection()
		e.Triggers = newTriggerCollection()
	}
	return e
}

func newEntityCollection() *Collection[*Entity] {
	return newCollection(func(e *Entity) string { return e.Name }).
		withOIDKey(func(e *Entity) OID { return e.OID })
}

// entityCollection returns the schema collection an entity kind lives in.
func (s *Schema) entityCollection(kind EntityKind) (*Collection[*Entity], error) {
	switch kind {
	case EntityKindTable:
		return s.Tables, nil
	case EntityKindView:
		return s.Views, nil
	case EntityKindMaterializedView:
		return s.MaterializedViews, nil
	case EntityKindSequence:
		return s.Sequences, nil
	}
	return nil, fmt.Errorf("unknown entity kind %q", kind)
}
