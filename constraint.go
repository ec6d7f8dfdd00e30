package pgraph

// Constraint is a pg_constraint-backed object, discriminated by Kind.
//
// Primary key, unique, and exclusion constraints reference the Index that
// implements them and derive their columns from it. Check constraints carry
// an expression and belong to either a table or a domain. Foreign keys hold
// their ordered source columns and reference the unique index on the target
// table; the referenced table and columns derive from that index.
type Constraint struct {
	OID  OID
	Name string
	Kind ConstraintKind

	Comment     *string
	CommentData any

	// Table is the owning table, nil for domain check constraints.
	Table *Entity

	// Domain is the owning domain for domain check constraints.
	Domain *Type

	// Expression is the check expression.
	Expression string

	// Index is the constraint's own index for primary key, unique, and
	// exclusion constraints, and the referenced table's unique index for
	// foreign keys.
	Index *Index

	// Columns are a foreign key's source columns in key order.
	Columns []*Column

	OnUpdate  FKAction
	OnDelete  FKAction
	MatchType FKMatchType
}

// ObjectName implements Object.
func (c *Constraint) ObjectName() string { return c.Name }

// ObjectFullName implements Object.
func (c *Constraint) ObjectFullName() string {
	if c.Domain != nil {
		return c.Domain.ObjectFullName() + "." + c.Name
	}
	return c.Table.ObjectFullName() + "." + c.Name
}

// IndexColumns returns the columns of a primary key, unique, or exclusion
// constraint, delegating to its index.
func (c *Constraint) IndexColumns() []*Column {
	if c.Index == nil {
		return nil
	}
	return c.Index.Columns()
}

// ReferencedTable returns the table a foreign key points at, derived from
// the referenced index. Nil for non-FK constraints.
func (c *Constraint) ReferencedTable() *Entity {
	if c.Kind != ConstraintKindForeignKey || c.Index == nil {
		return nil
	}
	return c.Index.Table
}

// ReferencedColumns returns the target columns of a foreign key in key
// order, derived from the referenced index.
func (c *Constraint) ReferencedColumns() []*Column {
	if c.Kind != ConstraintKindForeignKey {
		return nil
	}
	return c.IndexColumns()
}

func newConstraintCollection() *Collection[*Constraint] {
	return newCollection(func(c *Constraint) string { return c.Name }).
		withOIDKey(func(c *Constraint) OID { return c.OID })
}
