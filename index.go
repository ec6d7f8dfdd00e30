package pgraph

// IndexMember is one position of an index definition: either a column of
// the indexed table or an opaque expression, never both.
type IndexMember struct {
	Column     *Column
	Expression string
}

// IsExpression reports whether the member is an expression position.
func (m IndexMember) IsExpression() bool { return m.Column == nil }

// Index belongs to a table or materialized view.
type Index struct {
	OID  OID
	Name string

	Table *Entity

	IsUnique  bool
	IsPrimary bool

	// PartialPredicate is the WHERE clause of a partial index, nil for
	// full indexes.
	PartialPredicate *string

	// ColumnsAndExpressions lists the index positions in definition order.
	ColumnsAndExpressions []IndexMember

	Comment     *string
	CommentData any
}

// ObjectName implements Object.
func (ix *Index) ObjectName() string { return ix.Name }

// ObjectFullName implements Object.
func (ix *Index) ObjectFullName() string { return ix.Table.Schema.Name + "." + ix.Name }

// IsPartial reports whether the index has a predicate.
func (ix *Index) IsPartial() bool { return ix.PartialPredicate != nil }

// Columns returns the column members in order, skipping expressions.
func (ix *Index) Columns() []*Column {
	var out []*Column
	for _, m := range ix.ColumnsAndExpressions {
		if m.Column != nil {
			out = append(out, m.Column)
		}
	}
	return out
}

func newIndexCollection() *Collection[*Index] {
	return newCollection(func(ix *Index) string { return ix.Name }).
		withOIDKey(func(ix *Index) OID { return ix.OID })
}
