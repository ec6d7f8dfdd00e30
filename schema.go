package pgraph

import "fmt"

// Schema is a named namespace owning entities, functions, and types.
type Schema struct {
	OID  OID
	Name string

	// Comment is the raw object comment, nil when unset.
	Comment *string

	// CommentData is the parsed JSON block behind the configured comment
	// data token, nil when absent or malformed.
	CommentData any

	// IsSystem marks the schemas loaded by the system-schema phase
	// (pg_catalog).
	IsSystem bool

	Db *Db

	Tables             *Collection[*Entity]
	Views              *Collection[*Entity]
	MaterializedViews  *Collection[*Entity]
	Sequences          *Collection[*Entity]
	NormalFunctions    *Collection[*Function]
	Procedures         *Collection[*Function]
	AggregateFunctions *Collection[*Function]
	WindowFunctions    *Collection[*Function]

	// TypesIncludingEntities holds every type in the schema, including the
	// composite types backing tables and views.
	TypesIncludingEntities *Collection[*Type]
}

// ObjectName implements Object.
func (s *Schema) ObjectName() string { return s.Name }

// ObjectFullName implements Object.
func (s *Schema) ObjectFullName() string { return s.Name }

// Types returns the schema's types excluding entity-backed composites.
func (s *Schema) Types() []*Type {
	var out []*Type
	for _, t := range s.TypesIncludingEntities.All() {
		if t.Kind == TypeKindComposite && t.Entity != nil {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Entities returns all entities of the schema in catalog order per kind:
// tables, views, materialized views, sequences.
func (s *Schema) Entities() []*Entity {
	var out []*Entity
	out = append(out, s.Tables.All()...)
	out = append(out, s.Views.All()...)
	out = append(out, s.MaterializedViews.All()...)
	out = append(out, s.Sequences.All()...)
	return out
}

// Functions returns all functions of the schema regardless of kind.
func (s *Schema) Functions() []*Function {
	var out []*Function
	out = append(out, s.NormalFunctions.All()...)
	out = append(out, s.Procedures.All()...)
	out = append(out, s.AggregateFunctions.All()...)
	out = append(out, s.WindowFunctions.All()...)
	return out
}

// Get resolves a dotted path relative to the schema: "account" names an
// entity or type, "account.id" a column.
func (s *Schema) Get(path string) (Object, error) {
	return s.getPath(splitPath(path))
}

func (s *Schema) getPath(segs []string) (Object, error) {
	name := segs[0]

	var obj Object
	if e, ok := s.entityByName(name); ok {
		obj = e
	} else if t, ok := s.TypesIncludingEntities.MaybeGet(name); ok {
		obj = t
	} else if f, ok := s.functionByName(name); ok {
		obj = f
	} else {
		return nil, fmt.Errorf("%w: %q in schema %q", ErrNotFound, name, s.Name)
	}

	if len(segs) == 1 {
		return obj, nil
	}
	parent, ok := obj.(ColumnParent)
	if !ok {
		return nil, fmt.Errorf("%w: %q has no columns", ErrNotFound, name)
	}
	col, ok := parent.ColumnCollection().MaybeGet(segs[1])
	if !ok || len(segs) > 2 {
		return nil, fmt.Errorf("%w: column %q on %q", ErrNotFound, segs[1], name)
	}
	return col, nil
}

func (s *Schema) entityByName(name string) (*Entity, bool) {
	for _, c := range []*Collection[*Entity]{s.Tables, s.Views, s.MaterializedViews, s.Sequences} {
		if e, ok := c.MaybeGet(name); ok {
			return e, true
		}
	}
	return nil, false
}

func (s *Schema) functionByName(name string) (*Function, bool) {
	for _, c := range []*Collection[*Function]{s.NormalFunctions, s.Procedures, s.AggregateFunctions, s.WindowFunctions} {
		if f, ok := c.MaybeGet(name); ok {
			return f, true
		}
	}
	return nil, false
}

func newSchema(db *Db, oid OID, name string, comment *string, system bool) *Schema {
	s := &Schema{
		OID:         oid,
		Name:        name,
		Comment:     comment,
		CommentData: parseCommentData(comment, db.options.CommentDataToken),
		IsSystem:    system,
		Db:          db,

		Tables:            newEntityCollection(),
		Views:             newEntityCollection(),
		MaterializedViews: newEntityCollection(),
		Sequences:         newEntityCollection(),

		NormalFunctions:    newFunctionCollection(),
		Procedures:         newFunctionCollection(),
		AggregateFunctions: newFunctionCollection(),
		WindowFunctions:    newFunctionCollection(),

		TypesIncludingEntities: newCollection(func(t *Type) string { return t.Name }).
			withOIDKey(func(t *Type) OID { return t.OID }),
	}
	return s
}
