package pgraph

// BuiltinAlias maps a PostgreSQL internal type name to its SQL-standard
// spelling, plus modifier capabilities.
type BuiltinAlias struct {
	// Name is the SQL-standard name (e.g. "integer").
	Name string

	// ShortName is the common short form (e.g. "int"), empty when none.
	ShortName string

	// InternalName is the catalog name (e.g. "int4").
	InternalName string

	HasLength    bool
	HasPrecision bool
	HasScale     bool
}

// builtinAliases keys pg_type names that PostgreSQL itself aliases in SQL.
var builtinAliases = map[string]BuiltinAlias{
	"int2":        {Name: "smallint", InternalName: "int2"},
	"int4":        {Name: "integer", ShortName: "int", InternalName: "int4"},
	"int8":        {Name: "bigint", InternalName: "int8"},
	"float4":      {Name: "real", InternalName: "float4"},
	"float8":      {Name: "double precision", InternalName: "float8"},
	"bool":        {Name: "boolean", InternalName: "bool"},
	"numeric":     {Name: "numeric", ShortName: "decimal", InternalName: "numeric", HasPrecision: true, HasScale: true},
	"varchar":     {Name: "character varying", ShortName: "varchar", InternalName: "varchar", HasLength: true},
	"bpchar":      {Name: "character", ShortName: "char", InternalName: "bpchar", HasLength: true},
	"varbit":      {Name: "bit varying", InternalName: "varbit", HasLength: true},
	"bit":         {Name: "bit", InternalName: "bit", HasLength: true},
	"timestamp":   {Name: "timestamp without time zone", InternalName: "timestamp", HasPrecision: true},
	"timestamptz": {Name: "timestamp with time zone", ShortName: "timestamptz", InternalName: "timestamptz", HasPrecision: true},
	"time":        {Name: "time without time zone", InternalName: "time", HasPrecision: true},
	"timetz":      {Name: "time with time zone", ShortName: "timetz", InternalName: "timetz", HasPrecision: true},
	"interval":    {Name: "interval", InternalName: "interval", HasPrecision: true},
}

// Type is a pg_type-backed object, discriminated by Kind. Every table and
// view is shadowed by a composite type; Entity links back to it for those.
type Type struct {
	OID  OID
	Name string
	Kind TypeKind

	Comment     *string
	CommentData any

	Schema *Schema

	// ClassOID is the backing pg_class OID for composite types, zero
	// otherwise.
	ClassOID OID

	// Alias carries the builtin alias information for aliased base types.
	Alias *BuiltinAlias

	// SQLType is the underlying type of a domain.
	SQLType *Type

	// NotNull reports whether a domain adds a NOT NULL constraint.
	NotNull bool

	// Default is a domain's default expression.
	Default *string

	// CheckConstraints holds a domain's check constraints.
	CheckConstraints *Collection[*Constraint]

	// Values lists an enum's labels in sort order.
	Values []string

	// Columns holds a composite type's attributes.
	Columns *Collection[*Column]

	// Entity is the table or view a composite type shadows, nil for
	// free-standing composites.
	Entity *Entity
}

// ObjectName implements Object.
func (t *Type) ObjectName() string { return t.Name }

// ObjectFullName implements Object.
func (t *Type) ObjectFullName() string { return t.Schema.Name + "." + t.Name }

// ColumnCollection implements ColumnParent for composite types.
func (t *Type) ColumnCollection() *Collection[*Column] { return t.Columns }

// SQLName is the display name of the type: the SQL-standard alias name for
// aliased builtins, the catalog name otherwise.
func (t *Type) SQLName() string {
	if t.Alias != nil {
		return t.Alias.Name
	}
	return t.Name
}

func newType(schema *Schema, row TypeRow) *Type {
	t := &Type{
		OID:         row.OID,
		Name:        row.Name,
		Kind:        typeKinds[row.Kind],
		Comment:     row.Comment,
		CommentData: parseCommentData(row.Comment, schema.Db.options.CommentDataToken),
		Schema:      schema,
		ClassOID:    row.ClassOID,
	}
	switch t.Kind {
	case TypeKindBase:
		if alias, ok := builtinAliases[t.Name]; ok {
			t.Alias = &alias
		}
	case TypeKindDomain:
		t.NotNull = row.NotNull
		t.Default = row.Default
		t.CheckConstraints = newConstraintCollection()
	case TypeKindEnum:
		t.Values = row.EnumValues
	case TypeKindComposite:
		t.Columns = newColumnCollection()
	}
	return t
}
