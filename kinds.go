package pgraph

// All one-letter catalog discriminators are mapped here and nowhere else.
// The letters follow pg_class.relkind, pg_type.typtype, pg_proc.prokind,
// pg_constraint.contype/confupdtype/confmatchtype.

// EntityKind discriminates the pg_class-backed entity variants.
type EntityKind string

const (
	EntityKindTable            EntityKind = "table"
	EntityKindView             EntityKind = "view"
	EntityKindMaterializedView EntityKind = "materializedView"
	EntityKindSequence         EntityKind = "sequence"
)

// entityKinds maps pg_class.relkind. Partitioned tables ("p") are plain
// tables to this model.
var entityKinds = map[string]EntityKind{
	"r": EntityKindTable,
	"p": EntityKindTable,
	"v": EntityKindView,
	"m": EntityKindMaterializedView,
	"S": EntityKindSequence,
}

// TypeKind discriminates the pg_type variants.
type TypeKind string

const (
	TypeKindDomain     TypeKind = "domain"
	TypeKindEnum       TypeKind = "enumType"
	TypeKindBase       TypeKind = "baseType"
	TypeKindComposite  TypeKind = "compositeType"
	TypeKindRange      TypeKind = "rangeType"
	TypeKindMultiRange TypeKind = "multiRangeType"
	TypeKindPseudo     TypeKind = "pseudoType"
)

var typeKinds = map[string]TypeKind{
	"d": TypeKindDomain,
	"e": TypeKindEnum,
	"b": TypeKindBase,
	"c": TypeKindComposite,
	"r": TypeKindRange,
	"m": TypeKindMultiRange,
	"p": TypeKindPseudo,
}

// FunctionKind discriminates pg_proc.prokind.
type FunctionKind string

const (
	FunctionKindNormal    FunctionKind = "normalFunction"
	FunctionKindProcedure FunctionKind = "procedure"
	FunctionKindAggregate FunctionKind = "aggregateFunction"
	FunctionKindWindow    FunctionKind = "windowFunction"
)

var functionKinds = map[string]FunctionKind{
	"f": FunctionKindNormal,
	"p": FunctionKindProcedure,
	"a": FunctionKindAggregate,
	"w": FunctionKindWindow,
}

// ConstraintKind discriminates pg_constraint.contype.
type ConstraintKind string

const (
	ConstraintKindPrimaryKey ConstraintKind = "primaryKey"
	ConstraintKindUnique     ConstraintKind = "uniqueConstraint"
	ConstraintKindCheck      ConstraintKind = "checkConstraint"
	ConstraintKindExclusion  ConstraintKind = "exclusionConstraint"
	ConstraintKindForeignKey ConstraintKind = "foreignKey"
)

var constraintKinds = map[string]ConstraintKind{
	"p": ConstraintKindPrimaryKey,
	"u": ConstraintKindUnique,
	"c": ConstraintKindCheck,
	"x": ConstraintKindExclusion,
	"f": ConstraintKindForeignKey,
}

// FKAction is a referential action (pg_constraint.confupdtype/confdeltype).
type FKAction string

const (
	FKActionNoAction   FKAction = "NO ACTION"
	FKActionRestrict   FKAction = "RESTRICT"
	FKActionCascade    FKAction = "CASCADE"
	FKActionSetNull    FKAction = "SET NULL"
	FKActionSetDefault FKAction = "SET DEFAULT"
)

var fkActions = map[string]FKAction{
	"a": FKActionNoAction,
	"r": FKActionRestrict,
	"c": FKActionCascade,
	"n": FKActionSetNull,
	"d": FKActionSetDefault,
}

// FKMatchType is a foreign key match mode (pg_constraint.confmatchtype).
type FKMatchType string

const (
	FKMatchFull    FKMatchType = "FULL"
	FKMatchPartial FKMatchType = "PARTIAL"
	FKMatchSimple  FKMatchType = "SIMPLE"
)

var fkMatchTypes = map[string]FKMatchType{
	"f": FKMatchFull,
	"p": FKMatchPartial,
	"s": FKMatchSimple,
}

// Volatility is a function volatility class (pg_proc.provolatile).
type Volatility string

const (
	VolatilityImmutable Volatility = "immutable"
	VolatilityStable    Volatility = "stable"
	VolatilityVolatile  Volatility = "volatile"
)

var volatilities = map[string]Volatility{
	"i": VolatilityImmutable,
	"s": VolatilityStable,
	"v": VolatilityVolatile,
}

// IdentityKind is a column identity mode (pg_attribute.attidentity).
type IdentityKind string

const (
	IdentityAlways    IdentityKind = "ALWAYS"
	IdentityByDefault IdentityKind = "BY DEFAULT"
)

var identityKinds = map[string]IdentityKind{
	"a": IdentityAlways,
	"d": IdentityByDefault,
}
