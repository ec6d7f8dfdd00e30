package pgraph

import (
	"encoding/json"
	"fmt"
)

// The row types mirror the nine catalog result sets one to one. A Snapshot
// captures them raw, together with the serializable configuration, so a Db
// can be replayed offline: assembly is pure over (rows, config, namer).

// SchemaRow is one pg_namespace row.
type SchemaRow struct {
	OID     OID     `json:"oid"`
	Name    string  `json:"name"`
	Comment *string `json:"comment"`
}

// TypeRow is one pg_type row.
type TypeRow struct {
	OID       OID    `json:"oid"`
	ClassOID  OID    `json:"classOid"`
	SchemaOID OID    `json:"schemaOid"`
	Name      string `json:"name"`
	Kind      string `json:"kind"`

	NotNull     bool     `json:"notNull"`
	Default     *string  `json:"default"`
	BaseTypeOID OID      `json:"baseTypeOid"`
	EnumValues  []string `json:"enumValues"`
	Comment     *string  `json:"comment"`
}

// EntityRow is one pg_class row of a supported relkind.
type EntityRow struct {
	OID       OID     `json:"oid"`
	SchemaOID OID     `json:"schemaOid"`
	Name      string  `json:"name"`
	Kind      string  `json:"kind"`
	Comment   *string `json:"comment"`
}

// ColumnRow is one pg_attribute row.
type ColumnRow struct {
	ParentOID  OID    `json:"parentOid"`
	ParentKind string `json:"parentKind"`

	Name            string `json:"name"`
	AttributeNumber int    `json:"attributeNumber"`
	TypeOID         OID    `json:"typeOid"`

	NotNull             bool    `json:"notNull"`
	Default             *string `json:"default"`
	Length              *int    `json:"length"`
	Precision           *int    `json:"precision"`
	Scale               *int    `json:"scale"`
	Identity            string  `json:"identity"`
	GeneratedExpression *string `json:"generatedExpression"`
	Comment             *string `json:"comment"`
}

// IndexRow is one pg_index row joined with its pg_class entry.
type IndexRow struct {
	OID      OID    `json:"oid"`
	TableOID OID    `json:"tableOid"`
	Name     string `json:"name"`

	IsUnique  bool `json:"isUnique"`
	IsPrimary bool `json:"isPrimary"`

	// ColumnPositions is indkey: attribute numbers, 0 for expression slots.
	ColumnPositions []int `json:"columnPositions"`

	// Expressions are consumed in order for each zero position.
	Expressions []string `json:"expressions"`

	PartialPredicate *string `json:"partialPredicate"`
	Comment          *string `json:"comment"`
}

// ConstraintRow is one pg_constraint row.
type ConstraintRow struct {
	OID  OID    `json:"oid"`
	Name string `json:"name"`
	Kind string `json:"kind"`

	TableOID  OID `json:"tableOid"`
	DomainOID OID `json:"domainOid"`
	IndexOID  OID `json:"indexOid"`

	ColumnNumbers []int   `json:"columnNumbers"`
	Expression    *string `json:"expression"`

	OnUpdate  string  `json:"onUpdate"`
	OnDelete  string  `json:"onDelete"`
	MatchType string  `json:"matchType"`
	Comment   *string `json:"comment"`
}

// FunctionRow is one pg_proc row.
type FunctionRow struct {
	OID       OID    `json:"oid"`
	SchemaOID OID    `json:"schemaOid"`
	Name      string `json:"name"`
	Kind      string `json:"kind"`

	ReturnTypeOID    OID      `json:"returnTypeOid"`
	ArgumentTypeOIDs []OID    `json:"argumentTypeOids"`
	ArgumentNames    []string `json:"argumentNames"`
	ArgumentModes    []string `json:"argumentModes"`

	Volatility string  `json:"volatility"`
	IsStrict   bool    `json:"isStrict"`
	Language   string  `json:"language"`
	Comment    *string `json:"comment"`
}

// TriggerRow is one pg_trigger row.
type TriggerRow struct {
	OID         OID     `json:"oid"`
	TableOID    OID     `json:"tableOid"`
	FunctionOID OID     `json:"functionOid"`
	Name        string  `json:"name"`
	Comment     *string `json:"comment"`
}

// QueryResults is the 9-tuple of catalog result sets in assembly phase
// order.
type QueryResults struct {
	Schemas       []SchemaRow     `json:"schemas"`
	SystemSchemas []SchemaRow     `json:"systemSchemas"`
	Types         []TypeRow       `json:"types"`
	Entities      []EntityRow     `json:"entities"`
	Columns       []ColumnRow     `json:"columns"`
	Indexes       []IndexRow      `json:"indexes"`
	Constraints   []ConstraintRow `json:"constraints"`
	Functions     []FunctionRow   `json:"functions"`
	Triggers      []TriggerRow    `json:"triggers"`
}

// SnapshotConfig is the serializable option subset. A custom RelationNamer
// cannot be captured; only the strategy name survives a round trip.
type SnapshotConfig struct {
	CommentDataToken           string `json:"commentDataToken"`
	ForeignKeyAliasSeparator   string `json:"foreignKeyAliasSeparator"`
	ForeignKeyAliasTargetFirst bool   `json:"foreignKeyAliasTargetFirst"`
	RelationNaming             string `json:"relationNameFunctions"`
}

// Snapshot is the immutable tuple a Db is reconstructed from.
type Snapshot struct {
	Name          string         `json:"name"`
	ServerVersion string         `json:"serverVersion"`
	Config        SnapshotConfig `json:"config"`
	QueryResults  QueryResults   `json:"queryResults"`
}

// Serialize returns the Db's snapshot as JSON. The output is deterministic
// for a given snapshot, so serializing a Db deserialized from Serialize
// output reproduces those bytes; other input is re-encoded, not echoed.
func (db *Db) Serialize() ([]byte, error) {
	data, err := json.Marshal(db.snapshot)
	if err != nil {
		return nil, fmt.Errorf("serialize snapshot: %w", err)
	}
	return data, nil
}

// Deserialize reconstructs a Db from a serialized snapshot by replaying the
// assembler over the captured rows. The naming strategy is re-bound by name;
// a custom namer must be re-injected via DeserializeWith.
func Deserialize(data []byte) (*Db, error) {
	return DeserializeWith(data, nil)
}

// DeserializeWith reconstructs a Db from a serialized snapshot, overlaying
// the given options (typically to re-inject a custom RelationNamer or a
// logger). Filter options have no effect here: the snapshot already fixed
// the row sets.
func DeserializeWith(data []byte, opts *Options) (*Db, error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("deserialize snapshot: %w", err)
	}

	o := opts.withDefaults()
	o.CommentDataToken = snap.Config.CommentDataToken
	o.ForeignKeyAliasSeparator = snap.Config.ForeignKeyAliasSeparator
	o.ForeignKeyAliasTargetFirst = snap.Config.ForeignKeyAliasTargetFirst
	if o.RelationNamer == nil {
		o.RelationNaming = snap.Config.RelationNaming
	}

	return assemble(&snap, o)
}

func snapshotConfig(o *Options) SnapshotConfig {
	return SnapshotConfig{
		CommentDataToken:           o.CommentDataToken,
		ForeignKeyAliasSeparator:   o.ForeignKeyAliasSeparator,
		ForeignKeyAliasTargetFirst: o.ForeignKeyAliasTargetFirst,
		RelationNaming:             o.RelationNaming,
	}
}
