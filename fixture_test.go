package pgraph

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

// Fixture OIDs. Schemas, types, entities, indexes, and constraints get
// separate ranges so failures read well.
const (
	oidPgCatalog = 11
	oidPublic    = 100

	oidTypeInt4    = 23
	oidTypeVarchar = 1043
	oidTypeTrigger = 2279

	oidAccount     = 1001
	oidOrder       = 1002
	oidCart        = 1003
	oidProduct     = 1004
	oidCartProduct = 1005
	oidPerson      = 1006
	oidFriendship  = 1007
)

func str(s string) *string { return &s }
func num(n int) *int       { return &n }

// testSnapshot builds the catalog rows of a small store database plus a
// self-referencing friendship graph:
//
//	account(id pk, email varchar(64) not null)
//	order(id pk, account_id -> account.id on delete cascade)
//	cart(id pk), product(id pk)
//	cart_product(cart_id, product_id, pk(cart_id, product_id))
//	person(id pk), friendship(a, b, pk(a, b)) with both FKs to person
func testSnapshot() *Snapshot {
	tables := []struct {
		oid  OID
		name string
	}{
		{oidAccount, "account"},
		{oidOrder, "order"},
		{oidCart, "cart"},
		{oidProduct, "product"},
		{oidCartProduct, "cart_product"},
		{oidPerson, "person"},
		{oidFriendship, "friendship"},
	}

	q := QueryResults{
		Schemas:       []SchemaRow{{OID: oidPublic, Name: "public"}},
		SystemSchemas: []SchemaRow{{OID: oidPgCatalog, Name: "pg_catalog"}},
		Types: []TypeRow{
			{OID: oidTypeInt4, SchemaOID: oidPgCatalog, Name: "int4", Kind: "b"},
			{OID: oidTypeVarchar, SchemaOID: oidPgCatalog, Name: "varchar", Kind: "b"},
			{OID: oidTypeTrigger, SchemaOID: oidPgCatalog, Name: "trigger", Kind: "p"},
		},
	}
	for _, t := range tables {
		// Every table is shadowed by a composite type.
		q.Types = append(q.Types, TypeRow{
			OID: t.oid + 8000, ClassOID: t.oid, SchemaOID: oidPublic, Name: t.name, Kind: "c",
		})
		q.Entities = append(q.Entities, EntityRow{
			OID: t.oid, SchemaOID: oidPublic, Name: t.name, Kind: "r",
		})
	}

	q.Columns = []ColumnRow{
		{ParentOID: oidAccount, ParentKind: "r", Name: "id", AttributeNumber: 1, TypeOID: oidTypeInt4, NotNull: true},
		{ParentOID: oidAccount, ParentKind: "r", Name: "email", AttributeNumber: 2, TypeOID: oidTypeVarchar, NotNull: true, Length: num(64)},
		{ParentOID: oidOrder, ParentKind: "r", Name: "id", AttributeNumber: 1, TypeOID: oidTypeInt4, NotNull: true},
		{ParentOID: oidOrder, ParentKind: "r", Name: "account_id", AttributeNumber: 2, TypeOID: oidTypeInt4, NotNull: true},
		{ParentOID: oidCart, ParentKind: "r", Name: "id", AttributeNumber: 1, TypeOID: oidTypeInt4, NotNull: true},
		{ParentOID: oidProduct, ParentKind: "r", Name: "id", AttributeNumber: 1, TypeOID: oidTypeInt4, NotNull: true},
		{ParentOID: oidCartProduct, ParentKind: "r", Name: "cart_id", AttributeNumber: 1, TypeOID: oidTypeInt4, NotNull: true},
		{ParentOID: oidCartProduct, ParentKind: "r", Name: "product_id", AttributeNumber: 2, TypeOID: oidTypeInt4, NotNull: true},
		{ParentOID: oidPerson, ParentKind: "r", Name: "id", AttributeNumber: 1, TypeOID: oidTypeInt4, NotNull: true},
		{ParentOID: oidFriendship, ParentKind: "r", Name: "a", AttributeNumber: 1, TypeOID: oidTypeInt4, NotNull: true},
		{ParentOID: oidFriendship, ParentKind: "r", Name: "b", AttributeNumber: 2, TypeOID: oidTypeInt4, NotNull: true},
	}

	pkPositions := map[OID][]int{
		oidAccount:     {1},
		oidOrder:       {1},
		oidCart:        {1},
		oidProduct:     {1},
		oidCartProduct: {1, 2},
		oidPerson:      {1},
		oidFriendship:  {1, 2},
	}
	for _, t := range tables {
		q.Indexes = append(q.Indexes, IndexRow{
			OID: t.oid + 1000, TableOID: t.oid, Name: t.name + "_pkey",
			IsUnique: true, IsPrimary: true, ColumnPositions: pkPositions[t.oid],
		})
		q.Constraints = append(q.Constraints, ConstraintRow{
			OID: t.oid + 2000, Name: t.name + "_pkey", Kind: "p",
			TableOID: t.oid, IndexOID: t.oid + 1000,
			ColumnNumbers: pkPositions[t.oid],
		})
	}

	q.Constraints = append(q.Constraints,
		ConstraintRow{
			OID: 3101, Name: "order_account_fk", Kind: "f",
			TableOID: oidOrder, IndexOID: oidAccount + 1000,
			ColumnNumbers: []int{2}, OnUpdate: "a", OnDelete: "c", MatchType: "s",
		},
		ConstraintRow{
			OID: 3102, Name: "cart_product_cart_fk", Kind: "f",
			TableOID: oidCartProduct, IndexOID: oidCart + 1000,
			ColumnNumbers: []int{1}, OnUpdate: "a", OnDelete: "a", MatchType: "s",
		},
		ConstraintRow{
			OID: 3103, Name: "cart_product_product_fk", Kind: "f",
			TableOID: oidCartProduct, IndexOID: oidProduct + 1000,
			ColumnNumbers: []int{2}, OnUpdate: "a", OnDelete: "a", MatchType: "s",
		},
		ConstraintRow{
			OID: 3104, Name: "friendship_a_fk", Kind: "f",
			TableOID: oidFriendship, IndexOID: oidPerson + 1000,
			ColumnNumbers: []int{1}, OnUpdate: "a", OnDelete: "a", MatchType: "s",
		},
		ConstraintRow{
			OID: 3105, Name: "friendship_b_fk", Kind: "f",
			TableOID: oidFriendship, IndexOID: oidPerson + 1000,
			ColumnNumbers: []int{2}, OnUpdate: "a", OnDelete: "a", MatchType: "s",
		},
	)

	q.Functions = []FunctionRow{{
		OID: 4001, SchemaOID: oidPublic, Name: "touch_account", Kind: "f",
		ReturnTypeOID: oidTypeTrigger, Volatility: "v", Language: "plpgsql",
	}}
	q.Triggers = []TriggerRow{{
		OID: 5001, TableOID: oidAccount, FunctionOID: 4001, Name: "account_touch",
	}}

	return &Snapshot{
		Name:          "store",
		ServerVersion: "15.4",
		Config: SnapshotConfig{
			CommentDataToken:         "pg-structure",
			ForeignKeyAliasSeparator: ",",
			RelationNaming:           NamingShort,
		},
		QueryResults: q,
	}
}

// buildFixture assembles the fixture through the public Deserialize path.
func buildFixture(t *testing.T) *Db {
	t.Helper()
	data, err := json.Marshal(testSnapshot())
	require.NoError(t, err)
	db, err := Deserialize(data)
	require.NoError(t, err)
	return db
}
