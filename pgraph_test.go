package pgraph

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmptyDatabase(t *testing.T) {
	snap := &Snapshot{
		Name:          "empty",
		ServerVersion: "15.4",
		Config:        SnapshotConfig{CommentDataToken: "pg-structure", ForeignKeyAliasSeparator: ",", RelationNaming: NamingShort},
		QueryResults: QueryResults{
			SystemSchemas: []SchemaRow{{OID: oidPgCatalog, Name: "pg_catalog"}},
		},
	}
	data, err := json.Marshal(snap)
	require.NoError(t, err)

	db, err := Deserialize(data)
	require.NoError(t, err)

	assert.Equal(t, 0, db.Schemas.Len())
	require.Equal(t, 1, db.SystemSchemas.Len())
	assert.Equal(t, "pg_catalog", db.SystemSchemas.At(0).Name)
	assert.True(t, db.SystemSchemas.At(0).IsSystem)
}

func TestSingleTableColumns(t *testing.T) {
	db := buildFixture(t)

	obj, err := db.Get("public.account.id")
	require.NoError(t, err)
	id, ok := obj.(*Column)
	require.True(t, ok)
	assert.True(t, id.NotNull)
	assert.Equal(t, 1, id.AttributeNumber)

	email, err := db.Get("public.account.email")
	require.NoError(t, err)
	col := email.(*Column)
	assert.Equal(t, "character varying", col.Type.SQLName())
	require.NotNil(t, col.Length)
	assert.Equal(t, 64, *col.Length)
}

func TestForeignKeyConstraint(t *testing.T) {
	db := buildFixture(t)

	order, err := db.Get("public.order")
	require.NoError(t, err)
	table := order.(*Entity)

	fks := table.ForeignKeys()
	require.Len(t, fks, 1)
	fk := fks[0]

	assert.Equal(t, "order_account_fk", fk.Name)
	assert.Equal(t, FKActionCascade, fk.OnDelete)
	assert.Equal(t, FKActionNoAction, fk.OnUpdate)
	assert.Equal(t, FKMatchSimple, fk.MatchType)

	account := mustTable(t, db, "public.account")
	assert.Same(t, account, fk.ReferencedTable())

	// FK symmetry: the referenced table lists the constraint exactly once.
	reverse := account.ForeignKeysToThis.All()
	require.Len(t, reverse, 1)
	assert.Same(t, fk, reverse[0])

	// Source and target column lists are position-aligned.
	require.Len(t, fk.Columns, len(fk.ReferencedColumns()))
	assert.Equal(t, "account_id", fk.Columns[0].Name)
	assert.Equal(t, "id", fk.ReferencedColumns()[0].Name)
}

func TestReferenceClosure(t *testing.T) {
	db := buildFixture(t)

	for _, schema := range append(db.Schemas.All(), db.SystemSchemas.All()...) {
		assert.Same(t, db, schema.Db)
		for _, e := range schema.Entities() {
			assert.Same(t, schema, e.Schema)
			for _, col := range e.Columns.All() {
				assert.NotNil(t, col.Type)
				assert.Same(t, e, col.Parent)
			}
			if e.Constraints == nil {
				continue
			}
			for _, c := range e.Constraints.All() {
				if c.Kind == ConstraintKindForeignKey {
					require.NotNil(t, c.ReferencedTable())
					assert.Contains(t, c.ReferencedTable().ForeignKeysToThis.All(), c)
				}
			}
		}
	}
}

func TestTriggerResolution(t *testing.T) {
	db := buildFixture(t)

	account := mustTable(t, db, "public.account")
	require.Equal(t, 1, account.Triggers.Len())
	trg := account.Triggers.At(0)
	assert.Equal(t, "account_touch", trg.Name)
	require.NotNil(t, trg.Function)
	assert.Equal(t, "touch_account", trg.Function.Name)
	assert.Equal(t, VolatilityVolatile, trg.Function.Volatility)
}

func TestDanglingTriggerIsDropped(t *testing.T) {
	snap := testSnapshot()
	snap.QueryResults.Triggers = append(snap.QueryResults.Triggers, TriggerRow{
		OID: 5002, TableOID: oidAccount, FunctionOID: 9999, Name: "ghost",
	})
	data, err := json.Marshal(snap)
	require.NoError(t, err)

	db, err := Deserialize(data)
	require.NoError(t, err)

	account := mustTable(t, db, "public.account")
	_, ok := account.Triggers.MaybeGet("ghost")
	assert.False(t, ok)
}

func TestForeignKeyToMissingIndexIsDropped(t *testing.T) {
	snap := testSnapshot()
	snap.QueryResults.Constraints = append(snap.QueryResults.Constraints, ConstraintRow{
		OID: 3999, Name: "dangling_fk", Kind: "f",
		TableOID: oidOrder, IndexOID: 9999,
		ColumnNumbers: []int{1}, OnUpdate: "a", OnDelete: "a", MatchType: "s",
	})
	data, err := json.Marshal(snap)
	require.NoError(t, err)

	db, err := Deserialize(data)
	require.NoError(t, err)

	order := mustTable(t, db, "public.order")
	_, ok := order.Constraints.MaybeGet("dangling_fk")
	assert.False(t, ok)
	// The healthy FK is unaffected.
	assert.Len(t, order.ForeignKeys(), 1)
}

func TestMissingColumnParentIsFatal(t *testing.T) {
	snap := testSnapshot()
	snap.QueryResults.Columns = append(snap.QueryResults.Columns, ColumnRow{
		ParentOID: 9999, ParentKind: "r", Name: "orphan", AttributeNumber: 1, TypeOID: oidTypeInt4,
	})
	data, err := json.Marshal(snap)
	require.NoError(t, err)

	_, err = Deserialize(data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "9999")
}

func TestDottedLookupMatchesStepwise(t *testing.T) {
	db := buildFixture(t)

	direct, err := db.Get("public.account.email")
	require.NoError(t, err)

	schema, err := db.Schemas.Get("public")
	require.NoError(t, err)
	table, err := schema.Tables.Get("account")
	require.NoError(t, err)
	col, err := table.Columns.Get("email")
	require.NoError(t, err)

	assert.Same(t, col, direct)
}

func TestCompositeTypeLinksEntity(t *testing.T) {
	db := buildFixture(t)

	schema, err := db.Schemas.Get("public")
	require.NoError(t, err)

	typ, err := schema.TypesIncludingEntities.Get("account")
	require.NoError(t, err)
	assert.Equal(t, TypeKindComposite, typ.Kind)
	require.NotNil(t, typ.Entity)
	assert.Equal(t, "account", typ.Entity.Name)

	// Entity-backed composites are excluded from the plain type view.
	for _, tt := range schema.Types() {
		assert.NotEqual(t, "account", tt.Name)
	}
}

func mustTable(t *testing.T, db *Db, path string) *Entity {
	t.Helper()
	obj, err := db.Get(path)
	require.NoError(t, err)
	table, ok := obj.(*Entity)
	require.True(t, ok, "expected %s to be an entity", path)
	return table
}
