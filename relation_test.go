package pgraph

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManyToOneAndOneToMany(t *testing.T) {
	db := buildFixture(t)

	order := mustTable(t, db, "public.order")
	m2o := order.M2O()
	require.Len(t, m2o, 1)
	assert.Equal(t, "account", m2o[0].Name)
	assert.Same(t, mustTable(t, db, "public.account"), m2o[0].TargetTable)

	account := mustTable(t, db, "public.account")
	o2m := account.O2M()
	require.Len(t, o2m, 1)
	assert.Equal(t, "order", o2m[0].Name)
	assert.Same(t, order, o2m[0].TargetTable)
	assert.Same(t, m2o[0].ForeignKey, o2m[0].ForeignKey)
}

func TestManyToMany(t *testing.T) {
	db := buildFixture(t)

	cart := mustTable(t, db, "public.cart")
	product := mustTable(t, db, "public.product")
	join := mustTable(t, db, "public.cart_product")

	m2m := cart.M2M()
	require.Len(t, m2m, 1)
	rel := m2m[0]

	assert.Equal(t, "product", rel.Name)
	assert.Same(t, product, rel.TargetTable)
	assert.Same(t, join, rel.JoinTable)
	assert.Equal(t, "cart_product_product_fk", rel.ThroughForeignKeyConstraint.Name)
	assert.Equal(t, "cart_product_cart_fk", rel.ThroughForeignKeyConstraintToSelf.Name)
}

func TestSelfReferencingManyToMany(t *testing.T) {
	db := buildFixture(t)

	person := mustTable(t, db, "public.person")
	m2m := person.M2M()
	require.Len(t, m2m, 2)

	// Both relations loop back to person through friendship; the collision
	// rule keeps the first name and suffixes the second deterministically.
	assert.Same(t, person, m2m[0].TargetTable)
	assert.Same(t, person, m2m[1].TargetTable)
	assert.Equal(t, "person", m2m[0].Name)
	assert.Equal(t, "person__friendship_a_fk__friendship", m2m[1].Name)
	assert.NotEqual(t, m2m[0].Name, m2m[1].Name)
}

func TestOneToManyCollisionSuffix(t *testing.T) {
	db := buildFixture(t)

	person := mustTable(t, db, "public.person")
	o2m := person.O2M()
	require.Len(t, o2m, 2)
	assert.Equal(t, "friendship", o2m[0].Name)
	assert.Equal(t, "friendship__friendship_b_fk", o2m[1].Name)
}

func TestRelationsAreMemoized(t *testing.T) {
	db := buildFixture(t)

	cart := mustTable(t, db, "public.cart")
	first := cart.M2M()
	second := cart.M2M()
	require.Len(t, first, 1)
	assert.Same(t, first[0], second[0])
}

func TestNamingDeterminism(t *testing.T) {
	a := buildFixture(t)
	b := buildFixture(t)

	pa := mustTable(t, a, "public.person")
	pb := mustTable(t, b, "public.person")
	require.Len(t, pa.M2M(), 2)
	for i := range pa.M2M() {
		assert.Equal(t, pa.M2M()[i].Name, pb.M2M()[i].Name)
	}
}

func TestJoinTableRule(t *testing.T) {
	db := buildFixture(t)

	assert.True(t, isJoinTable(mustTable(t, db, "public.cart_product")))
	assert.True(t, isJoinTable(mustTable(t, db, "public.friendship")))
	// A plain table with one FK and a single-column PK is not a linker.
	assert.False(t, isJoinTable(mustTable(t, db, "public.order")))
	assert.False(t, isJoinTable(mustTable(t, db, "public.account")))
}

func TestJoinTableRequiresPkEqualsFkUnion(t *testing.T) {
	// Widen cart_product's PK beyond the FK union: no longer a join table.
	snap := testSnapshot()
	for i, row := range snap.QueryResults.Columns {
		if row.ParentOID == oidCartProduct && row.Name == "product_id" {
			snap.QueryResults.Columns = append(snap.QueryResults.Columns[:i+1],
				append([]ColumnRow{{ParentOID: oidCartProduct, ParentKind: "r", Name: "note", AttributeNumber: 3, TypeOID: oidTypeVarchar}},
					snap.QueryResults.Columns[i+1:]...)...)
			break
		}
	}
	for i, row := range snap.QueryResults.Indexes {
		if row.TableOID == oidCartProduct {
			snap.QueryResults.Indexes[i].ColumnPositions = []int{1, 2, 3}
		}
	}
	for i, row := range snap.QueryResults.Constraints {
		if row.Kind == "p" && row.TableOID == oidCartProduct {
			snap.QueryResults.Constraints[i].ColumnNumbers = []int{1, 2, 3}
		}
	}

	data, err := json.Marshal(snap)
	require.NoError(t, err)
	db, err := Deserialize(data)
	require.NoError(t, err)

	assert.False(t, isJoinTable(mustTable(t, db, "public.cart_product")))
	assert.Empty(t, mustTable(t, db, "public.cart").M2M())
}
