package pgraph

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	name string
	oid  OID
	pos  int
}

func newItemCollection() *Collection[*item] {
	return newCollection(func(i *item) string { return i.name }).
		withOIDKey(func(i *item) OID { return i.oid }).
		withPositionKey(func(i *item) int { return i.pos })
}

func TestCollectionOrderingAndLookup(t *testing.T) {
	c := newItemCollection()
	a := &item{name: "Alpha", oid: 10, pos: 3}
	b := &item{name: "beta", oid: 20, pos: 1}
	require.NoError(t, c.append(a))
	require.NoError(t, c.append(b))

	assert.Equal(t, 2, c.Len())
	assert.Same(t, a, c.At(0))
	assert.Same(t, b, c.At(1))
	assert.Equal(t, []*item{a, b}, c.All())

	got, err := c.Get("Alpha")
	require.NoError(t, err)
	assert.Same(t, a, got)

	_, err = c.Get("alpha")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))

	got, err = c.GetFold("ALPHA")
	require.NoError(t, err)
	assert.Same(t, a, got)

	got, err = c.ByOID(20)
	require.NoError(t, err)
	assert.Same(t, b, got)

	got, err = c.ByPosition(3)
	require.NoError(t, err)
	assert.Same(t, a, got)

	_, ok := c.MaybeGet("missing")
	assert.False(t, ok)
	_, ok = c.MaybeByOID(99)
	assert.False(t, ok)
	_, ok = c.MaybeByPosition(99)
	assert.False(t, ok)
}

func TestCollectionDuplicateKeysFail(t *testing.T) {
	tests := []struct {
		name string
		dup  *item
	}{
		{name: "duplicate name", dup: &item{name: "x", oid: 2, pos: 2}},
		{name: "duplicate oid", dup: &item{name: "y", oid: 1, pos: 2}},
		{name: "duplicate position", dup: &item{name: "y", oid: 2, pos: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newItemCollection()
			require.NoError(t, c.append(&item{name: "x", oid: 1, pos: 1}))
			assert.Error(t, c.append(tt.dup))
		})
	}
}

func TestCollectionCaseFoldFirstWins(t *testing.T) {
	c := newItemCollection()
	first := &item{name: "Name", oid: 1, pos: 1}
	second := &item{name: "name", oid: 2, pos: 2}
	require.NoError(t, c.append(first))
	require.NoError(t, c.append(second))

	// Case-sensitive lookups see both; the fold view resolves to the
	// earliest element.
	got, err := c.Get("name")
	require.NoError(t, err)
	assert.Same(t, second, got)

	got, err = c.GetFold("NAME")
	require.NoError(t, err)
	assert.Same(t, first, got)
}
