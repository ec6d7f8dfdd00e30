package pgraph

import (
	"fmt"
	"strings"
)

// Object is implemented by every node in the catalog graph.
type Object interface {
	// ObjectName is the bare catalog name (e.g. "account").
	ObjectName() string

	// ObjectFullName is the schema-qualified name (e.g. "public.account").
	ObjectFullName() string
}

// Db is the root of the graph. It owns the user schemas, the system schemas
// (pg_catalog only), and the effective configuration. Every object reachable
// from a Db belongs to exactly one schema owned by it.
type Db struct {
	// Name identifies the database (the configured name or the connection's
	// database name).
	Name string

	// ServerVersion is the server version string the snapshot was taken from.
	ServerVersion string

	// Schemas holds the user schemas that passed the schema filters.
	Schemas *Collection[*Schema]

	// SystemSchemas holds pg_catalog.
	SystemSchemas *Collection[*Schema]

	options *Options
	namer   RelationNamer

	// snapshot the Db was assembled from; Serialize re-emits it.
	snapshot *Snapshot

	// assembly-time OID registries, used by the reference resolver.
	typesByOID      map[OID]*Type
	typesByClassOID map[OID]*Type
	entitiesByOID   map[OID]*Entity
	indexesByOID    map[OID]*Index
	functionsByOID  map[OID]*Function
}

// ObjectName implements Object.
func (db *Db) ObjectName() string { return db.Name }

// ObjectFullName implements Object.
func (db *Db) ObjectFullName() string { return db.Name }

// Options returns the effective options the Db was built with.
func (db *Db) Options() *Options { return db.options }

// Get resolves a dotted path to an object: "public" names a schema,
// "public.account" an entity or type, "public.account.id" a column.
// A miss wraps ErrNotFound.
func (db *Db) Get(path string) (Object, error) {
	segs := strings.Split(path, ".")
	schema, ok := db.Schemas.MaybeGet(segs[0])
	if !ok {
		schema, ok = db.SystemSchemas.MaybeGet(segs[0])
	}
	if !ok {
		return nil, fmt.Errorf("%w: schema %q", ErrNotFound, segs[0])
	}
	if len(segs) == 1 {
		return schema, nil
	}
	return schema.getPath(segs[1:])
}

// MaybeGet is Get without the error.
func (db *Db) MaybeGet(path string) (Object, bool) {
	obj, err := db.Get(path)
	return obj, err == nil
}

func splitPath(path string) []string {
	return strings.Split(path, ".")
}

func newDb(name, serverVersion string, opts *Options, namer RelationNamer) *Db {
	return &Db{
		Name:          name,
		ServerVersion: serverVersion,
		Schemas:       newSchemaCollection(),
		SystemSchemas: newSchemaCollection(),
		options:       opts,
		namer:         namer,

		typesByOID:      map[OID]*Type{},
		typesByClassOID: map[OID]*Type{},
		entitiesByOID:   map[OID]*Entity{},
		indexesByOID:    map[OID]*Index{},
		functionsByOID:  map[OID]*Function{},
	}
}

func newSchemaCollection() *Collection[*Schema] {
	return newCollection(func(s *Schema) string { return s.Name }).
		withOIDKey(func(s *Schema) OID { return s.OID })
}
