package pgraph

// Reference resolution helpers used during assembly. All are pure lookups
// over the Db registries; callers decide whether absence is fatal.

// resolveSchemaSystemFirst finds a schema by OID, consulting the system
// schemas before the user schemas. Types resolve this way because user
// objects routinely reference pg_catalog types.
func (db *Db) resolveSchemaSystemFirst(oid OID) (*Schema, bool) {
	if s, ok := db.SystemSchemas.MaybeByOID(oid); ok {
		return s, true
	}
	return db.Schemas.MaybeByOID(oid)
}

// resolveSchema finds a schema by OID, user schemas first.
func (db *Db) resolveSchema(oid OID) (*Schema, bool) {
	if s, ok := db.Schemas.MaybeByOID(oid); ok {
		return s, true
	}
	return db.SystemSchemas.MaybeByOID(oid)
}

func (db *Db) resolveType(oid OID) (*Type, bool) {
	t, ok := db.typesByOID[oid]
	return t, ok
}

// resolveCompositeType finds a composite type by its backing pg_class OID.
func (db *Db) resolveCompositeType(classOID OID) (*Type, bool) {
	t, ok := db.typesByClassOID[classOID]
	return t, ok
}

func (db *Db) resolveEntity(oid OID) (*Entity, bool) {
	e, ok := db.entitiesByOID[oid]
	return e, ok
}

func (db *Db) resolveIndex(oid OID) (*Index, bool) {
	ix, ok := db.indexesByOID[oid]
	return ix, ok
}

func (db *Db) resolveFunction(oid OID) (*Function, bool) {
	f, ok := db.functionsByOID[oid]
	return f, ok
}
