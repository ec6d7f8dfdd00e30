package pgraph

// RelationKind discriminates derived relations.
type RelationKind string

const (
	RelationKindManyToOne  RelationKind = "m2o"
	RelationKindOneToMany  RelationKind = "o2m"
	RelationKindManyToMany RelationKind = "m2m"
)

// Relation is a higher-level relationship derived from foreign key
// topology. Relations are not catalog-backed; they are computed lazily per
// table on first access and memoized.
type Relation struct {
	Kind RelationKind

	// Name is assigned by the active naming strategy, with deterministic
	// collision suffixes.
	Name string

	SourceTable *Entity
	TargetTable *Entity

	// ForeignKey is the defining constraint of a many-to-one or
	// one-to-many relation.
	ForeignKey *Constraint

	// JoinTable links a many-to-many relation.
	JoinTable *Entity

	// ThroughForeignKeyConstraint is the join table's FK toward the far
	// side of a many-to-many relation.
	ThroughForeignKeyConstraint *Constraint

	// ThroughForeignKeyConstraintToSelf is the join table's FK toward the
	// near side.
	ThroughForeignKeyConstraintToSelf *Constraint
}

type tableRelations struct {
	m2o []*Relation
	o2m []*Relation
	m2m []*Relation
}

// M2O returns the table's many-to-one relations, one per outgoing foreign
// key.
func (e *Entity) M2O() []*Relation {
	e.relOnce.Do(e.computeRelations)
	return e.relations.m2o
}

// O2M returns the table's one-to-many relations, one per incoming foreign
// key.
func (e *Entity) O2M() []*Relation {
	e.relOnce.Do(e.computeRelations)
	return e.relations.o2m
}

// M2M returns the table's many-to-many relations through join tables.
func (e *Entity) M2M() []*Relation {
	e.relOnce.Do(e.computeRelations)
	return e.relations.m2m
}

func (e *Entity) computeRelations() {
	if e.Kind != EntityKindTable {
		return
	}
	var all []*Relation

	for _, fk := range e.ForeignKeys() {
		r := &Relation{
			Kind:        RelationKindManyToOne,
			SourceTable: e,
			TargetTable: fk.ReferencedTable(),
			ForeignKey:  fk,
		}
		e.relations.m2o = append(e.relations.m2o, r)
		all = append(all, r)
	}

	for _, fk := range e.ForeignKeysToThis.All() {
		r := &Relation{
			Kind:        RelationKindOneToMany,
			SourceTable: e,
			TargetTable: fk.Table,
			ForeignKey:  fk,
		}
		e.relations.o2m = append(e.relations.o2m, r)
		all = append(all, r)
	}

	for _, fk := range e.ForeignKeysToThis.All() {
		join := fk.Table
		if !isJoinTable(join) {
			continue
		}
		for _, other := range join.ForeignKeys() {
			if other == fk {
				continue
			}
			r := &Relation{
				Kind:                              RelationKindManyToMany,
				SourceTable:                       e,
				TargetTable:                       other.ReferencedTable(),
				JoinTable:                         join,
				ThroughForeignKeyConstraint:       other,
				ThroughForeignKeyConstraintToSelf: fk,
			}
			e.relations.m2m = append(e.relations.m2m, r)
			all = append(all, r)
		}
	}

	nameRelations(e.Schema.Db, all)
}

// isJoinTable reports whether a table is a many-to-many linker: it has a
// primary key and the PK column set equals the union of the columns of
// exactly two outgoing foreign keys. The two FKs need not be disjoint, so
// self-referencing join tables qualify.
func isJoinTable(t *Entity) bool {
	pk := t.PrimaryKey()
	if pk == nil {
		return false
	}
	fks := t.ForeignKeys()
	if len(fks) != 2 {
		return false
	}

	union := map[*Column]bool{}
	for _, fk := range fks {
		for _, c := range fk.Columns {
			union[c] = true
		}
	}
	pkCols := pk.IndexColumns()
	if len(pkCols) != len(union) {
		return false
	}
	for _, c := range pkCols {
		if !union[c] {
			return false
		}
	}
	return true
}

// nameRelations runs the naming strategy over a table's relations in
// iteration order (m2o, then o2m, then m2m) and resolves collisions: the
// first occurrence keeps its name, later ones get a deterministic suffix
// derived from the FK constraint name and, for m2m, the join table name.
func nameRelations(db *Db, relations []*Relation) {
	seen := map[string]bool{}
	for _, r := range relations {
		name := db.namer.Name(r)
		if seen[name] {
			name = name + "__" + r.constraintForSuffix().Name
			if r.Kind == RelationKindManyToMany {
				name = name + "__" + r.JoinTable.Name
			}
		}
		seen[name] = true
		r.Name = name
	}
}

func (r *Relation) constraintForSuffix() *Constraint {
	if r.Kind == RelationKindManyToMany {
		return r.ThroughForeignKeyConstraint
	}
	return r.ForeignKey
}
