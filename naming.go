package pgraph

import "strings"

// RelationNamer produces a relation's name from its structural context.
// Implementations must be pure: identical inputs yield identical names.
type RelationNamer interface {
	Name(r *Relation) string
}

// RelationNamerFunc adapts a function to the RelationNamer interface.
type RelationNamerFunc func(r *Relation) string

// Name implements RelationNamer.
func (f RelationNamerFunc) Name(r *Relation) string { return f(r) }

// Built-in naming strategy names.
const (
	NamingShort   = "short"
	NamingOptimal = "optimal"
)

func builtinNamer(name string) RelationNamer {
	if name == NamingOptimal {
		return RelationNamerFunc(optimalName)
	}
	return RelationNamerFunc(shortName)
}

// shortName names a relation after the table on its far end, honoring
// alias lists embedded in the FK constraint name.
func shortName(r *Relation) string {
	forward, reverse, ok := r.fkAliases()
	if ok {
		if r.Kind == RelationKindOneToMany {
			return reverse
		}
		return forward
	}
	return r.TargetTable.Name
}

// optimalName derives many-to-one names from the FK column when it follows
// the <name>_id convention, and falls back to shortName otherwise.
func optimalName(r *Relation) string {
	if r.Kind == RelationKindManyToOne && len(r.ForeignKey.Columns) == 1 {
		col := r.ForeignKey.Columns[0].Name
		if base, found := strings.CutSuffix(col, "_id"); found && base != "" {
			return base
		}
	}
	return shortName(r)
}

// fkAliases splits an alias list embedded in the relation's FK constraint
// name on the configured separator. The forward alias names the relation
// seen from the FK-owning table (m2o, and the far leg of m2m); the reverse
// alias names the referenced table's o2m. By default the list is
// "forward<sep>reverse"; the target-first knob swaps the two positions.
func (r *Relation) fkAliases() (forward, reverse string, ok bool) {
	fk := r.constraintForSuffix()
	opts := r.SourceTable.Schema.Db.options
	if opts.ForeignKeyAliasSeparator == "" {
		return "", "", false
	}

	parts := strings.SplitN(fk.Name, opts.ForeignKeyAliasSeparator, 2)
	if len(parts) != 2 {
		return "", "", false
	}
	forward, reverse = strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	if opts.ForeignKeyAliasTargetFirst {
		forward, reverse = reverse, forward
	}
	return forward, reverse, forward != "" && reverse != ""
}
