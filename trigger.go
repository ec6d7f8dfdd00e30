package pgraph

// Trigger belongs to an entity and fires the referenced function.
type Trigger struct {
	OID  OID
	Name string

	Comment     *string
	CommentData any

	Table    *Entity
	Function *Function
}

// ObjectName implements Object.
func (t *Trigger) ObjectName() string { return t.Name }

// ObjectFullName implements Object.
func (t *Trigger) ObjectFullName() string { return t.Table.ObjectFullName() + "." + t.Name }

func newTriggerCollection() *Collection[*Trigger] {
	return newCollection(func(t *Trigger) string { return t.Name }).
		withOIDKey(func(t *Trigger) OID { return t.OID })
}
