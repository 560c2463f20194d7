package admin

// Relation is a relation manager: the form and table used to manage the
// related records of one owner record.
type Relation[T any] struct {
	Name  string
	Label string
	Form  Form
	Table Table[T]
}

// Spec returns the relation schema without behaviour.
func (r Relation[T]) Spec() RelationSpec {
	return RelationSpec{
		Name:  r.Name,
		Label: r.Label,
		Form:  r.Form.Spec(),
		Table: r.Table.Spec(),
	}
}
