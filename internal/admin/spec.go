package admin

// FieldSpec is the data-only description of a form field.
type FieldSpec struct {
	Key          string        `json:"key" yaml:"key"`
	Label        string        `json:"label" yaml:"label"`
	Kind         FieldKind     `json:"kind" yaml:"kind"`
	Required     bool          `json:"required" yaml:"required"`
	RequiredOn   []Operation   `json:"required_on,omitempty" yaml:"required_on,omitempty"`
	Unique       bool          `json:"unique" yaml:"unique"`
	Revealable   bool          `json:"revealable,omitempty" yaml:"revealable,omitempty"`
	Default      DefaultRule   `json:"default,omitempty" yaml:"default,omitempty"`
	Derives      []DeriveSpec  `json:"derives,omitempty" yaml:"derives,omitempty"`
	Relationship *Relationship `json:"relationship,omitempty" yaml:"relationship,omitempty"`
	WriteOnly    bool          `json:"write_only,omitempty" yaml:"write_only,omitempty"`
}

// DeriveSpec is the data-only description of a derivation.
type DeriveSpec struct {
	Target    string `json:"target" yaml:"target"`
	Transform string `json:"transform" yaml:"transform"`
}

// FormSpec lists form fields in order.
type FormSpec struct {
	Fields []FieldSpec `json:"fields" yaml:"fields"`
}

// ColumnSpec is the data-only description of a table column.
type ColumnSpec struct {
	Key                 string              `json:"key" yaml:"key"`
	Label               string              `json:"label" yaml:"label"`
	Render              RenderKind          `json:"render" yaml:"render"`
	Sortable            bool                `json:"sortable" yaml:"sortable"`
	Searchable          bool                `json:"searchable" yaml:"searchable"`
	Toggleable          bool                `json:"toggleable" yaml:"toggleable"`
	HiddenByDefault     bool                `json:"hidden_by_default" yaml:"hidden_by_default"`
	Limit               int                 `json:"limit,omitempty" yaml:"limit,omitempty"`
	Wrap                bool                `json:"wrap,omitempty" yaml:"wrap,omitempty"`
	Link                bool                `json:"link" yaml:"link"`
	OpenInNewTab        bool                `json:"open_in_new_tab" yaml:"open_in_new_tab"`
	DescriptionPosition DescriptionPosition `json:"description_position,omitempty" yaml:"description_position,omitempty"`
	Tooltip             bool                `json:"tooltip,omitempty" yaml:"tooltip,omitempty"`
}

// ActionSpec is the data-only description of a row action.
type ActionSpec struct {
	Name         string     `json:"name" yaml:"name"`
	Label        string     `json:"label" yaml:"label"`
	Kind         ActionKind `json:"kind" yaml:"kind"`
	OpenInNewTab bool       `json:"open_in_new_tab,omitempty" yaml:"open_in_new_tab,omitempty"`
}

// TableSpec is the data-only description of a table.
type TableSpec struct {
	Columns              []ColumnSpec `json:"columns" yaml:"columns"`
	Filters              []Filter     `json:"filters" yaml:"filters"`
	Actions              []ActionSpec `json:"actions" yaml:"actions"`
	BulkActions          []ActionKind `json:"bulk_actions" yaml:"bulk_actions"`
	HeaderActions        []ActionKind `json:"header_actions" yaml:"header_actions"`
	RecordTitleAttribute string       `json:"record_title_attribute,omitempty" yaml:"record_title_attribute,omitempty"`
}

// RelationSpec describes a relation manager.
type RelationSpec struct {
	Name  string    `json:"name" yaml:"name"`
	Label string    `json:"label" yaml:"label"`
	Form  FormSpec  `json:"form" yaml:"form"`
	Table TableSpec `json:"table" yaml:"table"`
}

// ResourceSpec is the full data-only schema of a resource.
type ResourceSpec struct {
	Name      string         `json:"name" yaml:"name"`
	Label     string         `json:"label" yaml:"label"`
	Form      FormSpec       `json:"form" yaml:"form"`
	Table     TableSpec      `json:"table" yaml:"table"`
	Relations []RelationSpec `json:"relations,omitempty" yaml:"relations,omitempty"`
}

// Spec returns the form schema without behaviour.
func (f Form) Spec() FormSpec {
	fields := make([]FieldSpec, 0, len(f.Fields))
	for _, field := range f.Fields {
		fs := FieldSpec{
			Key:          field.Key,
			Label:        field.Label,
			Kind:         field.Kind,
			Required:     field.Required,
			RequiredOn:   field.RequiredOn,
			Unique:       field.Unique,
			Revealable:   field.Revealable,
			Default:      field.Default,
			Relationship: field.Relationship,
			WriteOnly:    field.Kind == KindPassword,
		}
		for _, d := range field.Derives {
			fs.Derives = append(fs.Derives, DeriveSpec{Target: d.Target, Transform: d.Transform.Name})
		}
		fields = append(fields, fs)
	}
	return FormSpec{Fields: fields}
}

// Spec returns the table schema without behaviour.
func (t Table[T]) Spec() TableSpec {
	spec := TableSpec{
		Columns:              make([]ColumnSpec, 0, len(t.Columns)),
		Filters:              t.Filters,
		Actions:              make([]ActionSpec, 0, len(t.Actions)),
		BulkActions:          t.BulkActions,
		HeaderActions:        t.HeaderActions,
		RecordTitleAttribute: t.RecordTitleAttribute,
	}
	if spec.Filters == nil {
		spec.Filters = []Filter{}
	}
	for _, c := range t.Columns {
		spec.Columns = append(spec.Columns, ColumnSpec{
			Key:                 c.Key,
			Label:               c.Label,
			Render:              c.Render,
			Sortable:            c.Sortable,
			Searchable:          c.Searchable,
			Toggleable:          c.Toggleable,
			HiddenByDefault:     c.HiddenByDefault,
			Limit:               c.Limit,
			Wrap:                c.Wrap,
			Link:                c.URL != nil,
			OpenInNewTab:        c.OpenURLInNewTab,
			DescriptionPosition: c.DescriptionPosition,
			Tooltip:             c.Tooltip != nil,
		})
	}
	for _, a := range t.Actions {
		spec.Actions = append(spec.Actions, ActionSpec{
			Name:         a.Name,
			Label:        a.Label,
			Kind:         a.Kind,
			OpenInNewTab: a.OpenURLInNewTab,
		})
	}
	return spec
}

// For resolves operation-scoped requirements so Required reflects op.
func (s FormSpec) For(op Operation) FormSpec {
	fields := make([]FieldSpec, len(s.Fields))
	for i, f := range s.Fields {
		if len(f.RequiredOn) > 0 {
			f.Required = false
			for _, o := range f.RequiredOn {
				if o == op {
					f.Required = true
				}
			}
		}
		fields[i] = f
	}
	return FormSpec{Fields: fields}
}

// For resolves every form of the resource for op.
func (s ResourceSpec) For(op Operation) ResourceSpec {
	out := s
	out.Form = s.Form.For(op)
	out.Relations = make([]RelationSpec, len(s.Relations))
	for i, r := range s.Relations {
		r.Form = r.Form.For(op)
		out.Relations[i] = r
	}
	return out
}
