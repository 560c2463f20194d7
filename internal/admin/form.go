// Package admin provides the declarative schema layer shared by every
// resource: form fields, table columns, filters and actions, plus the
// generic operations that consume them (form state updates, validation,
// dehydration and table rendering).
package admin

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"inkwell/internal/models"

	"github.com/go-playground/validator/v10"
)

// Operation is the form operation a schema is evaluated for.
type Operation string

const (
	OperationCreate Operation = "create"
	OperationEdit   Operation = "edit"
)

// ParseOperation maps a request value to an Operation. Empty means create.
func ParseOperation(v string) (Operation, error) {
	switch Operation(strings.ToLower(strings.TrimSpace(v))) {
	case "", OperationCreate:
		return OperationCreate, nil
	case OperationEdit:
		return OperationEdit, nil
	}
	return "", fmt.Errorf("unknown form operation %q", v)
}

// FieldKind is the input kind of a form field.
type FieldKind string

const (
	KindText     FieldKind = "text"
	KindEmail    FieldKind = "email"
	KindPassword FieldKind = "password"
	KindRichText FieldKind = "rich_text"
	KindDateTime FieldKind = "datetime"
	KindDate     FieldKind = "date"
	KindSelect   FieldKind = "select"
)

// DefaultRule names how a field is pre-filled when a create form opens.
type DefaultRule string

const DefaultNow DefaultRule = "now"

// Transform is a named one-way value mapping used by derivations.
type Transform struct {
	Name  string
	Apply func(string) string
}

// SlugTransform derives a URL slug from free text.
var SlugTransform = Transform{Name: "slug", Apply: Slugify}

// Derivation sets Target to Transform(value) whenever the owning field changes.
type Derivation struct {
	Target    string
	Transform Transform
}

// Relationship binds a select field to records of another resource.
type Relationship struct {
	Name           string `json:"name" yaml:"name"`
	Resource       string `json:"resource" yaml:"resource"`
	TitleAttribute string `json:"title_attribute" yaml:"title_attribute"`
	Searchable     bool   `json:"searchable" yaml:"searchable"`
}

// Field describes one form input.
type Field struct {
	Key      string
	Label    string
	Kind     FieldKind
	Required bool
	// RequiredOn limits Required to the listed operations when non-empty.
	RequiredOn []Operation
	// Unique rejects values already used by another record.
	Unique       bool
	Revealable   bool
	Default      DefaultRule
	Derives      []Derivation
	Relationship *Relationship
	// DehydrateWhenFilled drops the field from persisted values when blank.
	DehydrateWhenFilled bool
	Dehydrate           func(string) (string, error)
}

// RequiredFor reports whether the field must be filled for op.
func (f Field) RequiredFor(op Operation) bool {
	if len(f.RequiredOn) == 0 {
		return f.Required
	}
	for _, o := range f.RequiredOn {
		if o == op {
			return true
		}
	}
	return false
}

func (f Field) label() string {
	if f.Label != "" {
		return strings.ToLower(f.Label)
	}
	return strings.ReplaceAll(f.Key, "_", " ")
}

// State is the string-keyed value set of a form.
type State map[string]string

// Clone returns a copy of s.
func (s State) Clone() State {
	out := make(State, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// StateFromJSON converts a decoded JSON object into form state.
func StateFromJSON(in map[string]any) State {
	out := make(State, len(in))
	for k, v := range in {
		switch val := v.(type) {
		case nil:
			out[k] = ""
		case string:
			out[k] = val
		case float64:
			out[k] = strconv.FormatFloat(val, 'f', -1, 64)
		case bool:
			out[k] = strconv.FormatBool(val)
		default:
			out[k] = fmt.Sprint(val)
		}
	}
	return out
}

// UniqueFunc reports whether value is already taken for field.
type UniqueFunc func(ctx context.Context, field, value string) (bool, error)

// Form is an ordered list of fields.
type Form struct {
	Fields []Field
}

// NewForm builds a form from fields in display order.
func NewForm(fields ...Field) Form {
	return Form{Fields: fields}
}

// Field looks up a field by key.
func (f Form) Field(key string) (Field, bool) {
	for _, field := range f.Fields {
		if field.Key == key {
			return field, true
		}
	}
	return Field{}, false
}

// Defaults returns the initial state for op.
func (f Form) Defaults(op Operation, now time.Time) State {
	state := make(State, len(f.Fields))
	for _, field := range f.Fields {
		state[field.Key] = ""
		if op == OperationCreate && field.Default == DefaultNow {
			if field.Kind == KindDate {
				state[field.Key] = now.Format(DateLayout)
			} else {
				state[field.Key] = now.Format(time.RFC3339)
			}
		}
	}
	return state
}

// Update sets key to value and applies the field's derivations.
// Derived targets are overwritten on every change, including values the
// user typed into the target directly.
func (f Form) Update(state State, key, value string) (State, error) {
	field, ok := f.Field(key)
	if !ok {
		return nil, fmt.Errorf("unknown form field %q", key)
	}
	next := state.Clone()
	next[key] = value
	for _, d := range field.Derives {
		next[d.Target] = d.Transform.Apply(value)
	}
	return next, nil
}

// Derive fills derived fields a submission left out, as if each source
// field had just been set through Update. Fields present in state are kept.
func (f Form) Derive(state State) State {
	next := state.Clone()
	for _, field := range f.Fields {
		value, ok := state[field.Key]
		if !ok {
			continue
		}
		for _, d := range field.Derives {
			if _, set := state[d.Target]; !set {
				next[d.Target] = d.Transform.Apply(value)
			}
		}
	}
	return next
}

var validate = validator.New()

// Validate checks state against the schema for op and returns an AppError
// carrying one message per rejected field. unique may be nil when no field
// is unique.
func (f Form) Validate(ctx context.Context, op Operation, state State, unique UniqueFunc) error {
	errs := map[string]string{}
	for _, field := range f.Fields {
		value := strings.TrimSpace(state[field.Key])
		if value == "" {
			if field.RequiredFor(op) {
				errs[field.Key] = fmt.Sprintf("The %s field is required.", field.label())
			}
			continue
		}
		if msg := checkKind(field, value); msg != "" {
			errs[field.Key] = msg
			continue
		}
		if field.Unique && unique != nil {
			taken, err := unique(ctx, field.Key, value)
			if err != nil {
				return err
			}
			if taken {
				errs[field.Key] = fmt.Sprintf("The %s has already been taken.", field.label())
			}
		}
	}
	if len(errs) > 0 {
		return models.NewFieldValidationError(errs)
	}
	return nil
}

func checkKind(field Field, value string) string {
	switch field.Kind {
	case KindEmail:
		if err := validate.Var(value, "email"); err != nil {
			return fmt.Sprintf("The %s field must be a valid email address.", field.label())
		}
	case KindDate, KindDateTime:
		if _, err := ParseTimestamp(value); err != nil {
			return fmt.Sprintf("The %s field must be a valid date.", field.label())
		}
	case KindSelect:
		if err := validate.Var(value, "number"); err != nil {
			return fmt.Sprintf("The selected %s is invalid.", field.label())
		}
		if _, err := ParseKey(value); err != nil {
			return fmt.Sprintf("The selected %s is invalid.", field.label())
		}
	}
	return ""
}

// Dehydrate returns the values to persist for op. Fields marked
// DehydrateWhenFilled are omitted when blank; Dehydrate transforms run on the
// remaining values.
func (f Form) Dehydrate(op Operation, state State) (State, error) {
	out := make(State, len(f.Fields))
	for _, field := range f.Fields {
		value := state[field.Key]
		if field.Kind != KindPassword && field.Kind != KindRichText {
			value = strings.TrimSpace(value)
		}
		if field.DehydrateWhenFilled && strings.TrimSpace(value) == "" {
			continue
		}
		if field.Dehydrate != nil {
			v, err := field.Dehydrate(value)
			if err != nil {
				return nil, fmt.Errorf("dehydrate %s: %w", field.Key, err)
			}
			value = v
		}
		out[field.Key] = value
	}
	return out, nil
}
