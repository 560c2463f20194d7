package admin

import (
	"fmt"
	"time"
	"unicode/utf8"
)

// RenderKind is how a column presents its value.
type RenderKind string

const (
	RenderText     RenderKind = "text"
	RenderBoolean  RenderKind = "boolean"
	RenderDateTime RenderKind = "datetime"
)

// DescriptionPosition places a column description relative to its value.
type DescriptionPosition string

const (
	DescriptionAbove DescriptionPosition = "above"
	DescriptionBelow DescriptionPosition = "below"
)

// Column describes one table column over records of type T.
type Column[T any] struct {
	Key        string
	Label      string
	Render     RenderKind
	Sortable   bool
	SortExpr   string
	Searchable bool
	SearchExpr string
	Toggleable bool
	// HiddenByDefault only applies to toggleable columns.
	HiddenByDefault     bool
	Limit               int
	Wrap                bool
	State               func(T) any
	URL                 func(T) string
	OpenURLInNewTab     bool
	Description         func(T) string
	DescriptionPosition DescriptionPosition
	Tooltip             func(T) string
}

// ActionKind is what a row, header or bulk action does.
type ActionKind string

const (
	ActionLink        ActionKind = "link"
	ActionCreate      ActionKind = "create"
	ActionEdit        ActionKind = "edit"
	ActionDelete      ActionKind = "delete"
	ActionForceDelete ActionKind = "force_delete"
	ActionRestore     ActionKind = "restore"
)

// Action is a table action. URL resolves link targets per record.
type Action[T any] struct {
	Name            string
	Label           string
	Kind            ActionKind
	URL             func(T) string
	OpenURLInNewTab bool
	// Visible hides the action for records it does not apply to.
	Visible func(T) bool
}

// FilterKind identifies a table filter.
type FilterKind string

const FilterTrashed FilterKind = "trashed"

// Filter is a declared table filter.
type Filter struct {
	Name    string     `json:"name" yaml:"name"`
	Kind    FilterKind `json:"kind" yaml:"kind"`
	Options []string   `json:"options" yaml:"options"`
	Default string     `json:"default" yaml:"default"`
}

// TrashedFilter lists soft-deleted records on demand.
func TrashedFilter() Filter {
	return Filter{
		Name:    "trashed",
		Kind:    FilterTrashed,
		Options: []string{WithoutTrashed.String(), WithTrashed.String(), OnlyTrashed.String()},
		Default: WithoutTrashed.String(),
	}
}

// Table is the list view of a resource.
type Table[T any] struct {
	Columns              []Column[T]
	Filters              []Filter
	Actions              []Action[T]
	BulkActions          []ActionKind
	HeaderActions        []ActionKind
	RecordTitleAttribute string
	RecordKey            func(T) uint
	Trashed              func(T) bool
}

// Cell is one rendered column value.
type Cell struct {
	Value               any                 `json:"value"`
	URL                 string              `json:"url,omitempty"`
	OpenInNewTab        bool                `json:"open_in_new_tab,omitempty"`
	Description         string              `json:"description,omitempty"`
	DescriptionPosition DescriptionPosition `json:"description_position,omitempty"`
	Tooltip             string              `json:"tooltip,omitempty"`
	Wrap                bool                `json:"wrap,omitempty"`
}

// RenderedAction is a row action with its URL resolved.
type RenderedAction struct {
	Name         string     `json:"name"`
	Label        string     `json:"label"`
	Kind         ActionKind `json:"kind"`
	URL          string     `json:"url,omitempty"`
	OpenInNewTab bool       `json:"open_in_new_tab,omitempty"`
}

// Row is one rendered record.
type Row struct {
	ID      uint             `json:"id"`
	Trashed bool             `json:"trashed"`
	Cells   map[string]Cell  `json:"cells"`
	Actions []RenderedAction `json:"actions"`
}

// Rendered is a rendered table page.
type Rendered struct {
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// VisibleColumns returns the keys shown for a toggle selection. A nil
// selection means the defaults; otherwise toggleable columns are shown only
// when selected and fixed columns are always shown.
func (t Table[T]) VisibleColumns(toggled map[string]bool) []Column[T] {
	out := make([]Column[T], 0, len(t.Columns))
	for _, c := range t.Columns {
		switch {
		case !c.Toggleable:
			out = append(out, c)
		case toggled == nil:
			if !c.HiddenByDefault {
				out = append(out, c)
			}
		case toggled[c.Key]:
			out = append(out, c)
		}
	}
	return out
}

// Render resolves cells and row actions for records.
func (t Table[T]) Render(records []T, toggled map[string]bool) Rendered {
	cols := t.VisibleColumns(toggled)
	keys := make([]string, len(cols))
	for i, c := range cols {
		keys[i] = c.Key
	}
	rows := make([]Row, 0, len(records))
	for _, rec := range records {
		row := Row{Cells: make(map[string]Cell, len(cols)), Actions: []RenderedAction{}}
		if t.RecordKey != nil {
			row.ID = t.RecordKey(rec)
		}
		if t.Trashed != nil {
			row.Trashed = t.Trashed(rec)
		}
		for _, c := range cols {
			row.Cells[c.Key] = c.render(rec)
		}
		for _, a := range t.Actions {
			if a.Visible != nil && !a.Visible(rec) {
				continue
			}
			ra := RenderedAction{Name: a.Name, Label: a.Label, Kind: a.Kind}
			if a.URL != nil {
				ra.URL = a.URL(rec)
				ra.OpenInNewTab = a.OpenURLInNewTab && ra.URL != ""
			}
			row.Actions = append(row.Actions, ra)
		}
		rows = append(rows, row)
	}
	return Rendered{Columns: keys, Rows: rows}
}

func (c Column[T]) render(rec T) Cell {
	var cell Cell
	var state any
	if c.State != nil {
		state = c.State(rec)
	}
	switch c.Render {
	case RenderBoolean:
		cell.Value = truthy(state)
	case RenderDateTime:
		cell.Value = formatTime(state)
	default:
		if s, ok := state.(string); ok && c.Limit > 0 {
			state = truncate(s, c.Limit)
		}
		cell.Value = state
	}
	if c.URL != nil {
		cell.URL = c.URL(rec)
		cell.OpenInNewTab = c.OpenURLInNewTab && cell.URL != ""
	}
	if c.Description != nil {
		if d := c.Description(rec); d != "" {
			cell.Description = d
			cell.DescriptionPosition = c.DescriptionPosition
			if cell.DescriptionPosition == "" {
				cell.DescriptionPosition = DescriptionBelow
			}
		}
	}
	if c.Tooltip != nil {
		cell.Tooltip = c.Tooltip(rec)
	}
	cell.Wrap = c.Wrap
	return cell
}

func truthy(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case *time.Time:
		return val != nil
	case string:
		return val != ""
	}
	return true
}

func formatTime(v any) any {
	switch val := v.(type) {
	case time.Time:
		if val.IsZero() {
			return nil
		}
		return val.Format(time.RFC3339)
	case *time.Time:
		if val == nil {
			return nil
		}
		return val.Format(time.RFC3339)
	}
	return v
}

func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	r := []rune(s)
	return string(r[:limit]) + "..."
}

// SortExpr returns the ORDER BY expression for a sortable column key.
func (t Table[T]) SortExpr(key string) (string, bool) {
	for _, c := range t.Columns {
		if c.Key != key {
			continue
		}
		if !c.Sortable {
			return "", false
		}
		if c.SortExpr != "" {
			return c.SortExpr, true
		}
		return c.Key, true
	}
	return "", false
}

// SearchExprs returns the expressions searched by the global search box.
func (t Table[T]) SearchExprs() []string {
	var out []string
	for _, c := range t.Columns {
		if !c.Searchable {
			continue
		}
		if c.SearchExpr != "" {
			out = append(out, c.SearchExpr)
		} else {
			out = append(out, c.Key)
		}
	}
	return out
}

// HasBulkAction reports whether kind is a declared bulk action.
func (t Table[T]) HasBulkAction(kind ActionKind) bool {
	for _, a := range t.BulkActions {
		if a == kind {
			return true
		}
	}
	return false
}

// HasFilter reports whether a filter of kind is declared.
func (t Table[T]) HasFilter(kind FilterKind) bool {
	for _, f := range t.Filters {
		if f.Kind == kind {
			return true
		}
	}
	return false
}

// ColumnKeys returns every declared column key in order.
func (t Table[T]) ColumnKeys() []string {
	keys := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		keys[i] = c.Key
	}
	return keys
}

// ActionNames returns the row action names in order.
func (t Table[T]) ActionNames() []string {
	names := make([]string, len(t.Actions))
	for i, a := range t.Actions {
		names[i] = a.Name
	}
	return names
}

// PanelPath is the URL prefix of the admin panel pages.
const PanelPath = "/admin"

// EditURL is the edit page of a record.
func EditURL(resource string, id uint) string {
	return fmt.Sprintf("%s/%s/%d/edit", PanelPath, resource, id)
}
