package admin

import (
	"fmt"
	"strings"
)

// TrashedMode selects which soft-delete states a listing returns.
type TrashedMode int

const (
	WithoutTrashed TrashedMode = iota
	WithTrashed
	OnlyTrashed
)

func (m TrashedMode) String() string {
	switch m {
	case WithTrashed:
		return "with"
	case OnlyTrashed:
		return "only"
	default:
		return "without"
	}
}

// ParseTrashedMode maps a trashed filter value to a mode. The ternary
// values true/false are accepted as with/only.
func ParseTrashedMode(v string) (TrashedMode, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "without":
		return WithoutTrashed, nil
	case "with", "true", "1":
		return WithTrashed, nil
	case "only", "false", "0":
		return OnlyTrashed, nil
	}
	return WithoutTrashed, fmt.Errorf("unknown trashed filter value %q", v)
}
