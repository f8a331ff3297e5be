package schema

import "fmt"

// ErrorKind classifies schema validation failures so callers can branch on
// them instead of matching message text.
type ErrorKind int

const (
	KindDuplicateTable ErrorKind = iota
	KindUnknownReference
	KindUnknownField
	KindInvalidField
	KindCycle
)

func (k ErrorKind) String() string {
	switch k {
	case KindDuplicateTable:
		return "duplicate table"
	case KindUnknownReference:
		return "unknown reference"
	case KindUnknownField:
		return "unknown field"
	case KindInvalidField:
		return "invalid field"
	case KindCycle:
		return "cyclic dependency"
	default:
		return "schema error"
	}
}

// Error is a fatal schema problem. Generation never starts once one is found.
type Error struct {
	Kind   ErrorKind
	Table  string
	Field  string
	Detail string
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("schema: %s", e.Kind)
	if e.Table != "" {
		msg += fmt.Sprintf(": table %s", e.Table)
	}
	if e.Field != "" {
		msg += fmt.Sprintf(", field %s", e.Field)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}
