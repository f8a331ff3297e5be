package datagen

import "fmt"

// GenerationErrorKind classifies value-synthesis failures.
type GenerationErrorKind int

const (
	// KindUnknownGenerator means a fake_data key has no registered provider.
	KindUnknownGenerator GenerationErrorKind = iota
	// KindInvalidDistribution means the numeric parameters are unusable and
	// no uniform fallback bounds exist.
	KindInvalidDistribution
	// KindEmptyParent means a foreign key has no generated parent values to
	// draw from.
	KindEmptyParent
)

func (k GenerationErrorKind) String() string {
	switch k {
	case KindUnknownGenerator:
		return "unknown generator"
	case KindInvalidDistribution:
		return "invalid distribution"
	case KindEmptyParent:
		return "empty parent key set"
	default:
		return "generation error"
	}
}

// GenerationError is a fatal per-field synthesis failure.
type GenerationError struct {
	Kind   GenerationErrorKind
	Table  string
	Field  string
	Reason string
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generate %s.%s: %s: %s", e.Table, e.Field, e.Kind, e.Reason)
}

// UniquenessError reports that a unique foreign key field ran out of unused
// parent values. Whether the run aborts or the table is truncated is the
// caller's choice via ExhaustionPolicy; the condition itself is never hidden.
type UniquenessError struct {
	Table  string
	Field  string
	Parent string
}

func (e *UniquenessError) Error() string {
	return fmt.Sprintf("unique foreign key %s.%s exhausted the generated keys of %s",
		e.Table, e.Field, e.Parent)
}
