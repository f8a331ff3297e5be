package datagen

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/fabrica-db/fabrica/internal/schema"
)

// dateEpoch is the lower bound for sampled dates; the upper bound is the
// current day. nowFunc is a variable so tests can pin it.
var (
	dateEpoch = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)
	nowFunc   = time.Now
)

// strategy is the resolved generation plan for one field, decided once before
// any row is synthesized.
type strategy int

const (
	strategyNone strategy = iota
	strategyDateEncoded
	strategyFake
	strategyNumeric
	strategyForeignKey
)

// compiledField pairs a field with its resolved strategy and any parameters
// the strategy needs, so per-row generation never re-inspects the schema.
type compiledField struct {
	field    schema.Field
	strat    strategy
	provider Provider
	ref      schema.Ref

	mean, stddev, min, max float64
	uniformOnly            bool
}

// compileFields resolves every field of a table to a strategy. Fields that
// belong to the table's composite foreign key are excluded here; the assembler
// fills them from a parent key tuple. Unknown fake_data keys and unusable
// distribution parameters fail at compile time, before any insertion.
func compileFields(t *schema.Table, reg Registry) ([]compiledField, error) {
	cfkMember := make(map[string]bool)
	if cfk := t.CompositeForeignKey(); cfk != nil {
		for _, name := range cfk.Fields {
			cfkMember[name] = true
		}
	}

	var compiled []compiledField
	for _, f := range t.Fields {
		if cfkMember[f.Name] {
			continue
		}

		cf := compiledField{field: f}

		switch {
		// A declared foreign key is resolved by the assembler against parent
		// keys; it never goes through value synthesis.
		case f.ForeignKey != nil:
			ref, err := schema.ParseRef(f.ForeignKey.References)
			if err != nil {
				return nil, &GenerationError{
					Kind: KindInvalidDistribution, Table: t.Name, Field: f.Name,
					Reason: err.Error(),
				}
			}
			cf.strat = strategyForeignKey
			cf.ref = ref

		case f.IsInteger() && strings.Contains(strings.ToLower(f.Name), "date"):
			cf.strat = strategyDateEncoded

		case f.FakeData != "":
			p, ok := reg.Lookup(f.FakeData)
			if !ok {
				return nil, &GenerationError{
					Kind: KindUnknownGenerator, Table: t.Name, Field: f.Name,
					Reason: fmt.Sprintf("no provider registered for %q", f.FakeData),
				}
			}
			cf.strat = strategyFake
			cf.provider = p

		case f.IsNumeric() && f.HasDistribution():
			if f.Mean != nil && f.StdDev != nil && f.Min != nil && f.Max != nil {
				cf.mean, cf.stddev, cf.min, cf.max = *f.Mean, *f.StdDev, *f.Min, *f.Max
			} else if f.Min != nil && f.Max != nil {
				// Incomplete parameter set with usable bounds: fall back to
				// uniform sampling over [min, max].
				cf.min, cf.max = *f.Min, *f.Max
				cf.uniformOnly = true
			} else {
				return nil, &GenerationError{
					Kind: KindInvalidDistribution, Table: t.Name, Field: f.Name,
					Reason: "distribution parameters incomplete and no [min, max] bounds to fall back on",
				}
			}
			cf.strat = strategyNumeric

		default:
			cf.strat = strategyNone
		}

		compiled = append(compiled, cf)
	}

	return compiled, nil
}

// generate synthesizes one value for a non-foreign-key strategy.
func (cf *compiledField) generate(g *RNG) interface{} {
	switch cf.strat {
	case strategyDateEncoded:
		return EncodeDate(g.DateBetween(dateEpoch, nowFunc()))
	case strategyFake:
		return cf.provider(g)
	case strategyNumeric:
		return cf.sampleNumeric(g)
	default:
		return nil
	}
}

func (cf *compiledField) sampleNumeric(g *RNG) interface{} {
	if cf.uniformOnly {
		v := g.Uniform(cf.min, cf.max)
		if cf.field.IsInteger() {
			return int64(math.Round(v))
		}
		return v
	}

	// A zero spread is degenerate: the mean is the value, exactly as
	// configured.
	if cf.stddev == 0 {
		return cf.mean
	}

	v := truncNormal(g, cf.mean, cf.stddev, cf.min, cf.max)
	if cf.field.IsInteger() {
		return int64(math.Round(v))
	}
	return v
}

// truncNormal samples a normal distribution restricted to [min, max] by
// rejection, then clamps for floating-point safety. If the window is so far
// out in the tail that rejection keeps missing, a uniform draw over the
// window is the value.
func truncNormal(g *RNG, mean, stddev, min, max float64) float64 {
	const maxAttempts = 1000

	v := g.Uniform(min, max)
	for i := 0; i < maxAttempts; i++ {
		s := g.NormFloat64()*stddev + mean
		if s >= min && s <= max {
			v = s
			break
		}
	}

	return math.Min(math.Max(v, min), max)
}

// EncodeDate packs a date into the stable 1YYMMDD integer form, e.g.
// 2025-03-27 -> 1250327 and 2000-01-01 -> 1000101.
func EncodeDate(t time.Time) int64 {
	yy := t.Year() % 100
	return int64(1000000 + yy*10000 + int(t.Month())*100 + t.Day())
}
