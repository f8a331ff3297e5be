package datagen

import (
	"github.com/fabrica-db/fabrica/internal/schema"
)

// ExhaustionPolicy decides what happens when a unique foreign key field runs
// out of unused parent values before the requested row count is reached.
type ExhaustionPolicy int

const (
	// PolicyAbort fails the run with the UniquenessError.
	PolicyAbort ExhaustionPolicy = iota
	// PolicyTruncate stops the table at the rows built so far; the shortfall
	// is reported to the caller, never hidden.
	PolicyTruncate
)

// assembler synthesizes the rows of one table. Field strategies are compiled
// once at construction; per-row work is sampling only.
type assembler struct {
	table  *schema.Table
	fields []compiledField
	cfk    *schema.CompositeForeignKey
	rng    *RNG
	keys   *KeySet

	// unused holds, per unique foreign key field, the parent values not yet
	// assigned, pre-shuffled so popping the tail is a uniform draw without
	// replacement.
	unused map[string][]interface{}
}

func newAssembler(t *schema.Table, reg Registry, rng *RNG, keys *KeySet) (*assembler, error) {
	fields, err := compileFields(t, reg)
	if err != nil {
		return nil, err
	}
	return &assembler{
		table:  t,
		fields: fields,
		cfk:    t.CompositeForeignKey(),
		rng:    rng,
		keys:   keys,
		unused: make(map[string][]interface{}),
	}, nil
}

// columns returns the INSERT column list: every field with a resolved
// strategy, with the composite foreign key fields appended last.
func (a *assembler) columns() []string {
	var cols []string
	for _, cf := range a.fields {
		if cf.strat != strategyNone {
			cols = append(cols, cf.field.Name)
		}
	}
	if a.cfk != nil {
		cols = append(cols, a.cfk.Fields...)
	}
	return cols
}

// buildRows synthesizes up to count rows. When a unique foreign key is
// exhausted the returned rows hold what was built before the shortfall and
// exhausted carries the condition; under PolicyAbort it is returned as the
// error instead.
func (a *assembler) buildRows(count int, policy ExhaustionPolicy) (rows [][]interface{}, exhausted *UniquenessError, err error) {
	for i := 0; i < count; i++ {
		row, exh, err := a.buildRow()
		if err != nil {
			return nil, nil, err
		}
		if exh != nil {
			if policy == PolicyAbort {
				return nil, nil, exh
			}
			return rows, exh, nil
		}
		rows = append(rows, row)
	}
	return rows, nil, nil
}

func (a *assembler) buildRow() ([]interface{}, *UniquenessError, error) {
	var row []interface{}

	for i := range a.fields {
		cf := &a.fields[i]
		switch cf.strat {
		case strategyNone:
			// Excluded from the column list; nothing to synthesize.
		case strategyForeignKey:
			v, exh, err := a.drawForeignKey(cf)
			if err != nil {
				return nil, nil, err
			}
			if exh != nil {
				return nil, exh, nil
			}
			row = append(row, v)
		default:
			row = append(row, cf.generate(a.rng))
		}
	}

	if a.cfk != nil {
		tuple, err := a.drawCompositeKey()
		if err != nil {
			return nil, nil, err
		}
		row = append(row, tuple...)
	}

	return row, nil, nil
}

// drawForeignKey picks a generated parent key value. Unique fields draw
// without replacement; exhaustion is reported, not papered over with a short
// row.
func (a *assembler) drawForeignKey(cf *compiledField) (interface{}, *UniquenessError, error) {
	vals, ok := a.keys.Column(cf.ref.Table, cf.ref.Column)
	if !ok || len(vals) == 0 {
		return nil, nil, &GenerationError{
			Kind: KindEmptyParent, Table: a.table.Name, Field: cf.field.Name,
			Reason: "no generated keys recorded for " + cf.ref.Table + "(" + cf.ref.Column + ")",
		}
	}

	if !cf.field.Unique {
		return vals[a.rng.Intn(len(vals))], nil, nil
	}

	pool, seeded := a.unused[cf.field.Name]
	if !seeded {
		pool = make([]interface{}, len(vals))
		for i, p := range a.rng.Perm(len(vals)) {
			pool[i] = vals[p]
		}
	}
	if len(pool) == 0 {
		return nil, &UniquenessError{
			Table: a.table.Name, Field: cf.field.Name, Parent: cf.ref.Table,
		}, nil
	}

	v := pool[len(pool)-1]
	a.unused[cf.field.Name] = pool[:len(pool)-1]
	return v, nil, nil
}

// drawCompositeKey picks one parent key tuple atomically and maps its
// components positionally onto the declared composite foreign key fields.
func (a *assembler) drawCompositeKey() ([]interface{}, error) {
	parentRows, ok := a.keys.Rows(a.cfk.References)
	if !ok || len(parentRows) == 0 {
		return nil, &GenerationError{
			Kind: KindEmptyParent, Table: a.table.Name,
			Reason: "no generated composite keys recorded for " + a.cfk.References,
		}
	}

	src := parentRows[a.rng.Intn(len(parentRows))]
	tuple := make([]interface{}, len(a.cfk.Fields))
	copy(tuple, src)
	return tuple, nil
}
