package datagen

import (
	"context"
	"fmt"

	"github.com/fatih/color"

	"github.com/fabrica-db/fabrica/internal/config"
	"github.com/fabrica-db/fabrica/internal/schema"
	"github.com/fabrica-db/fabrica/internal/store"
)

// Report summarizes a completed run: the population order and, per table, the
// rows generated plus any shortfall from a truncated unique foreign key.
type Report struct {
	Order     []string
	Rows      map[string]int
	Truncated map[string]int
}

// Engine drives a full generation run against one store: validate, create
// tables, order by dependencies, fill each table. Strictly sequential; the
// generated key set of a parent must be complete before any dependent row.
type Engine struct {
	tables   []schema.Table
	cfg      *config.Config
	store    store.Store
	reg      Registry
	rng      *RNG
	policy   ExhaustionPolicy
	keys     *KeySet
	progress bool
}

type Option func(*Engine)

// WithRegistry replaces the default fake-value provider table.
func WithRegistry(reg Registry) Option {
	return func(e *Engine) { e.reg = reg }
}

// WithPolicy overrides the uniqueness exhaustion policy from the config.
func WithPolicy(p ExhaustionPolicy) Option {
	return func(e *Engine) { e.policy = p }
}

// WithProgress enables per-table progress output.
func WithProgress() Option {
	return func(e *Engine) { e.progress = true }
}

// PolicyFromString maps the config document's on_exhausted value.
func PolicyFromString(s string) (ExhaustionPolicy, error) {
	switch s {
	case "", "abort":
		return PolicyAbort, nil
	case "truncate":
		return PolicyTruncate, nil
	default:
		return PolicyAbort, fmt.Errorf("unknown exhaustion policy %q", s)
	}
}

func New(tables []schema.Table, cfg *config.Config, st store.Store, opts ...Option) *Engine {
	e := &Engine{
		tables: tables,
		cfg:    cfg,
		store:  st,
		reg:    DefaultRegistry(),
		keys:   NewKeySet(),
	}
	if cfg.RandomSeed != nil {
		e.rng = NewRNG(*cfg.RandomSeed)
	} else {
		e.rng = NewTimeRNG()
	}
	if p, err := PolicyFromString(cfg.OnExhausted); err == nil {
		e.policy = p
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run executes the whole generation pass. Any schema, generation or store
// error is fatal; the only local recoveries are the documented numeric
// fallback and the truncate policy.
func (e *Engine) Run(ctx context.Context) (*Report, error) {
	if err := schema.Validate(e.tables); err != nil {
		return nil, err
	}

	// Compile every table up front so an unknown generator or unusable
	// distribution fails before any DDL or insertion.
	assemblers := make(map[string]*assembler, len(e.tables))
	for i := range e.tables {
		t := &e.tables[i]
		a, err := newAssembler(t, e.reg, e.rng, e.keys)
		if err != nil {
			return nil, err
		}
		assemblers[t.Name] = a
	}

	order, err := PopulationOrder(e.tables)
	if err != nil {
		return nil, err
	}

	// DDL follows declaration order; only data needs dependency order.
	for i := range e.tables {
		if err := e.store.CreateTable(ctx, schema.DDL(&e.tables[i])); err != nil {
			return nil, err
		}
	}

	report := &Report{
		Order:     order,
		Rows:      make(map[string]int),
		Truncated: make(map[string]int),
	}

	byName := make(map[string]*schema.Table, len(e.tables))
	for i := range e.tables {
		byName[e.tables[i].Name] = &e.tables[i]
	}

	for _, name := range order {
		t := byName[name]
		count := e.cfg.CountFor(name)
		if e.progress {
			color.Cyan("  Seeding %s (%d records)...", name, count)
		}

		if err := e.fillTable(ctx, t, assemblers[name], count, report); err != nil {
			return nil, err
		}
	}

	if e.progress {
		color.Green("Generation complete: %d tables", len(order))
	}
	return report, nil
}

func (e *Engine) fillTable(ctx context.Context, t *schema.Table, a *assembler, count int, report *Report) error {
	if len(a.columns()) == 0 {
		// Nothing to synthesize for this table (e.g. only an
		// auto-incrementing key).
		report.Rows[t.Name] = 0
		return nil
	}

	rows, exhausted, err := a.buildRows(count, e.policy)
	if err != nil {
		return err
	}
	if exhausted != nil {
		report.Truncated[t.Name] = count - len(rows)
		if e.progress {
			color.Yellow("  %s truncated to %d rows: %v", t.Name, len(rows), exhausted)
		}
	}

	if err := e.store.InsertMany(ctx, t.Name, a.columns(), rows); err != nil {
		return err
	}
	if err := e.store.Commit(ctx); err != nil {
		return err
	}
	report.Rows[t.Name] = len(rows)

	// Read realized keys back so store-assigned values (auto-increment)
	// are captured for dependents.
	keyCols := t.KeyColumns()
	if len(keyCols) == 0 {
		return nil
	}
	keyRows, err := e.store.Select(ctx, t.Name, keyCols)
	if err != nil {
		return err
	}
	e.keys.Record(t.Name, keyCols, keyRows)
	return nil
}
