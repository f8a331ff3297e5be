package datagen

import (
	"fmt"

	"github.com/fabrica-db/fabrica/internal/schema"
)

// PopulationOrder computes the order in which tables must be filled: every
// table referenced by a foreign key, single-column or composite, comes before
// its dependents, and tables with no foreign keys come first. Within a round
// of ready tables, declaration order in the schema breaks ties so the order
// is stable across runs. A cycle is fatal.
func PopulationOrder(tables []schema.Table) ([]string, error) {
	known := make(map[string]bool, len(tables))
	for i := range tables {
		known[tables[i].Name] = true
	}

	deps := make(map[string][]string, len(tables))
	for i := range tables {
		t := &tables[i]
		for _, f := range t.Fields {
			if f.ForeignKey == nil {
				continue
			}
			ref, err := schema.ParseRef(f.ForeignKey.References)
			if err != nil {
				return nil, fmt.Errorf("table %s: %w", t.Name, err)
			}
			// Self-references don't order anything, and dangling targets
			// are validation's problem.
			if ref.Table != t.Name && known[ref.Table] {
				deps[t.Name] = append(deps[t.Name], ref.Table)
			}
		}
		for _, cfk := range t.CompositeForeignKeys {
			if cfk.References != t.Name && known[cfk.References] {
				deps[t.Name] = append(deps[t.Name], cfk.References)
			}
		}
	}

	emitted := make(map[string]bool, len(tables))
	order := make([]string, 0, len(tables))

	for len(order) < len(tables) {
		// Readiness is judged against the previous round, so each round is
		// one dependency layer and independent tables land in the first.
		var round []string
		for i := range tables {
			name := tables[i].Name
			if emitted[name] {
				continue
			}
			ready := true
			for _, dep := range deps[name] {
				if !emitted[dep] {
					ready = false
					break
				}
			}
			if ready {
				round = append(round, name)
			}
		}
		for _, name := range round {
			emitted[name] = true
			order = append(order, name)
		}
		if len(round) == 0 {
			for i := range tables {
				if !emitted[tables[i].Name] {
					return nil, &schema.Error{Kind: schema.KindCycle, Table: tables[i].Name,
						Detail: "foreign key dependencies form a cycle"}
				}
			}
		}
	}

	return order, nil
}
