package datagen

// KeySet is the run-scoped record of realized key values per table, appended
// to as each table is populated and read by dependent tables. Key columns are
// kept row-aligned so a composite key tuple is always drawn as one unit.
type KeySet struct {
	tables map[string]*tableKeys
}

type tableKeys struct {
	columns []string
	index   map[string]int
	rows    [][]interface{}
}

func NewKeySet() *KeySet {
	return &KeySet{tables: make(map[string]*tableKeys)}
}

// Record appends the realized key rows for a table. Columns are the key
// column names in declared order; every row holds one value per column.
func (ks *KeySet) Record(table string, columns []string, rows [][]interface{}) {
	tk, ok := ks.tables[table]
	if !ok {
		tk = &tableKeys{columns: columns, index: make(map[string]int, len(columns))}
		for i, c := range columns {
			tk.index[c] = i
		}
		ks.tables[table] = tk
	}
	tk.rows = append(tk.rows, rows...)
}

// Column returns the ordered values recorded for one key column of a table.
func (ks *KeySet) Column(table, column string) ([]interface{}, bool) {
	tk, ok := ks.tables[table]
	if !ok {
		return nil, false
	}
	i, ok := tk.index[column]
	if !ok {
		return nil, false
	}
	vals := make([]interface{}, len(tk.rows))
	for r, row := range tk.rows {
		vals[r] = row[i]
	}
	return vals, true
}

// Rows returns the recorded key tuples of a table, one per populated row.
func (ks *KeySet) Rows(table string) ([][]interface{}, bool) {
	tk, ok := ks.tables[table]
	if !ok {
		return nil, false
	}
	return tk.rows, true
}
