package datagen

import (
	"context"
	"fmt"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fabrica-db/fabrica/internal/config"
	"github.com/fabrica-db/fabrica/internal/schema"
)

// memStore is a minimal Store for engine tests: it records operations in
// order and keeps inserted rows addressable by column.
type memStore struct {
	ops  []string
	data map[string]*memTable
}

type memTable struct {
	columns []string
	index   map[string]int
	rows    [][]interface{}
}

var createRe = regexp.MustCompile(`CREATE TABLE (\w+)`)

func newMemStore() *memStore {
	return &memStore{data: make(map[string]*memTable)}
}

func (m *memStore) CreateTable(ctx context.Context, ddl string) error {
	name := createRe.FindStringSubmatch(ddl)[1]
	m.ops = append(m.ops, "create:"+name)
	return nil
}

func (m *memStore) InsertMany(ctx context.Context, table string, columns []string, rows [][]interface{}) error {
	mt, ok := m.data[table]
	if !ok {
		mt = &memTable{columns: columns, index: make(map[string]int, len(columns))}
		for i, c := range columns {
			mt.index[c] = i
		}
		m.data[table] = mt
	}
	mt.rows = append(mt.rows, rows...)
	m.ops = append(m.ops, "insert:"+table)
	return nil
}

func (m *memStore) Select(ctx context.Context, table string, columns []string) ([][]interface{}, error) {
	mt, ok := m.data[table]
	if !ok {
		return nil, fmt.Errorf("no such table: %s", table)
	}
	out := make([][]interface{}, len(mt.rows))
	for r, row := range mt.rows {
		projected := make([]interface{}, len(columns))
		for i, c := range columns {
			if idx, ok := mt.index[c]; ok {
				projected[i] = row[idx]
			}
		}
		out[r] = projected
	}
	return out, nil
}

func (m *memStore) Commit(ctx context.Context) error {
	m.ops = append(m.ops, "commit")
	return nil
}

func (m *memStore) Close() error { return nil }

func seededConfig(seed int64, counts map[string]int) *config.Config {
	cfg := config.Default()
	cfg.RandomSeed = &seed
	for k, v := range counts {
		cfg.NumRecords[k] = v
	}
	return cfg
}

func usersOrdersSchema() []schema.Table {
	return []schema.Table{
		{
			// Declared after-its-dependent on purpose: orders first.
			Name: "orders",
			Fields: []schema.Field{
				{Name: "order_id", Type: "int", PrimaryKey: true,
					Mean: f64(5000), StdDev: f64(2000), Min: f64(1), Max: f64(9999)},
				{Name: "user_id", Type: "int", NotNull: true,
					ForeignKey: &schema.ForeignKeySpec{References: "users(user_id)"}},
				{Name: "OrderDate", Type: "int"},
			},
		},
		{
			Name: "users",
			Fields: []schema.Field{
				{Name: "user_id", Type: "int", PrimaryKey: true,
					Mean: f64(500), StdDev: f64(300), Min: f64(1), Max: f64(100000)},
				{Name: "name", Type: "text", FakeData: "name"},
			},
		},
	}
}

func TestRunPopulatesParentBeforeChild(t *testing.T) {
	st := newMemStore()
	eng := New(usersOrdersSchema(), seededConfig(1, nil), st)

	report, err := eng.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"users", "orders"}, report.Order)
	assert.Equal(t, 10, report.Rows["users"])
	assert.Equal(t, 10, report.Rows["orders"])

	var inserts []string
	for _, op := range st.ops {
		if op == "insert:users" || op == "insert:orders" {
			inserts = append(inserts, op)
		}
	}
	assert.Equal(t, []string{"insert:users", "insert:orders"}, inserts)
}

func TestForeignKeyContainment(t *testing.T) {
	st := newMemStore()
	eng := New(usersOrdersSchema(), seededConfig(7, map[string]int{"users": 20, "orders": 50}), st)

	_, err := eng.Run(context.Background())
	require.NoError(t, err)

	parentKeys := make(map[interface{}]bool)
	users := st.data["users"]
	for _, row := range users.rows {
		parentKeys[row[users.index["user_id"]]] = true
	}

	orders := st.data["orders"]
	require.Len(t, orders.rows, 50)
	for _, row := range orders.rows {
		assert.True(t, parentKeys[row[orders.index["user_id"]]],
			"order references a user_id that was never generated")
	}
}

func compositeSchema() []schema.Table {
	return []schema.Table{
		{
			Name: "plans",
			Fields: []schema.Field{
				{Name: "CoCode", Type: "int", Mean: f64(50), StdDev: f64(20), Min: f64(1), Max: f64(99)},
				{Name: "SchCode", Type: "int", Mean: f64(500), StdDev: f64(100), Min: f64(1), Max: f64(999)},
				{Name: "PlanNo", Type: "int", Mean: f64(5), StdDev: f64(2), Min: f64(1), Max: f64(9)},
			},
			CompositePrimaryKeys: []schema.CompositeKey{{Fields: []string{"CoCode", "SchCode", "PlanNo"}}},
		},
		{
			Name: "balances",
			Fields: []schema.Field{
				{Name: "CoCode", Type: "int"},
				{Name: "SchCode", Type: "int"},
				{Name: "PlanNo", Type: "int"},
				{Name: "Amount", Type: "float", Mean: f64(1000), StdDev: f64(250), Min: f64(0), Max: f64(5000)},
			},
			CompositeForeignKeys: []schema.CompositeForeignKey{
				{Fields: []string{"CoCode", "SchCode", "PlanNo"}, References: "plans"},
			},
		},
	}
}

func TestCompositeForeignKeyAtomicity(t *testing.T) {
	st := newMemStore()
	eng := New(compositeSchema(), seededConfig(13, map[string]int{"plans": 8, "balances": 40}), st)

	_, err := eng.Run(context.Background())
	require.NoError(t, err)

	plans := st.data["plans"]
	parentTuples := make(map[[3]interface{}]bool)
	for _, row := range plans.rows {
		parentTuples[[3]interface{}{
			row[plans.index["CoCode"]],
			row[plans.index["SchCode"]],
			row[plans.index["PlanNo"]],
		}] = true
	}

	balances := st.data["balances"]
	require.Len(t, balances.rows, 40)
	for _, row := range balances.rows {
		tuple := [3]interface{}{
			row[balances.index["CoCode"]],
			row[balances.index["SchCode"]],
			row[balances.index["PlanNo"]],
		}
		assert.True(t, parentTuples[tuple],
			"composite key %v was not generated as one parent tuple", tuple)
	}
}

func uniqueFKSchema() []schema.Table {
	return []schema.Table{
		{
			Name: "users",
			Fields: []schema.Field{
				{Name: "user_id", Type: "int", PrimaryKey: true,
					Mean: f64(50000), StdDev: f64(20000), Min: f64(1), Max: f64(99999)},
			},
		},
		{
			Name: "badges",
			Fields: []schema.Field{
				{Name: "user_id", Type: "int", Unique: true,
					ForeignKey: &schema.ForeignKeySpec{References: "users(user_id)"}},
			},
		},
	}
}

func TestUniqueForeignKeyNeverRepeats(t *testing.T) {
	st := newMemStore()
	eng := New(uniqueFKSchema(), seededConfig(5, map[string]int{"users": 30, "badges": 30}), st)

	_, err := eng.Run(context.Background())
	require.NoError(t, err)

	seen := make(map[interface{}]bool)
	badges := st.data["badges"]
	require.Len(t, badges.rows, 30)
	for _, row := range badges.rows {
		v := row[badges.index["user_id"]]
		assert.False(t, seen[v], "unique foreign key value %v assigned twice", v)
		seen[v] = true
	}
}

func TestUniquenessExhaustionAborts(t *testing.T) {
	st := newMemStore()
	eng := New(uniqueFKSchema(), seededConfig(5, map[string]int{"users": 3, "badges": 5}), st)

	_, err := eng.Run(context.Background())
	var uerr *UniquenessError
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, "badges", uerr.Table)
	assert.Equal(t, "user_id", uerr.Field)
	assert.Equal(t, "users", uerr.Parent)
}

func TestUniquenessExhaustionTruncates(t *testing.T) {
	st := newMemStore()
	eng := New(uniqueFKSchema(), seededConfig(5, map[string]int{"users": 3, "badges": 5}), st,
		WithPolicy(PolicyTruncate))

	report, err := eng.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, report.Rows["badges"])
	assert.Equal(t, 2, report.Truncated["badges"])
	assert.Len(t, st.data["badges"].rows, 3)
}

func TestDeterminism(t *testing.T) {
	run := func() map[string]*memTable {
		st := newMemStore()
		tables := append(usersOrdersSchema(), compositeSchema()...)
		eng := New(tables, seededConfig(1234, map[string]int{"plans": 6}), st)
		_, err := eng.Run(context.Background())
		require.NoError(t, err)
		return st.data
	}

	first := run()
	second := run()
	require.Equal(t, first, second)
}

func TestCycleFailsBeforeAnyInsertion(t *testing.T) {
	tables := []schema.Table{
		{Name: "a", Fields: []schema.Field{
			{Name: "id", Type: "int", PrimaryKey: true},
			{Name: "b_id", Type: "int", ForeignKey: &schema.ForeignKeySpec{References: "b(id)"}},
		}},
		{Name: "b", Fields: []schema.Field{
			{Name: "id", Type: "int", PrimaryKey: true},
			{Name: "a_id", Type: "int", ForeignKey: &schema.ForeignKeySpec{References: "a(id)"}},
		}},
	}

	st := newMemStore()
	eng := New(tables, seededConfig(1, nil), st)

	_, err := eng.Run(context.Background())
	var serr *schema.Error
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, schema.KindCycle, serr.Kind)
	assert.Empty(t, st.ops, "cycle detection must precede all store operations")
}

func TestUnknownGeneratorFailsBeforeDDL(t *testing.T) {
	tables := []schema.Table{
		{Name: "users", Fields: []schema.Field{
			{Name: "email", Type: "text", FakeData: "no_such_provider"},
		}},
	}

	st := newMemStore()
	eng := New(tables, seededConfig(1, nil), st)

	_, err := eng.Run(context.Background())
	var gerr *GenerationError
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, KindUnknownGenerator, gerr.Kind)
	assert.Empty(t, st.ops)
}

func TestEmptyParentIsFatal(t *testing.T) {
	tables := []schema.Table{
		{
			// users has a key column but no generated rows: count 0.
			Name: "users",
			Fields: []schema.Field{
				{Name: "user_id", Type: "int", PrimaryKey: true,
					Mean: f64(5), StdDev: f64(1), Min: f64(1), Max: f64(9)},
			},
		},
		{
			Name: "orders",
			Fields: []schema.Field{
				{Name: "user_id", Type: "int",
					ForeignKey: &schema.ForeignKeySpec{References: "users(user_id)"}},
			},
		},
	}

	st := newMemStore()
	eng := New(tables, seededConfig(1, map[string]int{"users": 0}), st)

	_, err := eng.Run(context.Background())
	var gerr *GenerationError
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, KindEmptyParent, gerr.Kind)
}
