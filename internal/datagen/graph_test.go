package datagen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fabrica-db/fabrica/internal/schema"
)

func fkField(name, refs string) schema.Field {
	return schema.Field{Name: name, Type: "int", ForeignKey: &schema.ForeignKeySpec{References: refs}}
}

func TestPopulationOrderParentFirst(t *testing.T) {
	tables := []schema.Table{
		{Name: "orders", Fields: []schema.Field{fkField("user_id", "users(user_id)")}},
		{Name: "users", Fields: []schema.Field{{Name: "user_id", Type: "int", PrimaryKey: true}}},
	}

	order, err := PopulationOrder(tables)
	require.NoError(t, err)
	assert.Equal(t, []string{"users", "orders"}, order)
}

func TestPopulationOrderStableTieBreak(t *testing.T) {
	tables := []schema.Table{
		{Name: "c"},
		{Name: "a"},
		{Name: "b"},
	}

	for i := 0; i < 20; i++ {
		order, err := PopulationOrder(tables)
		require.NoError(t, err)
		assert.Equal(t, []string{"c", "a", "b"}, order)
	}
}

func TestPopulationOrderCompositeEdges(t *testing.T) {
	tables := []schema.Table{
		{
			Name:                 "members",
			Fields:               []schema.Field{{Name: "co", Type: "int"}, {Name: "sch", Type: "int"}},
			CompositeForeignKeys: []schema.CompositeForeignKey{{Fields: []string{"co", "sch"}, References: "plans"}},
		},
		{
			Name:                 "plans",
			Fields:               []schema.Field{{Name: "co", Type: "int"}, {Name: "sch", Type: "int"}},
			CompositePrimaryKeys: []schema.CompositeKey{{Fields: []string{"co", "sch"}}},
		},
	}

	order, err := PopulationOrder(tables)
	require.NoError(t, err)
	assert.Equal(t, []string{"plans", "members"}, order)
}

func TestPopulationOrderCycleIsFatal(t *testing.T) {
	tables := []schema.Table{
		{Name: "a", Fields: []schema.Field{fkField("b_id", "b(id)")}},
		{Name: "b", Fields: []schema.Field{fkField("a_id", "a(id)"), {Name: "id", Type: "int"}}},
	}

	_, err := PopulationOrder(tables)
	var serr *schema.Error
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, schema.KindCycle, serr.Kind)
}

func TestPopulationOrderSkipsSelfReference(t *testing.T) {
	tables := []schema.Table{
		{Name: "employees", Fields: []schema.Field{
			{Name: "id", Type: "int", PrimaryKey: true},
			fkField("manager_id", "employees(id)"),
		}},
	}

	order, err := PopulationOrder(tables)
	require.NoError(t, err)
	assert.Equal(t, []string{"employees"}, order)
}
