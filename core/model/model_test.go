package model

import (
	"testing"

	"schemadiff/core/value"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentities(t *testing.T) {
	table := NewTable("shop", "orders")

	assert.Equal(t, "shop", NewSchema("shop", "utf8mb4", "utf8mb4_bin").ID())
	assert.Equal(t, "shop.orders", table.ID())
	assert.Equal(t, "shop.orders.total", NewColumn(table, "total", "int").ID())
	assert.Equal(t, "shop.orders.idx.PRIMARY", NewIndex(table, "PRIMARY", true, "id").ID())
	assert.Equal(t, "shop.routine.tally", NewRoutine("shop", "tally", "FUNCTION", "root@%", "RETURN 1").ID())
}

func TestAddTo(t *testing.T) {
	table := NewTable("shop", "orders")
	AddTo(table, AttrColumns, NewColumn(table, "id", "int"))
	AddTo(table, AttrColumns, NewColumn(table, "total", "decimal(10,2)"))

	v, ok := table.Get(AttrColumns)
	require.True(t, ok)
	cols := v.(*value.List)
	assert.Equal(t, 2, cols.Len())
	assert.Equal(t, value.ObjectKind, cols.Elem())

	// a missing list is created with the child's kind
	idx := value.NewObject(TypeIndex, "x")
	AddTo(idx, AttrColumns, value.String("id"))
	v, _ = idx.Get(AttrColumns)
	assert.Equal(t, value.ScalarKind, v.(*value.List).Elem())
}

func TestNewColumnDefaults(t *testing.T) {
	col := NewColumn(NewTable("shop", "orders"), "note", "text")

	def, ok := col.Get(AttrDefaultValue)
	assert.True(t, ok)
	assert.Nil(t, def)
	assert.Equal(t, []string{
		AttrName, AttrColumnType, AttrIsNullable, AttrDefaultValue,
		AttrCharacterSetName, AttrCollationName, AttrComment,
	}, col.Attrs())
}
