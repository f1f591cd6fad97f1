package value

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tableDoc = `
_type: db.mysql.Table
_id: shop.orders
name: orders
comment: order header
engine: InnoDB
autoIncrement: 42
ratio: 0.5
temporary: false
deleted: null
columns:
  - _type: db.mysql.Column
    _id: shop.orders.id
    name: id
  - _type: db.mysql.Column
    _id: shop.orders.total
    name: total
options:
  ROW_FORMAT: DYNAMIC
`

func TestDecode_Object(t *testing.T) {
	v, err := Decode(strings.NewReader(tableDoc))
	require.NoError(t, err)

	obj, ok := v.(*Object)
	require.True(t, ok, "expected object, got %T", v)
	assert.Equal(t, "db.mysql.Table", obj.Type())
	assert.Equal(t, "shop.orders", obj.ID())
	assert.Equal(t, []string{"name", "comment", "engine", "autoIncrement", "ratio", "temporary", "deleted", "columns", "options"}, obj.Attrs())

	auto, _ := obj.Get("autoIncrement")
	assert.Equal(t, IntType, auto.(*Scalar).Type())
	assert.Equal(t, int64(42), auto.(*Scalar).Int())

	ratio, _ := obj.Get("ratio")
	assert.Equal(t, 0.5, ratio.(*Scalar).Double())

	temp, _ := obj.Get("temporary")
	assert.Equal(t, int64(0), temp.(*Scalar).Int())

	deleted, declared := obj.Get("deleted")
	assert.True(t, declared)
	assert.Nil(t, deleted)

	cols, _ := obj.Get("columns")
	list := cols.(*List)
	assert.Equal(t, ObjectKind, list.Elem())
	assert.Equal(t, 2, list.Len())
	assert.Equal(t, "shop.orders.total", list.At(1).(*Object).ID())

	opts, _ := obj.Get("options")
	assert.Equal(t, []string{"ROW_FORMAT"}, opts.(*Dict).Keys())
}

func TestDecode_JSON(t *testing.T) {
	v, err := Decode(strings.NewReader(`{"b": [1, 2, 3], "a": "x", "n": "12"}`))
	require.NoError(t, err)

	d := v.(*Dict)
	assert.Equal(t, []string{"b", "a", "n"}, d.Keys())
	n, _ := d.Get("n")
	assert.Equal(t, StringType, n.(*Scalar).Type(), "quoted numbers stay strings")
	b, _ := d.Get("b")
	assert.Equal(t, ScalarKind, b.(*List).Elem())
}

func TestDecode_Errors(t *testing.T) {
	_, err := Decode(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrEmptyDocument)

	_, err = Decode(strings.NewReader("items: [1, null]"))
	assert.Error(t, err)

	_, err = Decode(strings.NewReader("a: [unclosed"))
	assert.Error(t, err)
}

func TestEncode_RoundTrip(t *testing.T) {
	v, err := Decode(strings.NewReader(tableDoc))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, v))

	back, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, ToInterface(v), ToInterface(back))
	assert.Equal(t, v.(*Object).Attrs(), back.(*Object).Attrs())
}

func TestEncode_FloatKeepsType(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, NewList(ScalarKind, Double(2), Int(2))))

	back, err := Decode(&buf)
	require.NoError(t, err)
	l := back.(*List)
	assert.Equal(t, DoubleType, l.At(0).(*Scalar).Type())
	assert.Equal(t, IntType, l.At(1).(*Scalar).Type())
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "orders", Label(NewObject("db.mysql.Table", "t1").Set("name", String("orders"))))
	assert.Equal(t, "t1", Label(NewObject("db.mysql.Table", "t1")))
	assert.Equal(t, `"x"`, Label(String("x")))
	assert.Equal(t, "7", Label(Int(7)))
	assert.Equal(t, "<absent>", Label(nil))
}
