// Package model names the MySQL catalog object types and attributes that the
// comparison rules and the catalog loader agree on, and offers constructors
// for them.
package model

import "schemadiff/core/value"

// Object type names.
const (
	TypeSchema  = "db.mysql.Schema"
	TypeTable   = "db.mysql.Table"
	TypeColumn  = "db.mysql.Column"
	TypeIndex   = "db.mysql.Index"
	TypeRoutine = "db.mysql.Routine"
)

// Attribute names.
const (
	AttrName                    = "name"
	AttrComment                 = "comment"
	AttrEngine                  = "engine"
	AttrDefaultCharacterSetName = "defaultCharacterSetName"
	AttrDefaultCollationName    = "defaultCollationName"
	AttrCharacterSetName        = "characterSetName"
	AttrCollationName           = "collationName"
	AttrColumnType              = "columnType"
	AttrIsNullable              = "isNullable"
	AttrDefaultValue            = "defaultValue"
	AttrIsUnique                = "isUnique"
	AttrColumns                 = "columns"
	AttrIndices                 = "indices"
	AttrTables                  = "tables"
	AttrRoutines                = "routines"
	AttrRoutineType             = "routineType"
	AttrDefiner                 = "definer"
	AttrSQLBody                 = "sqlBody"
)

// NewSchema returns a schema object with empty table and routine lists.
func NewSchema(name, charset, collation string) *value.Object {
	return value.NewObject(TypeSchema, name).
		Set(AttrName, value.String(name)).
		Set(AttrDefaultCharacterSetName, value.String(charset)).
		Set(AttrDefaultCollationName, value.String(collation)).
		Set(AttrTables, value.NewList(value.ObjectKind)).
		Set(AttrRoutines, value.NewList(value.ObjectKind))
}

// NewTable returns a table object with empty column and index lists.
func NewTable(schema, name string) *value.Object {
	return value.NewObject(TypeTable, schema+"."+name).
		Set(AttrName, value.String(name)).
		Set(AttrEngine, value.String("InnoDB")).
		Set(AttrComment, value.String("")).
		Set(AttrDefaultCharacterSetName, value.String("")).
		Set(AttrDefaultCollationName, value.String("")).
		Set(AttrColumns, value.NewList(value.ObjectKind)).
		Set(AttrIndices, value.NewList(value.ObjectKind))
}

// NewColumn returns a column object of the given SQL type.
func NewColumn(table *value.Object, name, columnType string) *value.Object {
	return value.NewObject(TypeColumn, table.ID()+"."+name).
		Set(AttrName, value.String(name)).
		Set(AttrColumnType, value.String(columnType)).
		Set(AttrIsNullable, value.Int(1)).
		Set(AttrDefaultValue, nil).
		Set(AttrCharacterSetName, value.String("")).
		Set(AttrCollationName, value.String("")).
		Set(AttrComment, value.String(""))
}

// NewIndex returns an index object over the named columns.
func NewIndex(table *value.Object, name string, unique bool, columns ...string) *value.Object {
	cols := value.NewList(value.ScalarKind)
	for _, c := range columns {
		cols.Append(value.String(c))
	}
	u := value.Int(0)
	if unique {
		u = value.Int(1)
	}
	return value.NewObject(TypeIndex, table.ID()+".idx."+name).
		Set(AttrName, value.String(name)).
		Set(AttrIsUnique, u).
		Set(AttrComment, value.String("")).
		Set(AttrColumns, cols)
}

// NewRoutine returns a stored routine object.
func NewRoutine(schema, name, routineType, definer, body string) *value.Object {
	return value.NewObject(TypeRoutine, schema+".routine."+name).
		Set(AttrName, value.String(name)).
		Set(AttrRoutineType, value.String(routineType)).
		Set(AttrDefiner, value.String(definer)).
		Set(AttrSQLBody, value.String(body))
}

// AddTo appends child to the object list stored under attr of parent.
func AddTo(parent *value.Object, attr string, child value.Value) *value.Object {
	v, ok := parent.Get(attr)
	list, isList := v.(*value.List)
	if !ok || !isList {
		list = value.NewList(child.Kind())
		parent.Set(attr, list)
	}
	list.Append(child)
	return parent
}
