package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"schemadiff/core/model"
	"schemadiff/core/value"

	"gorm.io/gorm"
)

// ErrSchemaNotFound is returned when information_schema has no such schema.
var ErrSchemaNotFound = errors.New("schema not found")

const (
	schemaQuery = "SELECT SCHEMA_NAME AS name, DEFAULT_CHARACTER_SET_NAME AS charset, DEFAULT_COLLATION_NAME AS collation " +
		"FROM information_schema.SCHEMATA WHERE SCHEMA_NAME = ?"
	tablesQuery = "SELECT TABLE_NAME AS table_name, ENGINE AS engine, TABLE_COMMENT AS comment, TABLE_COLLATION AS collation " +
		"FROM information_schema.TABLES WHERE TABLE_SCHEMA = ? AND TABLE_TYPE = 'BASE TABLE' ORDER BY TABLE_NAME"
	columnsQuery = "SELECT TABLE_NAME AS table_name, COLUMN_NAME AS column_name, COLUMN_TYPE AS column_type, " +
		"IS_NULLABLE AS is_nullable, COLUMN_DEFAULT AS `default`, CHARACTER_SET_NAME AS charset, " +
		"COLLATION_NAME AS collation, COLUMN_COMMENT AS comment " +
		"FROM information_schema.COLUMNS WHERE TABLE_SCHEMA = ? ORDER BY TABLE_NAME, ORDINAL_POSITION"
	indicesQuery = "SELECT TABLE_NAME AS table_name, INDEX_NAME AS index_name, NON_UNIQUE AS non_unique, " +
		"INDEX_COMMENT AS comment, COLUMN_NAME AS column_name " +
		"FROM information_schema.STATISTICS WHERE TABLE_SCHEMA = ? ORDER BY TABLE_NAME, INDEX_NAME, SEQ_IN_INDEX"
	routinesQuery = "SELECT ROUTINE_NAME AS routine_name, ROUTINE_TYPE AS routine_type, DEFINER AS definer, " +
		"ROUTINE_DEFINITION AS body " +
		"FROM information_schema.ROUTINES WHERE ROUTINE_SCHEMA = ? ORDER BY ROUTINE_NAME"
)

// Inspector reads schema metadata through a GORM connection.
type Inspector struct {
	db *gorm.DB
}

// NewInspector returns an Inspector over db.
func NewInspector(db *gorm.DB) *Inspector {
	return &Inspector{db: db}
}

// LoadSchema captures the named schema.
func (i *Inspector) LoadSchema(ctx context.Context, name string) (*value.Object, error) {
	db := i.db.WithContext(ctx)

	var schemas []schemaRow
	if err := db.Raw(schemaQuery, name).Scan(&schemas).Error; err != nil {
		return nil, fmt.Errorf("failed to read schema %s: %w", name, err)
	}
	if len(schemas) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrSchemaNotFound, name)
	}
	s := schemas[0]
	schema := model.NewSchema(s.Name, s.Charset, s.Collation)

	var tables []tableRow
	if err := db.Raw(tablesQuery, name).Scan(&tables).Error; err != nil {
		return nil, fmt.Errorf("failed to read tables of %s: %w", name, err)
	}
	byName := make(map[string]*value.Object, len(tables))
	for _, row := range tables {
		t := model.NewTable(s.Name, row.TableName).
			Set(model.AttrEngine, value.String(deref(row.Engine))).
			Set(model.AttrComment, value.String(row.Comment)).
			Set(model.AttrDefaultCharacterSetName, value.String(charsetOf(deref(row.Collation)))).
			Set(model.AttrDefaultCollationName, value.String(deref(row.Collation)))
		byName[row.TableName] = t
		model.AddTo(schema, model.AttrTables, t)
	}

	var columns []columnRow
	if err := db.Raw(columnsQuery, name).Scan(&columns).Error; err != nil {
		return nil, fmt.Errorf("failed to read columns of %s: %w", name, err)
	}
	for _, row := range columns {
		t, ok := byName[row.TableName]
		if !ok {
			// view columns
			continue
		}
		col := model.NewColumn(t, row.ColumnName, strings.ToLower(row.ColumnType)).
			Set(model.AttrIsNullable, boolInt(strings.EqualFold(row.IsNullable, "YES"))).
			Set(model.AttrCharacterSetName, value.String(deref(row.Charset))).
			Set(model.AttrCollationName, value.String(deref(row.Collation))).
			Set(model.AttrComment, value.String(row.Comment))
		if row.Default != nil {
			col.Set(model.AttrDefaultValue, value.String(*row.Default))
		}
		model.AddTo(t, model.AttrColumns, col)
	}

	var indices []indexRow
	if err := db.Raw(indicesQuery, name).Scan(&indices).Error; err != nil {
		return nil, fmt.Errorf("failed to read indices of %s: %w", name, err)
	}
	var current *value.Object
	for _, row := range indices {
		t, ok := byName[row.TableName]
		if !ok {
			continue
		}
		if current == nil || current.ID() != t.ID()+".idx."+row.IndexName {
			current = model.NewIndex(t, row.IndexName, row.NonUnique == 0).
				Set(model.AttrComment, value.String(row.Comment))
			model.AddTo(t, model.AttrIndices, current)
		}
		if row.ColumnName != nil {
			// functional key parts have no column name
			model.AddTo(current, model.AttrColumns, value.String(*row.ColumnName))
		}
	}

	var routines []routineRow
	if err := db.Raw(routinesQuery, name).Scan(&routines).Error; err != nil {
		return nil, fmt.Errorf("failed to read routines of %s: %w", name, err)
	}
	for _, row := range routines {
		model.AddTo(schema, model.AttrRoutines,
			model.NewRoutine(s.Name, row.RoutineName, row.RoutineType, row.Definer, deref(row.Body)))
	}

	return schema, nil
}

// charsetOf derives the character set from a collation name.
func charsetOf(collation string) string {
	if i := strings.IndexByte(collation, '_'); i > 0 {
		return collation[:i]
	}
	return collation
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func boolInt(b bool) *value.Scalar {
	if b {
		return value.Int(1)
	}
	return value.Int(0)
}
