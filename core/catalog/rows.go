package catalog

// Row models for the information_schema queries. Column aliases in the
// queries match GORM's default snake_case naming of these fields.

type schemaRow struct {
	Name      string
	Charset   string
	Collation string
}

type tableRow struct {
	TableName string
	Engine    *string
	Comment   string
	Collation *string
}

type columnRow struct {
	TableName  string
	ColumnName string
	ColumnType string
	IsNullable string
	Default    *string
	Charset    *string
	Collation  *string
	Comment    string
}

type indexRow struct {
	TableName  string
	IndexName  string
	NonUnique  int
	Comment    string
	ColumnName *string
}

type routineRow struct {
	RoutineName string
	RoutineType string
	Definer     string
	Body        *string
}
