package omf

import (
	"errors"
	"math"
	"testing"

	"schemadiff/core/model"
	"schemadiff/core/value"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDefault_Equal tests exact scalar comparison.
func TestDefault_Equal(t *testing.T) {
	d := Default{}
	assert.True(t, d.Equal(value.Int(3), value.Int(3)))
	assert.False(t, d.Equal(value.Int(3), value.Double(3)))
	assert.False(t, d.Equal(value.String("Table"), value.String("TABLE")))
	assert.True(t, d.Equal(value.Double(math.NaN()), value.Double(math.NaN())))
}

// TestDefault_Less tests ordering across and within scalar types.
func TestDefault_Less(t *testing.T) {
	d := Default{}
	assert.True(t, d.Less(value.Int(1), value.Int(2)))
	assert.True(t, d.Less(value.Int(9), value.String("a")))
	assert.False(t, d.Less(value.String("b"), value.String("a")))
}

// TestOptions_Parse tests option validation.
func TestOptions_Parse(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr error
	}{
		{name: "empty", opts: Options{}},
		{name: "string bool", opts: Options{OptCaseSensitive: "false"}},
		{name: "string int", opts: Options{OptMaxTableCommentLength: "60"}},
		{name: "unknown key", opts: Options{"caseSensitive": true}, wantErr: ErrUnknownOption},
		{name: "bad bool", opts: Options{OptSkipRoutineDefiner: "maybe"}, wantErr: ErrInvalidOption},
		{name: "negative length", opts: Options{OptMaxIndexCommentLength: -1}, wantErr: ErrInvalidOption},
		{name: "negative tolerance", opts: Options{OptFloatTolerance: -0.5}, wantErr: ErrInvalidOption},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.opts.Parse()
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

// TestOptions_ParseDefaults tests that CaseSensitive defaults to true.
func TestOptions_ParseDefaults(t *testing.T) {
	s, err := Options{}.Parse()
	require.NoError(t, err)
	assert.True(t, s.CaseSensitive)
	assert.Nil(t, s.MaxTableCommentLength)
}

func tableField(table *value.Object, attr string) Field {
	return Field{Owner: model.TypeTable, Name: attr, Source: []*value.Object{table}, Target: []*value.Object{table}}
}

// TestNormalized_CaseInsensitiveName tests the name rule.
func TestNormalized_CaseInsensitiveName(t *testing.T) {
	f := Field{Owner: model.TypeTable, Name: model.AttrName}

	sensitive, err := NewNormalized(Options{})
	require.NoError(t, err)
	assert.Nil(t, sensitive.Rule(f))

	insensitive, err := NewNormalized(Options{OptCaseSensitive: false})
	require.NoError(t, err)
	rule := insensitive.Rule(f)
	require.NotNil(t, rule)
	assert.True(t, rule(f, value.String("Table"), value.String("TABLE")))
	assert.False(t, rule(f, value.String("Table"), value.String("Tables")))
	assert.True(t, insensitive.SameObject(value.NewObject(model.TypeTable, "db.T"), value.NewObject(model.TypeTable, "DB.t")))
}

// TestNormalized_CaseInsensitiveIndexColumns tests that index column
// lists fold case along with names.
func TestNormalized_CaseInsensitiveIndexColumns(t *testing.T) {
	f := Field{Owner: model.TypeIndex, Name: model.AttrColumns}
	cols := func(names ...string) *value.List {
		l := value.NewList(value.ScalarKind)
		for _, n := range names {
			l.Append(value.String(n))
		}
		return l
	}

	sensitive, err := NewNormalized(Options{})
	require.NoError(t, err)
	assert.Nil(t, sensitive.Rule(f))

	insensitive, err := NewNormalized(Options{OptCaseSensitive: false})
	require.NoError(t, err)
	rule := insensitive.Rule(f)
	require.NotNil(t, rule)
	assert.True(t, rule(f, cols("ID", "Total"), cols("id", "total")))
	assert.False(t, rule(f, cols("id", "total"), cols("total", "id")))
	assert.False(t, rule(f, cols("id"), cols("id", "total")))
	assert.False(t, rule(f, cols("id"), value.String("id")))

	// table columns are objects matched by identity, not by this rule
	assert.Nil(t, insensitive.Rule(Field{Owner: model.TypeTable, Name: model.AttrColumns}))
}

// TestNormalized_CommentTruncation tests comment limits.
func TestNormalized_CommentTruncation(t *testing.T) {
	table := model.NewTable("db", "t")
	f := tableField(table, model.AttrComment)

	p5, err := NewNormalized(Options{OptMaxTableCommentLength: 5})
	require.NoError(t, err)
	assert.True(t, p5.Rule(f)(f, value.String("123456"), value.String("12345")))

	p6, err := NewNormalized(Options{OptMaxTableCommentLength: 6})
	require.NoError(t, err)
	assert.False(t, p6.Rule(f)(f, value.String("123456"), value.String("12345")))

	p0, err := NewNormalized(Options{OptMaxTableCommentLength: 0})
	require.NoError(t, err)
	assert.True(t, p0.Rule(f)(f, value.String("anything"), value.String("else")))

	// index and column limits are independent
	idx := Field{Owner: model.TypeIndex, Name: model.AttrComment}
	assert.Nil(t, p5.Rule(idx))
}

// TestNormalized_CollationInheritance tests resolution of empty collations.
func TestNormalized_CollationInheritance(t *testing.T) {
	p, err := NewNormalized(Options{})
	require.NoError(t, err)

	schema := model.NewSchema("db", "utf8mb4", "utf8mb4_general_ci")
	srcTable := model.NewTable("db", "t")
	dstTable := model.NewTable("db", "t")
	dstTable.Set(model.AttrDefaultCollationName, value.String("UTF8MB4_GENERAL_CI"))
	srcCol := model.NewColumn(srcTable, "c", "varchar(10)")
	dstCol := model.NewColumn(dstTable, "c", "varchar(10)")

	f := Field{
		Owner:  model.TypeColumn,
		Name:   model.AttrCollationName,
		Source: []*value.Object{schema, srcTable, srcCol},
		Target: []*value.Object{schema, dstTable, dstCol},
	}
	rule := p.Rule(f)
	require.NotNil(t, rule)

	assert.True(t, rule(f, value.String(""), value.String("utf8mb4_general_ci")))
	assert.True(t, rule(f, value.String(""), value.String("")))
	assert.False(t, rule(f, value.String(""), value.String("latin1_swedish_ci")))
	assert.False(t, rule(f, value.Int(1), value.String("")))
}

// TestNormalized_CharsetAlias tests utf8 alias folding.
func TestNormalized_CharsetAlias(t *testing.T) {
	p, err := NewNormalized(Options{})
	require.NoError(t, err)

	schema := model.NewSchema("db", "utf8", "utf8_general_ci")
	f := Field{
		Owner:  model.TypeSchema,
		Name:   model.AttrDefaultCollationName,
		Source: []*value.Object{schema},
		Target: []*value.Object{schema},
	}
	assert.True(t, p.Rule(f)(f, value.String("utf8_general_ci"), value.String("utf8mb3_general_ci")))

	f.Name = model.AttrDefaultCharacterSetName
	assert.True(t, p.Rule(f)(f, value.String("UTF8"), value.String("utf8mb3")))
	assert.False(t, p.Rule(f)(f, value.String("utf8"), value.String("utf8mb4")))
}

// TestNormalized_SkipRoutineDefiner tests the definer skip rule.
func TestNormalized_SkipRoutineDefiner(t *testing.T) {
	f := Field{Owner: model.TypeRoutine, Name: model.AttrDefiner}

	p, err := NewNormalized(Options{OptSkipRoutineDefiner: true})
	require.NoError(t, err)
	require.NotNil(t, p.Rule(f))
	assert.True(t, p.Rule(f)(f, value.String("root@%"), value.String("app@%")))

	p, err = NewNormalized(Options{OptSkipRoutineDefiner: false})
	require.NoError(t, err)
	assert.Nil(t, p.Rule(f))
}

// TestNormalized_FloatTolerance tests tolerant double comparison.
func TestNormalized_FloatTolerance(t *testing.T) {
	p, err := NewNormalized(Options{OptFloatTolerance: 0.01})
	require.NoError(t, err)
	assert.True(t, p.Equal(value.Double(1.0), value.Double(1.005)))
	assert.False(t, p.Equal(value.Double(1.0), value.Double(1.5)))
	assert.False(t, p.Equal(value.Int(1), value.Double(1.0)))
}

// TestNormalized_ConflictingRules tests construction-time rule validation.
func TestNormalized_ConflictingRules(t *testing.T) {
	_, err := NewNormalized(Options{}, WithSkip("x.y"), WithSkip("x.y"))
	assert.ErrorIs(t, err, ErrConflictingRule)

	_, err = NewNormalized(Options{OptCaseSensitive: false}, WithRule(model.AttrName, Skip))
	assert.ErrorIs(t, err, ErrConflictingRule)

	_, err = NewNormalized(Options{}, WithRule("", Skip))
	assert.ErrorIs(t, err, ErrInvalidOption)

	p, err := NewNormalized(Options{}, WithSkip("db.mysql.Table.engine"))
	require.NoError(t, err)
	f := Field{Owner: model.TypeTable, Name: model.AttrEngine}
	assert.NotNil(t, p.Rule(f))
}

// TestCompose tests first-hit rule lookup.
func TestCompose(t *testing.T) {
	first, err := NewNormalized(Options{}, WithSkip("a"))
	require.NoError(t, err)
	second, err := NewNormalized(Options{}, WithRule("a", FoldCase), WithSkip("b"))
	require.NoError(t, err)

	c := Compose(first, second)
	fa := Field{Owner: "T", Name: "a"}
	fb := Field{Owner: "T", Name: "b"}
	fc := Field{Owner: "T", Name: "c"}

	assert.True(t, c.Rule(fa)(fa, value.String("x"), value.String("y")))
	assert.NotNil(t, c.Rule(fb))
	assert.Nil(t, c.Rule(fc))
	assert.Nil(t, RuleFor(Compose(), fa))
	assert.True(t, SameObject(Compose(), value.NewObject("T", "1"), value.NewObject("T", "1")))
}

// TestConfig_Options tests the configuration section conversion.
func TestConfig_Options(t *testing.T) {
	cfg := Config{
		CaseSensitive:          false,
		MaxTableCommentLength:  60,
		MaxIndexCommentLength:  -1,
		MaxColumnCommentLength: 0,
	}
	opts := cfg.Options()
	assert.Equal(t, false, opts[OptCaseSensitive])
	assert.Equal(t, 60, opts[OptMaxTableCommentLength])
	assert.NotContains(t, opts, OptMaxIndexCommentLength)
	assert.Equal(t, 0, opts[OptMaxColumnCommentLength])
	assert.NotContains(t, opts, OptFloatTolerance)

	merged := opts.Merge(Options{OptMaxTableCommentLength: 5})
	assert.Equal(t, 5, merged[OptMaxTableCommentLength])
	assert.Equal(t, 60, opts[OptMaxTableCommentLength])

	s, err := merged.Parse()
	require.NoError(t, err)
	assert.False(t, s.CaseSensitive)
	require.NotNil(t, s.MaxColumnCommentLength)
	assert.Equal(t, 0, *s.MaxColumnCommentLength)
}
