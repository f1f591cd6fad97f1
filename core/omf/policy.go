package omf

import (
	"math"
	"strings"

	"schemadiff/core/value"
)

// Policy compares scalar values.
type Policy interface {
	Less(a, b *value.Scalar) bool
	Equal(a, b *value.Scalar) bool
}

// Field locates an attribute being compared.
type Field struct {
	// Owner is the type name of the object holding the attribute.
	Owner string
	// Name is the attribute name.
	Name string
	// Source and Target are the chains of enclosing objects on each side,
	// outermost first. The last element is the owner itself.
	Source, Target []*value.Object
}

// Key returns "<owner>.<name>".
func (f Field) Key() string {
	return f.Owner + "." + f.Name
}

// Rule decides whether two attribute values are equal. A Rule that reports
// false lets the engine compare the values as usual.
type Rule func(f Field, a, b value.Value) bool

// FieldPolicy supplies per-field rules.
type FieldPolicy interface {
	Policy
	// Rule returns the rule registered for f, or nil.
	Rule(f Field) Rule
}

// ObjectMatcher decides whether two objects denote the same entity.
type ObjectMatcher interface {
	SameObject(a, b *value.Object) bool
}

// RuleFor returns the rule p registers for f, or nil when p has none.
func RuleFor(p Policy, f Field) Rule {
	if fp, ok := p.(FieldPolicy); ok {
		return fp.Rule(f)
	}
	return nil
}

// SameObject asks p's ObjectMatcher, falling back to identity comparison.
func SameObject(p Policy, a, b *value.Object) bool {
	if m, ok := p.(ObjectMatcher); ok {
		return m.SameObject(a, b)
	}
	return a.ID() == b.ID()
}

// Default compares scalars exactly and matches objects by ID.
type Default struct{}

func (Default) Less(a, b *value.Scalar) bool {
	if a.Type() != b.Type() {
		return a.Type() < b.Type()
	}
	switch a.Type() {
	case value.IntType:
		return a.Int() < b.Int()
	case value.DoubleType:
		return a.Double() < b.Double()
	default:
		return a.Str() < b.Str()
	}
}

func (Default) Equal(a, b *value.Scalar) bool {
	if a.Type() != b.Type() {
		return false
	}
	switch a.Type() {
	case value.IntType:
		return a.Int() == b.Int()
	case value.DoubleType:
		return a.Double() == b.Double() || (math.IsNaN(a.Double()) && math.IsNaN(b.Double()))
	default:
		return a.Str() == b.Str()
	}
}

func (Default) SameObject(a, b *value.Object) bool {
	return a.ID() == b.ID()
}

// Skip is a Rule that judges every pair equal.
func Skip(Field, value.Value, value.Value) bool { return true }

// FoldCase is a Rule comparing string scalars case-insensitively.
func FoldCase(_ Field, a, b value.Value) bool {
	sa, oka := a.(*value.Scalar)
	sb, okb := b.(*value.Scalar)
	if !oka || !okb || sa.Type() != value.StringType || sb.Type() != value.StringType {
		return false
	}
	return strings.EqualFold(sa.Str(), sb.Str())
}

// FoldCaseList is a Rule comparing lists of string scalars element-wise
// and case-insensitively, e.g. the column names of an index.
func FoldCaseList(f Field, a, b value.Value) bool {
	la, oka := a.(*value.List)
	lb, okb := b.(*value.List)
	if !oka || !okb || la.Len() != lb.Len() {
		return false
	}
	for i := 0; i < la.Len(); i++ {
		if !FoldCase(f, la.At(i), lb.At(i)) {
			return false
		}
	}
	return true
}

// Truncate returns a Rule comparing string scalars on their first max runes.
func Truncate(max int) Rule {
	return func(_ Field, a, b value.Value) bool {
		sa, oka := a.(*value.Scalar)
		sb, okb := b.(*value.Scalar)
		if !oka || !okb || sa.Type() != value.StringType || sb.Type() != value.StringType {
			return false
		}
		return prefix(sa.Str(), max) == prefix(sb.Str(), max)
	}
}

func prefix(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}
