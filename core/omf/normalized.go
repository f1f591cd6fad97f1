package omf

import (
	"fmt"
	"math"
	"strings"

	"schemadiff/core/model"
	"schemadiff/core/value"
)

// Option customizes a Normalized policy at construction time.
type Option func(*Normalized) error

// WithRule registers rule under key. The key is either "<type>.<attr>" or a
// bare attribute name. Registering a key twice is an error.
func WithRule(key string, rule Rule) Option {
	return func(n *Normalized) error {
		return n.add(key, rule)
	}
}

// WithSkip excludes the field named by key from comparison.
func WithSkip(key string) Option {
	return WithRule(key, Skip)
}

// Normalized resolves effective values before comparing them: identifier
// case folding, comment truncation, charset and collation inheritance and
// skipped fields.
type Normalized struct {
	Default
	caseSensitive bool
	tolerance     float64
	rules         map[string]Rule
}

// NewNormalized builds a policy from an options bag plus extra rules.
// Malformed options and conflicting rules are reported here, never while
// comparing.
func NewNormalized(opts Options, extra ...Option) (*Normalized, error) {
	s, err := opts.Parse()
	if err != nil {
		return nil, err
	}

	n := &Normalized{
		caseSensitive: s.CaseSensitive,
		tolerance:     s.FloatTolerance,
		rules:         map[string]Rule{},
	}

	for key, rule := range builtinRules(s) {
		if err := n.add(key, rule); err != nil {
			return nil, err
		}
	}
	for _, opt := range extra {
		if err := opt(n); err != nil {
			return nil, err
		}
	}
	return n, nil
}

func (n *Normalized) add(key string, rule Rule) error {
	if key == "" || rule == nil {
		return fmt.Errorf("%w: empty rule for %q", ErrInvalidOption, key)
	}
	if _, ok := n.rules[key]; ok {
		return fmt.Errorf("%w for %q", ErrConflictingRule, key)
	}
	n.rules[key] = rule
	return nil
}

func builtinRules(s Settings) map[string]Rule {
	rules := map[string]Rule{
		model.TypeSchema + "." + model.AttrDefaultCharacterSetName: inherited(model.AttrDefaultCharacterSetName),
		model.TypeSchema + "." + model.AttrDefaultCollationName:    inherited(model.AttrDefaultCollationName),
		model.TypeTable + "." + model.AttrDefaultCharacterSetName:  inherited(model.AttrDefaultCharacterSetName),
		model.TypeTable + "." + model.AttrDefaultCollationName:     inherited(model.AttrDefaultCollationName),
		model.TypeColumn + "." + model.AttrCharacterSetName:        inherited(model.AttrDefaultCharacterSetName),
		model.TypeColumn + "." + model.AttrCollationName:           inherited(model.AttrDefaultCollationName),
	}
	if !s.CaseSensitive {
		rules[model.AttrName] = FoldCase
		rules[model.TypeIndex+"."+model.AttrColumns] = FoldCaseList
	}
	if s.SkipRoutineDefiner {
		rules[model.TypeRoutine+"."+model.AttrDefiner] = Skip
	}

	limits := map[string]*int{
		model.TypeTable:  s.MaxTableCommentLength,
		model.TypeIndex:  s.MaxIndexCommentLength,
		model.TypeColumn: s.MaxColumnCommentLength,
	}
	for typ, limit := range limits {
		switch {
		case limit == nil:
		case *limit == 0:
			rules[typ+"."+model.AttrComment] = Skip
		default:
			rules[typ+"."+model.AttrComment] = Truncate(*limit)
		}
	}
	return rules
}

// CaseSensitive reports whether identifiers are compared exactly.
func (n *Normalized) CaseSensitive() bool { return n.caseSensitive }

// Rule looks up "<type>.<attr>" first and the bare attribute name second.
func (n *Normalized) Rule(f Field) Rule {
	if r, ok := n.rules[f.Key()]; ok {
		return r
	}
	return n.rules[f.Name]
}

func (n *Normalized) Less(a, b *value.Scalar) bool {
	if !n.caseSensitive && a.Type() == value.StringType && b.Type() == value.StringType {
		la, lb := strings.ToLower(a.Str()), strings.ToLower(b.Str())
		if la != lb {
			return la < lb
		}
	}
	return n.Default.Less(a, b)
}

func (n *Normalized) Equal(a, b *value.Scalar) bool {
	if n.tolerance > 0 && a.Type() == value.DoubleType && b.Type() == value.DoubleType {
		if math.Abs(a.Double()-b.Double()) <= n.tolerance {
			return true
		}
	}
	return n.Default.Equal(a, b)
}

// SameObject matches identities case-insensitively when identifiers are.
func (n *Normalized) SameObject(a, b *value.Object) bool {
	if n.caseSensitive {
		return a.ID() == b.ID()
	}
	return strings.EqualFold(a.ID(), b.ID())
}

// inherited returns a rule that resolves an empty charset or collation to
// the nearest enclosing object's default before comparing.
func inherited(parentAttr string) Rule {
	return func(f Field, a, b value.Value) bool {
		ea, ok := effective(a, f.Source, parentAttr)
		if !ok {
			return false
		}
		eb, ok := effective(b, f.Target, parentAttr)
		if !ok {
			return false
		}
		return foldCharset(ea) == foldCharset(eb)
	}
}

func effective(v value.Value, stack []*value.Object, parentAttr string) (string, bool) {
	if v != nil {
		s, ok := v.(*value.Scalar)
		if !ok || s.Type() != value.StringType {
			return "", false
		}
		if s.Str() != "" {
			return s.Str(), true
		}
	}
	// the last element is the owner itself
	for i := len(stack) - 2; i >= 0; i-- {
		if s := stack[i].GetString(parentAttr); s != "" {
			return s, true
		}
	}
	return "", true
}

func foldCharset(name string) string {
	name = strings.ToLower(name)
	switch {
	case name == "utf8":
		return "utf8mb3"
	case strings.HasPrefix(name, "utf8_"):
		return "utf8mb3_" + strings.TrimPrefix(name, "utf8_")
	}
	return name
}
