package diff

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"schemadiff/core/change"
	"schemadiff/core/metrics"
	"schemadiff/core/omf"
	"schemadiff/core/reconcile"
	"schemadiff/core/value"

	"go.uber.org/zap"
)

var (
	// ErrIdentityMismatch is returned when two top level objects denote
	// different entities.
	ErrIdentityMismatch = errors.New("identity mismatch")
	// ErrMalformed is returned for input that cannot be compared.
	ErrMalformed = errors.New("malformed value")
)

// Engine compares value graphs under a policy.
type Engine struct {
	policy  omf.Policy
	logger  *zap.Logger
	metrics *metrics.Recorder
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for duplicate identity warnings and
// debug timings.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithMetrics records every run with r.
func WithMetrics(r *metrics.Recorder) Option {
	return func(e *Engine) {
		e.metrics = r
	}
}

// New creates an Engine. A nil policy compares exactly.
func New(policy omf.Policy, opts ...Option) *Engine {
	if policy == nil {
		policy = omf.Default{}
	}
	e := &Engine{policy: policy, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Policy returns the comparison policy.
func (e *Engine) Policy() omf.Policy { return e.policy }

// Diff is a shorthand for New(policy).Diff(source, target).
func Diff(source, target value.Value, policy omf.Policy) (change.Change, error) {
	return New(policy).Diff(source, target)
}

// Diff returns the change that turns source into target, or nil when they
// are equal under the policy.
func (e *Engine) Diff(source, target value.Value) (change.Change, error) {
	start := time.Now()
	c, err := e.diff(source, target)
	e.metrics.ObserveDiff(start, c, err)
	if err != nil {
		return nil, err
	}

	if ce := e.logger.Check(zap.DebugLevel, "Diff completed"); ce != nil {
		ce.Write(
			zap.String("source", value.Label(source)),
			zap.Bool("changed", c != nil),
			zap.Int("leaves", len(change.Leaves(c))),
			zap.Duration("elapsed", time.Since(start)),
		)
	}
	return c, nil
}

func (e *Engine) diff(source, target value.Value) (change.Change, error) {
	so, sok := source.(*value.Object)
	to, tok := target.(*value.Object)
	if sok && tok && so.Type() == to.Type() && !omf.SameObject(e.policy, so, to) {
		return nil, fmt.Errorf("%w: %s vs %s", ErrIdentityMismatch, so, to)
	}
	return e.newRun().diff(source, target)
}

// Compare is like Diff but returns change.NoChange instead of nil when the
// values are equal.
func (e *Engine) Compare(source, target value.Value) (change.Change, error) {
	c, err := e.Diff(source, target)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return change.NoChange, nil
	}
	return c, nil
}

// Reconcile aligns two element lists. Matched elements are compared with
// this engine.
func (e *Engine) Reconcile(source, target []value.Value) ([]change.Change, error) {
	r := e.newRun()
	for i, v := range source {
		if err := r.checkElem(v, kindOf(source), i); err != nil {
			return nil, err
		}
	}
	for i, v := range target {
		if err := r.checkElem(v, kindOf(target), i); err != nil {
			return nil, err
		}
	}
	return r.reconciler.Reconcile(source, target)
}

func kindOf(items []value.Value) value.Kind {
	if len(items) == 0 || items[0] == nil {
		return value.ScalarKind
	}
	return items[0].Kind()
}

// run is the state of one comparison.
type run struct {
	policy     omf.Policy
	reconciler *reconcile.Reconciler
	// source and target are the enclosing objects, outermost first
	source, target []*value.Object
	path           []string
}

func (e *Engine) newRun() *run {
	r := &run{policy: e.policy}
	r.reconciler = &reconcile.Reconciler{Policy: e.policy, Diff: r.element, Logger: e.logger}
	return r
}

func (r *run) diff(a, b value.Value) (change.Change, error) {
	switch {
	case a == nil && b == nil:
		return nil, nil
	case a == nil:
		return change.NewValueAdded(b), nil
	case b == nil:
		return change.NewValueRemoved(a), nil
	case a.Kind() != b.Kind():
		return change.NewReplaced(a, b), nil
	}

	switch ta := a.(type) {
	case *value.Scalar:
		tb := b.(*value.Scalar)
		if r.policy.Equal(ta, tb) {
			return nil, nil
		}
		return change.NewSimpleValue(a, b), nil
	case *value.List:
		return r.list(ta, b.(*value.List))
	case *value.Dict:
		return r.dict(ta, b.(*value.Dict))
	case *value.Object:
		tb := b.(*value.Object)
		if ta.Type() != tb.Type() || !omf.SameObject(r.policy, ta, tb) {
			return change.NewReplaced(a, b), nil
		}
		return r.object(ta, tb)
	default:
		return nil, fmt.Errorf("%w at %s: unsupported value %T", ErrMalformed, r.where(), a)
	}
}

// element compares two matched list elements.
func (r *run) element(a, b value.Value) (change.Change, error) {
	r.path = append(r.path, "["+value.Label(a)+"]")
	defer func() { r.path = r.path[:len(r.path)-1] }()
	return r.diff(a, b)
}

func (r *run) object(a, b *value.Object) (change.Change, error) {
	names := a.Attrs()
	if err := r.sameAttrs(a, b, names); err != nil {
		return nil, err
	}

	r.source = append(r.source, a)
	r.target = append(r.target, b)
	defer func() {
		r.source = r.source[:len(r.source)-1]
		r.target = r.target[:len(r.target)-1]
	}()

	var changes []change.Change
	for _, name := range names {
		va, _ := a.Get(name)
		vb, _ := b.Get(name)

		f := omf.Field{Owner: a.Type(), Name: name, Source: r.source, Target: r.target}
		if rule := omf.RuleFor(r.policy, f); rule != nil && rule(f, va, vb) {
			continue
		}

		r.path = append(r.path, name)
		sub, err := r.diff(va, vb)
		r.path = r.path[:len(r.path)-1]
		if err != nil {
			return nil, err
		}
		if sub != nil {
			changes = append(changes, change.NewObjectAttrModified(name, sub))
		}
	}
	return change.NewMulti(change.ObjectModified, changes), nil
}

func (r *run) sameAttrs(a, b *value.Object, names []string) error {
	for _, name := range names {
		if _, ok := b.Get(name); !ok {
			return fmt.Errorf("%w at %s: %s has no attribute %q", ErrMalformed, r.where(), b, name)
		}
	}
	if other := b.Attrs(); len(other) != len(names) {
		for _, name := range other {
			if _, ok := a.Get(name); !ok {
				return fmt.Errorf("%w at %s: %s has no attribute %q", ErrMalformed, r.where(), a, name)
			}
		}
	}
	return nil
}

func (r *run) list(a, b *value.List) (change.Change, error) {
	if err := r.checkList(a); err != nil {
		return nil, err
	}
	if err := r.checkList(b); err != nil {
		return nil, err
	}
	if a.Len() > 0 && b.Len() > 0 && a.Elem() != b.Elem() {
		return change.NewReplaced(a, b), nil
	}

	ops, err := r.reconciler.Reconcile(a.Items(), b.Items())
	if err != nil {
		return nil, err
	}
	return change.NewMulti(change.ListModified, ops), nil
}

func (r *run) checkList(l *value.List) error {
	for i := 0; i < l.Len(); i++ {
		if err := r.checkElem(l.At(i), l.Elem(), i); err != nil {
			return err
		}
	}
	return nil
}

func (r *run) checkElem(v value.Value, elem value.Kind, i int) error {
	if v == nil {
		return fmt.Errorf("%w at %s: list element %d is absent", ErrMalformed, r.where(), i)
	}
	if v.Kind() != elem {
		return fmt.Errorf("%w at %s: list of %s holds a %s at %d", ErrMalformed, r.where(), elem, v.Kind(), i)
	}
	return nil
}

func (r *run) dict(a, b *value.Dict) (change.Change, error) {
	keys := a.Keys()
	for _, k := range b.Keys() {
		if _, ok := a.Get(k); !ok {
			keys = append(keys, k)
		}
	}
	sort.SliceStable(keys, func(i, j int) bool {
		return r.policy.Less(value.String(keys[i]), value.String(keys[j]))
	})

	var changes []change.Change
	for _, k := range keys {
		va, inA := a.Get(k)
		vb, inB := b.Get(k)
		switch {
		case !inA:
			changes = append(changes, change.NewDictItemAdded(k, vb))
		case !inB:
			changes = append(changes, change.NewDictItemRemoved(k, va))
		default:
			r.path = append(r.path, "["+k+"]")
			sub, err := r.diff(va, vb)
			r.path = r.path[:len(r.path)-1]
			if err != nil {
				return nil, err
			}
			if sub != nil {
				changes = append(changes, change.NewDictItemModified(k, sub))
			}
		}
	}
	return change.NewMulti(change.DictModified, changes), nil
}

// where renders the current attribute path for error messages.
func (r *run) where() string {
	if len(r.path) == 0 {
		return "<root>"
	}
	var b strings.Builder
	for i, seg := range r.path {
		if i > 0 && !strings.HasPrefix(seg, "[") {
			b.WriteByte('.')
		}
		b.WriteString(seg)
	}
	return b.String()
}
