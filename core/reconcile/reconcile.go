package reconcile

import (
	"fmt"

	"schemadiff/core/change"
	"schemadiff/core/omf"
	"schemadiff/core/value"

	"go.uber.org/zap"
)

// Differ computes the change between two matched elements. It returns nil
// when they are equal.
type Differ func(source, target value.Value) (change.Change, error)

// Reconciler aligns lists under a comparison policy.
type Reconciler struct {
	// Policy compares scalar elements and matches object identities.
	Policy omf.Policy
	// Diff compares matched elements. When nil, matched elements are never
	// reported as modified and nested lists or dicts match only themselves.
	Diff Differ
	// Logger receives duplicate identity warnings. Nil disables logging.
	Logger *zap.Logger
}

// pair links a source index to a target index.
type pair struct {
	src, dst int
	// moved is set for pairs outside the common subsequence.
	moved bool
}

// Reconcile returns the operations that turn source into target. Both empty
// yields an empty result.
func (r *Reconciler) Reconcile(source, target []value.Value) ([]change.Change, error) {
	if len(source) == 0 && len(target) == 0 {
		return nil, nil
	}
	policy := r.Policy
	if policy == nil {
		policy = omf.Default{}
	}

	srcDup := r.duplicates(policy, source, "source")
	dstDup := r.duplicates(policy, target, "target")

	n, m := len(source), len(target)
	eq := make([][]bool, n)
	for i := range eq {
		eq[i] = make([]bool, m)
		if srcDup[i] {
			continue
		}
		for j := 0; j < m; j++ {
			if dstDup[j] {
				continue
			}
			ok, err := r.match(policy, source[i], target[j])
			if err != nil {
				return nil, err
			}
			eq[i][j] = ok
		}
	}

	pairs := align(eq, n, m)

	// elements outside the common subsequence that still have a partner
	// on the other side have moved
	srcUsed := make([]bool, n)
	dstPair := make([]*pair, m)
	for k := range pairs {
		srcUsed[pairs[k].src] = true
		dstPair[pairs[k].dst] = &pairs[k]
	}
	var moves []pair
	for j := 0; j < m; j++ {
		if dstPair[j] != nil {
			continue
		}
		for i := 0; i < n; i++ {
			if !srcUsed[i] && eq[i][j] {
				srcUsed[i] = true
				moves = append(moves, pair{src: i, dst: j, moved: true})
				break
			}
		}
	}
	for k := range moves {
		dstPair[moves[k].dst] = &moves[k]
	}

	var ops []change.Change
	for i := 0; i < n; i++ {
		if !srcUsed[i] {
			ops = append(ops, change.NewListItemRemoved(source[i]))
		}
	}

	var prev value.Value
	for j := 0; j < m; j++ {
		p := dstPair[j]
		if p == nil {
			ops = append(ops, change.NewListItemAdded(target[j], prev))
			prev = target[j]
			continue
		}

		var sub change.Change
		if r.Diff != nil {
			c, err := r.Diff(source[p.src], target[j])
			if err != nil {
				return nil, err
			}
			sub = c
		}
		switch {
		case p.moved:
			ops = append(ops, change.NewListItemOrderChanged(source[p.src], target[j], prev, sub))
		case sub != nil:
			ops = append(ops, change.NewListItemModified(source[p.src], target[j], sub))
		}
		prev = source[p.src]
	}
	return ops, nil
}

// align returns the pairs of one longest common subsequence of the match
// matrix, walking forward and preferring the diagonal.
func align(eq [][]bool, n, m int) []pair {
	// lcs[i][j] is the subsequence length of source[i:] and target[j:]
	lcs := make([][]int, n+1)
	for i := range lcs {
		lcs[i] = make([]int, m+1)
	}
	for i := n - 1; i >= 0; i-- {
		for j := m - 1; j >= 0; j-- {
			switch {
			case eq[i][j]:
				lcs[i][j] = lcs[i+1][j+1] + 1
			case lcs[i+1][j] >= lcs[i][j+1]:
				lcs[i][j] = lcs[i+1][j]
			default:
				lcs[i][j] = lcs[i][j+1]
			}
		}
	}

	var pairs []pair
	i, j := 0, 0
	for i < n && j < m {
		switch {
		case eq[i][j] && lcs[i][j] == lcs[i+1][j+1]+1:
			pairs = append(pairs, pair{src: i, dst: j})
			i++
			j++
		case lcs[i+1][j] >= lcs[i][j+1]:
			i++
		default:
			j++
		}
	}
	return pairs
}

// match reports whether a and b denote the same element.
func (r *Reconciler) match(policy omf.Policy, a, b value.Value) (bool, error) {
	if a == nil || b == nil {
		return a == nil && b == nil, nil
	}
	if a.Kind() != b.Kind() {
		return false, nil
	}
	switch ta := a.(type) {
	case *value.Scalar:
		return policy.Equal(ta, b.(*value.Scalar)), nil
	case *value.Object:
		tb := b.(*value.Object)
		if ta.Type() != tb.Type() {
			return false, nil
		}
		if !anonymous(ta) || !anonymous(tb) {
			return !anonymous(ta) && !anonymous(tb) && omf.SameObject(policy, ta, tb), nil
		}
		// objects without an id have no identity and match by content
		return r.deepEqual(a, b)
	default:
		return r.deepEqual(a, b)
	}
}

// deepEqual matches values that carry no identity by content.
func (r *Reconciler) deepEqual(a, b value.Value) (bool, error) {
	if r.Diff == nil {
		return a == b, nil
	}
	c, err := r.Diff(a, b)
	if err != nil {
		return false, fmt.Errorf("match %s: %w", value.Label(a), err)
	}
	return c == nil, nil
}

func anonymous(o *value.Object) bool {
	return o.ID() == ""
}

// duplicates flags objects whose identity already appeared earlier on the
// same side. Anonymous objects never collide.
func (r *Reconciler) duplicates(policy omf.Policy, items []value.Value, side string) []bool {
	dup := make([]bool, len(items))
	var seen []*value.Object
	for i, v := range items {
		o, ok := v.(*value.Object)
		if !ok || anonymous(o) {
			continue
		}
		for _, s := range seen {
			if s.Type() == o.Type() && omf.SameObject(policy, s, o) {
				dup[i] = true
				break
			}
		}
		if dup[i] {
			if r.Logger != nil {
				r.Logger.Warn("Duplicate identity in list",
					zap.String("side", side),
					zap.String("type", o.Type()),
					zap.String("id", o.ID()),
					zap.Int("index", i))
			}
			continue
		}
		seen = append(seen, o)
	}
	return dup
}
