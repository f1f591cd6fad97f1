package reconcile

import (
	"fmt"
	"math/rand"
	"testing"

	"schemadiff/core/change"
	"schemadiff/core/omf"
	"schemadiff/core/value"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func ints(xs ...int64) []value.Value {
	out := make([]value.Value, len(xs))
	for i, x := range xs {
		out[i] = value.Int(x)
	}
	return out
}

func objects(ids ...string) []value.Value {
	out := make([]value.Value, len(ids))
	for i, id := range ids {
		out[i] = value.NewObject("T", id).Set("name", value.String(id))
	}
	return out
}

func countTypes(ops []change.Change) map[change.Type]int {
	counts := map[change.Type]int{}
	for _, op := range ops {
		counts[op.Type()]++
	}
	return counts
}

func scalarsOf(t *testing.T, items []value.Value) []int64 {
	t.Helper()
	out := make([]int64, len(items))
	for i, v := range items {
		s, ok := v.(*value.Scalar)
		require.True(t, ok)
		out[i] = s.Int()
	}
	return out
}

func idsOf(t *testing.T, items []value.Value) []string {
	t.Helper()
	out := make([]string, len(items))
	for i, v := range items {
		o, ok := v.(*value.Object)
		require.True(t, ok)
		out[i] = o.ID()
	}
	return out
}

// scalarDiff compares scalars exactly and everything else by instance.
func scalarDiff(a, b value.Value) (change.Change, error) {
	sa, oka := a.(*value.Scalar)
	sb, okb := b.(*value.Scalar)
	if oka && okb {
		if (omf.Default{}).Equal(sa, sb) {
			return nil, nil
		}
		return change.NewSimpleValue(a, b), nil
	}
	return nil, nil
}

// TestReconcile_PureReorder tests that a permutation yields only moves.
func TestReconcile_PureReorder(t *testing.T) {
	r := &Reconciler{Policy: omf.Default{}}
	source := ints(0, 1, 2, 3, 4, 5)
	target := ints(0, 1, 5, 3, 4, 2)

	ops, err := r.Reconcile(source, target)
	require.NoError(t, err)
	require.NotEmpty(t, ops)

	counts := countTypes(ops)
	assert.Equal(t, 0, counts[change.ListItemAdded])
	assert.Equal(t, 0, counts[change.ListItemRemoved])
	assert.Equal(t, len(ops), counts[change.ListItemOrderChanged])
	assert.Equal(t, 2, counts[change.ListItemOrderChanged])

	result, err := Apply(source, ops)
	require.NoError(t, err)
	assert.Equal(t, []int64{0, 1, 5, 3, 4, 2}, scalarsOf(t, result))
}

// TestReconcile_RemoveTail tests a single trailing removal.
func TestReconcile_RemoveTail(t *testing.T) {
	r := &Reconciler{Policy: omf.Default{}}
	source := ints(0, 1, 2)

	ops, err := r.Reconcile(source, ints(0, 1))
	require.NoError(t, err)
	require.Len(t, ops, 1)

	rm, ok := ops[0].(*change.ListItemRemovedChange)
	require.True(t, ok)
	assert.Same(t, source[2], rm.Value())
}

// TestReconcile_Empty tests that empty lists produce no operations.
func TestReconcile_Empty(t *testing.T) {
	r := &Reconciler{}
	ops, err := r.Reconcile(nil, nil)
	assert.NoError(t, err)
	assert.Empty(t, ops)

	ops, err = r.Reconcile(ints(1, 2), ints(1, 2))
	assert.NoError(t, err)
	assert.Empty(t, ops)
}

// TestReconcile_AddAnchors tests that additions are anchored to their
// predecessor.
func TestReconcile_AddAnchors(t *testing.T) {
	r := &Reconciler{Policy: omf.Default{}}
	source := ints(1, 3)
	target := ints(0, 1, 2, 3, 4)

	ops, err := r.Reconcile(source, target)
	require.NoError(t, err)
	require.Len(t, ops, 3)

	head := ops[0].(*change.ListItemAddedChange)
	assert.Same(t, target[0], head.Value())
	assert.Nil(t, head.Prev())

	mid := ops[1].(*change.ListItemAddedChange)
	assert.Same(t, target[2], mid.Value())
	// preserved elements are referenced by their source instance
	assert.Same(t, source[0], mid.Prev())

	tail := ops[2].(*change.ListItemAddedChange)
	assert.Same(t, source[1], tail.Prev())

	result, err := Apply(source, ops)
	require.NoError(t, err)
	assert.Equal(t, []int64{0, 1, 2, 3, 4}, scalarsOf(t, result))
}

// TestReconcile_ChainedAdds tests that an add after another add refers to
// the added instance.
func TestReconcile_ChainedAdds(t *testing.T) {
	r := &Reconciler{Policy: omf.Default{}}
	target := ints(7, 8)

	ops, err := r.Reconcile(nil, target)
	require.NoError(t, err)
	require.Len(t, ops, 2)
	assert.Same(t, target[0], ops[1].(*change.ListItemAddedChange).Prev())

	result, err := Apply(nil, ops)
	require.NoError(t, err)
	assert.Equal(t, []int64{7, 8}, scalarsOf(t, result))
}

// TestReconcile_ObjectsModified tests identity matching with content changes.
func TestReconcile_ObjectsModified(t *testing.T) {
	source := objects("a", "b", "c")
	target := objects("a", "b", "c")
	target[1].(*value.Object).Set("name", value.String("B"))

	r := &Reconciler{
		Policy: omf.Default{},
		Diff: func(a, b value.Value) (change.Change, error) {
			na := a.(*value.Object).GetString("name")
			nb := b.(*value.Object).GetString("name")
			if na == nb {
				return nil, nil
			}
			return change.NewSimpleValue(value.String(na), value.String(nb)), nil
		},
	}

	ops, err := r.Reconcile(source, target)
	require.NoError(t, err)
	require.Len(t, ops, 1)

	mod, ok := ops[0].(*change.ListItemModifiedChange)
	require.True(t, ok)
	assert.Same(t, source[1], mod.Old())
	assert.Same(t, target[1], mod.New())
	assert.Same(t, mod, mod.Subchange().Parent())

	result, err := Apply(source, ops)
	require.NoError(t, err)
	assert.Same(t, target[1], result[1])
	assert.Same(t, source[0], result[0])
}

// TestReconcile_MixedOperations tests removals, additions and moves together
// against the replay property.
func TestReconcile_MixedOperations(t *testing.T) {
	tests := []struct {
		name           string
		source, target []string
	}{
		{name: "swap", source: []string{"a", "b"}, target: []string{"b", "a"}},
		{name: "rotate", source: []string{"a", "b", "c", "d"}, target: []string{"d", "a", "b", "c"}},
		{name: "replace all", source: []string{"a", "b"}, target: []string{"c", "d"}},
		{name: "move and add", source: []string{"a", "b", "c"}, target: []string{"c", "x", "a", "y"}},
		{name: "reverse", source: []string{"a", "b", "c", "d", "e"}, target: []string{"e", "d", "c", "b", "a"}},
		{name: "clear", source: []string{"a", "b"}, target: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &Reconciler{Policy: omf.Default{}}
			source := objects(tt.source...)
			target := objects(tt.target...)

			ops, err := r.Reconcile(source, target)
			require.NoError(t, err)

			result, err := Apply(source, ops)
			require.NoError(t, err)
			want := tt.target
			if want == nil {
				want = []string{}
			}
			assert.Equal(t, want, idsOf(t, result))
		})
	}
}

// TestReconcile_StabilityBias tests that a single displaced element is the
// only one reported as moved.
func TestReconcile_StabilityBias(t *testing.T) {
	r := &Reconciler{Policy: omf.Default{}}
	source := objects("a", "b", "c", "d")
	target := objects("b", "c", "d", "a")

	ops, err := r.Reconcile(source, target)
	require.NoError(t, err)
	require.Len(t, ops, 1)

	mv, ok := ops[0].(*change.ListItemOrderChangedChange)
	require.True(t, ok)
	assert.Equal(t, "a", mv.Old().(*value.Object).ID())
	assert.Equal(t, "d", mv.Prev().(*value.Object).ID())
	assert.Nil(t, mv.Subchange())
}

// TestReconcile_DuplicateIdentity tests that duplicates are unmatched and
// logged.
func TestReconcile_DuplicateIdentity(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	r := &Reconciler{Policy: omf.Default{}, Logger: zap.New(core)}

	source := objects("a", "a", "b")
	target := objects("a", "b")

	ops, err := r.Reconcile(source, target)
	require.NoError(t, err)
	require.Len(t, ops, 1)

	rm, ok := ops[0].(*change.ListItemRemovedChange)
	require.True(t, ok)
	assert.Same(t, source[1], rm.Value())
	assert.Equal(t, 1, logs.FilterMessage("Duplicate identity in list").Len())

	result, err := Apply(source, ops)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, idsOf(t, result))
}

// TestReconcile_ScalarDuplicates tests that repeated scalars are ordinary
// elements.
func TestReconcile_ScalarDuplicates(t *testing.T) {
	r := &Reconciler{Policy: omf.Default{}, Diff: scalarDiff}
	source := ints(1, 1, 2)
	target := ints(1, 2, 1)

	ops, err := r.Reconcile(source, target)
	require.NoError(t, err)
	assert.Len(t, ops, 1)

	result, err := Apply(source, ops)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 1}, scalarsOf(t, result))
}

// TestReconcile_KindMismatch tests that elements of different kinds never
// match.
func TestReconcile_KindMismatch(t *testing.T) {
	r := &Reconciler{Policy: omf.Default{}}
	source := []value.Value{value.Int(1)}
	target := []value.Value{value.NewObject("T", "1")}

	ops, err := r.Reconcile(source, target)
	require.NoError(t, err)
	counts := countTypes(ops)
	assert.Equal(t, 1, counts[change.ListItemRemoved])
	assert.Equal(t, 1, counts[change.ListItemAdded])
}

// TestApply_UnknownItem tests references to instances outside the list.
func TestApply_UnknownItem(t *testing.T) {
	source := ints(1, 2)
	stray := value.Int(9)

	_, err := Apply(source, []change.Change{change.NewListItemRemoved(stray)})
	assert.ErrorIs(t, err, ErrUnknownItem)

	_, err = Apply(source, []change.Change{change.NewListItemAdded(value.Int(3), stray)})
	assert.ErrorIs(t, err, ErrUnknownItem)

	_, err = Apply(source, []change.Change{change.NewListItemOrderChanged(stray, stray, nil, nil)})
	assert.ErrorIs(t, err, ErrUnknownItem)

	_, err = Apply(source, []change.Change{change.NewValueAdded(stray)})
	assert.ErrorIs(t, err, ErrUnexpectedChange)
}

// nameDiff reports objects whose name differs.
func nameDiff(a, b value.Value) (change.Change, error) {
	na := a.(*value.Object).GetString("name")
	nb := b.(*value.Object).GetString("name")
	if na == nb {
		return nil, nil
	}
	return change.NewSimpleValue(value.String(na), value.String(nb)), nil
}

// TestReconcile_ReplayRandom tests that replaying the operations on the
// source always reproduces the target.
func TestReconcile_ReplayRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	t.Run("scalars with repeats", func(t *testing.T) {
		r := &Reconciler{Policy: omf.Default{}}
		for n := 0; n < 500; n++ {
			src := make([]int64, rng.Intn(9))
			for i := range src {
				src[i] = int64(rng.Intn(4))
			}
			dst := make([]int64, rng.Intn(9))
			for i := range dst {
				dst[i] = int64(rng.Intn(4))
			}

			source := ints(src...)
			ops, err := r.Reconcile(source, ints(dst...))
			require.NoError(t, err)

			result, err := Apply(source, ops)
			require.NoError(t, err, "%v -> %v", src, dst)
			assert.Equal(t, dst, append([]int64{}, scalarsOf(t, result)...), "%v -> %v", src, dst)
		}
	})

	t.Run("objects", func(t *testing.T) {
		r := &Reconciler{Policy: omf.Default{}, Diff: nameDiff}
		pool := []string{"a", "b", "c", "d", "e", "f", "g"}
		pick := func() []string {
			ids := append([]string{}, pool...)
			rng.Shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })
			return ids[:rng.Intn(len(ids)+1)]
		}

		for n := 0; n < 500; n++ {
			source, target := objects(pick()...), objects(pick()...)
			for _, v := range target {
				if rng.Intn(3) == 0 {
					o := v.(*value.Object)
					o.Set("name", value.String(o.ID()+"'"))
				}
			}

			ops, err := r.Reconcile(source, target)
			require.NoError(t, err)

			result, err := Apply(source, ops)
			require.NoError(t, err)
			require.Equal(t, idsOf(t, target), append([]string{}, idsOf(t, result)...))
			for i, v := range result {
				assert.Equal(t, target[i].(*value.Object).GetString("name"), v.(*value.Object).GetString("name"),
					fmt.Sprintf("case %d element %d", n, i))
			}
		}
	})
}

// TestReconcile_AnonymousObjects tests that objects without an id match by
// content instead of colliding as duplicates.
func TestReconcile_AnonymousObjects(t *testing.T) {
	anon := func(names ...string) []value.Value {
		out := make([]value.Value, len(names))
		for i, n := range names {
			out[i] = value.NewObject("Trigger", "").Set("name", value.String(n))
		}
		return out
	}

	core, logs := observer.New(zap.WarnLevel)
	r := &Reconciler{Policy: omf.Default{}, Diff: nameDiff, Logger: zap.New(core)}

	ops, err := r.Reconcile(anon("x", "y", "z"), anon("x", "y", "z"))
	require.NoError(t, err)
	assert.Empty(t, ops)
	assert.Zero(t, logs.Len())

	source := anon("x", "y", "z")
	ops, err = r.Reconcile(source, anon("z", "x", "w"))
	require.NoError(t, err)
	assert.Equal(t, map[change.Type]int{
		change.ListItemRemoved:      1,
		change.ListItemAdded:        1,
		change.ListItemOrderChanged: 1,
	}, countTypes(ops))

	result, err := Apply(source, ops)
	require.NoError(t, err)
	names := make([]string, len(result))
	for i, v := range result {
		names[i] = v.(*value.Object).GetString("name")
	}
	assert.Equal(t, []string{"z", "x", "w"}, names)

	// an anonymous object never matches one with an id
	ops, err = r.Reconcile(anon("x"), []value.Value{value.NewObject("Trigger", "x").Set("name", value.String("x"))})
	require.NoError(t, err)
	assert.Equal(t, map[change.Type]int{change.ListItemRemoved: 1, change.ListItemAdded: 1}, countTypes(ops))
}
