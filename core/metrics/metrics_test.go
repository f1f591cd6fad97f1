package metrics

import (
	"errors"
	"testing"
	"time"

	"schemadiff/core/change"
	"schemadiff/core/value"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRecorder_ObserveDiff tests outcome and change counters.
func TestRecorder_ObserveDiff(t *testing.T) {
	reg := prometheus.NewRegistry()
	r, err := New(reg)
	require.NoError(t, err)

	c := change.NewMulti(change.ObjectModified, []change.Change{
		change.NewObjectAttrModified("name", change.NewSimpleValue(value.String("a"), value.String("b"))),
	})

	r.ObserveDiff(time.Now(), nil, nil)
	r.ObserveDiff(time.Now(), c, nil)
	r.ObserveDiff(time.Now(), nil, errors.New("boom"))

	assert.Equal(t, 1.0, testutil.ToFloat64(r.runs.WithLabelValues(OutcomeEqual)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.runs.WithLabelValues(OutcomeChanged)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.runs.WithLabelValues(OutcomeError)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.changes.WithLabelValues("SimpleValue")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.changes.WithLabelValues("ObjectAttrModified")))
}

// TestRecorder_DuplicateRegistration tests that registering twice fails.
func TestRecorder_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := New(reg)
	require.NoError(t, err)
	_, err = New(reg)
	assert.Error(t, err)
}

// TestRecorder_Nil tests that a nil recorder is a no-op.
func TestRecorder_Nil(t *testing.T) {
	var r *Recorder
	assert.NotPanics(t, func() { r.ObserveDiff(time.Now(), nil, nil) })
}
