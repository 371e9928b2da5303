package property

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdziat/cloud-schedule/pkg/core"
)

type point struct {
	X, Y uint32
}

type pointAdapter struct{}

func (pointAdapter) Append(v point, w core.ScalarWriter) error {
	if err := w.AppendScalar(v.X); err != nil {
		return err
	}
	return w.AppendScalar(v.Y)
}

func (pointAdapter) Read(r core.ScalarReader) (point, error) {
	var v point
	var err error
	if v.X, err = r.ReadScalar(); err != nil {
		return point{}, err
	}
	if v.Y, err = r.ReadScalar(); err != nil {
		return point{}, err
	}
	return v, nil
}

func fixedWallClock(ts time.Time) Option {
	return WithWallClock(func() time.Time { return ts })
}

func TestNew_AppliesInitialToBothSides(t *testing.T) {
	p := New("cursor", point{1, 2}, pointAdapter{})

	assert.Equal(t, "cursor", p.Name())
	assert.Equal(t, point{1, 2}, p.Local())
	assert.Equal(t, point{1, 2}, p.Cloud())
	assert.False(t, p.IsDivergent())
	assert.True(t, p.LastLocalChange().IsZero())
}

func TestSet_MarksDivergenceAndTimestamp(t *testing.T) {
	ts := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	p := New("cursor", point{}, pointAdapter{}, fixedWallClock(ts))

	p.Set(point{3, 4})

	assert.Equal(t, point{3, 4}, p.Local())
	assert.Equal(t, point{}, p.Cloud())
	assert.True(t, p.IsDivergent())
	assert.Equal(t, ts, p.LastLocalChange())
}

func TestSet_SameValueIsNotDivergent(t *testing.T) {
	p := New("cursor", point{1, 1}, pointAdapter{})

	p.Set(point{1, 1})

	assert.False(t, p.IsDivergent())
	assert.False(t, p.LastLocalChange().IsZero(), "set still counts as a touch")
}

func TestSetCloud_KeepsLocal(t *testing.T) {
	p := New("cursor", point{}, pointAdapter{})
	p.Set(point{5, 6})

	p.SetCloud(point{1, 2})

	assert.Equal(t, point{5, 6}, p.Local())
	assert.Equal(t, point{1, 2}, p.Cloud())
	assert.True(t, p.IsDivergent())
}

func TestPush_ReconcilesCloud(t *testing.T) {
	p := New("cursor", point{}, pointAdapter{})
	p.Set(point{5, 6})

	p.Push()

	assert.Equal(t, point{5, 6}, p.Cloud())
	assert.False(t, p.IsDivergent())
}

func TestPull_DiscardsLocalChange(t *testing.T) {
	p := New("cursor", point{1, 1}, pointAdapter{})
	p.Set(point{9, 9})

	p.Pull()

	assert.Equal(t, point{1, 1}, p.Local())
	assert.False(t, p.IsDivergent())
}

func TestPull_RunsUpdateHooksOnChange(t *testing.T) {
	p := New("cursor", point{}, pointAdapter{})

	var calls []point
	p.OnUpdate(func(previous, current point) {
		calls = append(calls, previous, current)
	})

	var seq core.ScalarSlice
	require.NoError(t, pointAdapter{}.Append(point{7, 8}, &seq))
	require.NoError(t, p.SetAttributes(&seq))

	p.Pull()
	p.Pull() // no change, no hook

	assert.Equal(t, []point{{0, 0}, {7, 8}}, calls)
}

func TestAttributes_RoundTrip(t *testing.T) {
	src := New("cursor", point{}, pointAdapter{})
	src.Set(point{11, 12})

	var seq core.ScalarSlice
	require.NoError(t, src.AppendAttributes(&seq))
	assert.Equal(t, core.ScalarSlice{11, 12}, seq)

	dst := New("cursor", point{}, pointAdapter{})
	require.NoError(t, dst.SetAttributes(&seq))

	assert.Equal(t, src.Local(), dst.Cloud())
	assert.Equal(t, point{}, dst.Local(), "reading only touches the cloud side")
}

func TestSetAttributes_TruncatedLeavesCloudUntouched(t *testing.T) {
	p := New("cursor", point{1, 2}, pointAdapter{})

	seq := core.ScalarSlice{42}
	err := p.SetAttributes(&seq)

	assert.True(t, errors.Is(err, core.ErrTruncatedAttributes))
	assert.Equal(t, point{1, 2}, p.Cloud())
}

func TestLoad_RestoresWithoutHooks(t *testing.T) {
	p := New("cursor", point{}, pointAdapter{})
	hookCalled := false
	p.OnUpdate(func(_, _ point) { hookCalled = true })

	ts := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	p.Load(point{1, 1}, point{2, 2}, ts)

	assert.Equal(t, point{1, 1}, p.Local())
	assert.Equal(t, point{2, 2}, p.Cloud())
	assert.Equal(t, ts, p.LastLocalChange())
	assert.True(t, p.IsDivergent())
	assert.False(t, hookCalled)
}

func TestWithWallClock_IgnoresNil(t *testing.T) {
	p := New("cursor", point{}, pointAdapter{}, WithWallClock(nil))

	p.Set(point{1, 0})

	assert.False(t, p.LastLocalChange().IsZero())
}
