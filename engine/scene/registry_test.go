package scene

import (
	"testing"

	"github.com/spaghettifunk/anima2d/engine/core"
	"github.com/spaghettifunk/anima2d/engine/math"
	"github.com/spaghettifunk/anima2d/engine/renderer/headless"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryAddGet(t *testing.T) {
	reg := NewRegistry(headless.New())

	a, ha := reg.Add()
	b, hb := reg.Add()

	assert.Equal(t, 2, reg.Len())
	assert.Equal(t, 0, ha.Index)
	assert.Equal(t, 1, hb.Index)
	assert.NotEqual(t, ha.Generation, hb.Generation)

	got, ok := reg.Get(1)
	require.True(t, ok)
	assert.Same(t, b, got)
	assert.Same(t, a, reg.GetUnchecked(0))

	_, ok = reg.Get(2)
	assert.False(t, ok)
	_, ok = reg.Get(-1)
	assert.False(t, ok)
	assert.Panics(t, func() { reg.GetUnchecked(5) })
}

func TestRegistryRemoveShifts(t *testing.T) {
	backend := headless.New()
	reg := NewRegistry(backend)

	_, ha := reg.Add()
	b, hb := reg.Add()
	c, hc := reg.Add()
	require.Equal(t, 12, backend.LiveBuffers())

	require.NoError(t, reg.Remove(ha.Index))

	assert.Equal(t, 2, reg.Len())
	assert.Same(t, b, reg.GetUnchecked(0))
	assert.Same(t, c, reg.GetUnchecked(1))
	assert.Equal(t, 8, backend.LiveBuffers())

	// hb now points past its entity
	_, err := reg.Lookup(hb)
	assert.ErrorIs(t, err, core.ErrStaleHandle)
	_, err = reg.Lookup(ha)
	assert.ErrorIs(t, err, core.ErrStaleHandle)

	fresh, err := reg.Resolve(hb)
	require.NoError(t, err)
	assert.Equal(t, 0, fresh.Index)
	got, err := reg.Lookup(fresh)
	require.NoError(t, err)
	assert.Same(t, b, got)

	_, err = reg.Resolve(ha)
	assert.ErrorIs(t, err, core.ErrEntityNotFound)

	require.NoError(t, reg.RemoveHandle(hc))
	assert.Equal(t, 1, reg.Len())
}

func TestRegistryRemoveOutOfRange(t *testing.T) {
	reg := NewRegistry(headless.New())
	reg.Add()
	assert.ErrorIs(t, reg.Remove(1), core.ErrEntityNotFound)
	assert.Equal(t, 1, reg.Len())
}

func TestRegistryAllInOrder(t *testing.T) {
	reg := NewRegistry(headless.New())
	var want []*Entity
	for i := 0; i < 4; i++ {
		e, _ := reg.Add()
		want = append(want, e)
	}

	var got []*Entity
	for i, e := range reg.All() {
		assert.Equal(t, len(got), i)
		got = append(got, e)
	}
	assert.Equal(t, want, got)

	count := 0
	for range reg.All() {
		count++
		break
	}
	assert.Equal(t, 1, count)
}

func TestRegistryUpdateRunsBehaviors(t *testing.T) {
	reg := NewRegistry(headless.New())
	a, _ := reg.Add()
	reg.Add()

	a.SetBehavior(BehaviorFunc(func(e *Entity) {
		e.ShearBy(math.NewVec2(0.02, 0))
	}))

	reg.Update()
	reg.Update()

	assert.InDelta(t, 0.04, a.Shear().X, 1e-6)
	assert.Equal(t, math.NewVec2Zero(), reg.GetUnchecked(1).Shear())
}

func TestRegistryHandleOfAndClear(t *testing.T) {
	backend := headless.New()
	reg := NewRegistry(backend)
	reg.Add()
	e, _ := reg.Add()

	h, ok := reg.HandleOf(e)
	require.True(t, ok)
	assert.Equal(t, 1, h.Index)

	reg.Clear()
	assert.Zero(t, reg.Len())
	assert.Zero(t, backend.LiveBuffers())
	_, ok = reg.HandleOf(e)
	assert.False(t, ok)
}

func TestRegistryReleasesVacatedSlots(t *testing.T) {
	reg := NewRegistry(headless.New())
	for range 3 {
		reg.Add()
	}

	require.NoError(t, reg.Remove(0))
	backing := reg.entities[:cap(reg.entities)]
	for _, e := range backing[reg.Len():] {
		assert.Nil(t, e)
	}

	reg.Clear()
	backing = reg.entities[:cap(reg.entities)]
	for _, e := range backing {
		assert.Nil(t, e)
	}
}
