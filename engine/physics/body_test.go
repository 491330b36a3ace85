package physics

import (
	"testing"

	"github.com/spaghettifunk/anima2d/engine/core"
	"github.com/spaghettifunk/anima2d/engine/math"
	"github.com/spaghettifunk/anima2d/engine/renderer/headless"
	"github.com/spaghettifunk/anima2d/engine/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpawnBuildsCircle(t *testing.T) {
	reg := scene.NewRegistry(headless.New())

	body := Spawn(reg, 1000, 0.1, math.NewVec2(0.5, -0.5), math.NewVec2(0, 0.001), math.NewVec2Zero())

	require.Equal(t, 1, reg.Len())
	e, err := reg.Lookup(body.Handle)
	require.NoError(t, err)
	assert.Equal(t, uint32(18*3), e.IndexCount())
	assert.Equal(t, uint64(20*8), e.VertexBuffer().Size())
	assert.Equal(t, math.NewVec2(0.5, -0.5), e.Position())
	assert.Equal(t, math.NewVec2(0.5, -0.5), body.Position)
	assert.Equal(t, uint32(1000), body.Mass)
	assert.Equal(t, float32(0.1), body.Radius)
}

func TestApplyGravityIsSymmetric(t *testing.T) {
	a := &Body{Mass: 1000, Position: math.NewVec2(-1, 0)}
	b := &Body{Mass: 1000, Position: math.NewVec2(1, 0)}

	ApplyGravity([]*Body{a, b})

	want := GravitationalConstant * 1000 / 4
	assert.InDelta(t, want, a.Acceleration.X, 1e-9)
	assert.InDelta(t, -want, b.Acceleration.X, 1e-9)
	assert.Zero(t, a.Acceleration.Y)
	assert.Zero(t, b.Acceleration.Y)
	assert.InDelta(t, 0, a.Acceleration.Add(b.Acceleration).Length(), 1e-9)
}

func TestApplyGravityScalesWithOtherMass(t *testing.T) {
	light := &Body{Mass: 1, Position: math.NewVec2(0, 0)}
	heavy := &Body{Mass: 1000, Position: math.NewVec2(0, 2)}

	ApplyGravity([]*Body{light, heavy})

	// the light body is pulled up by the heavy one
	assert.InDelta(t, GravitationalConstant*1000/4, light.Acceleration.Y, 1e-9)
	assert.InDelta(t, -GravitationalConstant*1/4, heavy.Acceleration.Y, 1e-9)
}

func TestApplyGravitySingleBody(t *testing.T) {
	a := &Body{Mass: 10, Position: math.NewVec2(0.3, 0.3)}
	ApplyGravity([]*Body{a})
	assert.Equal(t, math.NewVec2Zero(), a.Acceleration)
}

func TestIntegrateStep(t *testing.T) {
	reg := scene.NewRegistry(headless.New())
	body := Spawn(reg, 1, 0.1, math.NewVec2Zero(), math.NewVec2(1, 0), math.NewVec2Zero())

	require.NoError(t, Integrate([]*Body{body}, reg))

	assert.Equal(t, math.NewVec2(1, 0), body.Position)
	assert.Equal(t, math.NewVec2(1, 0), body.Velocity)
	assert.Equal(t, math.NewVec2Zero(), body.Acceleration)
	assert.Equal(t, math.NewVec2(1, 0), reg.GetUnchecked(0).Position())
}

func TestIntegrateAppliesAccelerationFirst(t *testing.T) {
	reg := scene.NewRegistry(headless.New())
	body := Spawn(reg, 1, 0.1, math.NewVec2(1, 1), math.NewVec2(0.5, 0), math.NewVec2(0, 0.25))

	require.NoError(t, Integrate([]*Body{body}, reg))

	assert.Equal(t, math.NewVec2(0.5, 0.25), body.Velocity)
	assert.Equal(t, math.NewVec2(1.5, 1.25), body.Position)
	assert.Equal(t, math.NewVec2(1.5, 1.25), reg.GetUnchecked(0).Position())
}

func TestIntegrateResolvesShiftedHandles(t *testing.T) {
	reg := scene.NewRegistry(headless.New())
	reg.Add()
	body := Spawn(reg, 1, 0.1, math.NewVec2Zero(), math.NewVec2(0, 1), math.NewVec2Zero())
	require.NoError(t, reg.Remove(0))

	require.NoError(t, Integrate([]*Body{body}, reg))

	assert.Equal(t, 0, body.Handle.Index)
	assert.Equal(t, math.NewVec2(0, 1), reg.GetUnchecked(0).Position())
}

func TestIntegrateReportsRemovedEntity(t *testing.T) {
	reg := scene.NewRegistry(headless.New())
	gone := Spawn(reg, 1, 0.1, math.NewVec2Zero(), math.NewVec2(1, 0), math.NewVec2Zero())
	kept := Spawn(reg, 1, 0.1, math.NewVec2Zero(), math.NewVec2(0, 1), math.NewVec2Zero())
	require.NoError(t, reg.RemoveHandle(gone.Handle))

	err := Integrate([]*Body{gone, kept}, reg)

	assert.ErrorIs(t, err, core.ErrEntityNotFound)
	assert.Equal(t, math.NewVec2(0, 1), reg.GetUnchecked(0).Position())
}

func TestSimulationOnFrame(t *testing.T) {
	reg := scene.NewRegistry(headless.New())
	sim := NewSimulation()
	a := sim.Spawn(reg, 1000, 0.1, math.NewVec2(-1, 0), math.NewVec2Zero())
	b := sim.Spawn(reg, 1000, 0.1, math.NewVec2(1, 0), math.NewVec2Zero())

	sim.OnFrame(reg)

	pull := GravitationalConstant * 1000 / 4
	assert.InDelta(t, pull, a.Velocity.X, 1e-9)
	assert.InDelta(t, -pull, b.Velocity.X, 1e-9)
	assert.InDelta(t, -1+pull, reg.GetUnchecked(0).Position().X, 1e-6)
	assert.Equal(t, uint64(1), sim.Steps())

	sim.SetPaused(true)
	sim.OnFrame(reg)
	assert.Equal(t, uint64(1), sim.Steps())
	sim.TogglePause()
	assert.False(t, sim.Paused())
	assert.Len(t, sim.Bodies(), 2)
}
