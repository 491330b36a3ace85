package testbed

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/spaghettifunk/anima2d/engine"
	"github.com/spaghettifunk/anima2d/engine/core"
	"github.com/spaghettifunk/anima2d/engine/renderer/metadata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeShader(t *testing.T, dir, name string) {
	t.Helper()
	code := binary.LittleEndian.AppendUint32(nil, metadata.SPIRVMagic)
	for _, suffix := range []string{".vert.spv", ".frag.spv"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name+suffix), code, 0o644))
	}
}

func headlessConfig(t *testing.T) *core.Config {
	t.Helper()
	cfg := core.DefaultConfig()
	cfg.Renderer.Backend = engine.BackendHeadless
	cfg.Renderer.HeadlessFrames = 4
	cfg.Assets.Dir = t.TempDir()
	cfg.Assets.ShaderDir = t.TempDir()
	writeShader(t, cfg.Assets.ShaderDir, "basic")
	writeShader(t, cfg.Assets.ShaderDir, colorShaderName)
	require.NoError(t, os.WriteFile(filepath.Join(cfg.Assets.Dir, MarkerGeometry),
		[]byte("0,0 1,0,0\n0.1,0\n0,0.1\n~\n0 1 2\n"), 0o644))
	return cfg
}

func TestCircleColorIsStd140Sized(t *testing.T) {
	assert.Equal(t, 16, binary.Size(CircleColor{}))
}

func TestTestbedBoot(t *testing.T) {
	tg := NewTestGame(headlessConfig(t))
	e, err := engine.New(tg.Game)
	require.NoError(t, err)
	require.NoError(t, e.Initialize())

	reg := e.Renderer().Registry()
	// Three bodies, the shearing polygon and the marker.
	assert.Equal(t, 5, reg.Len())

	first, _ := reg.Get(0)
	second, _ := reg.Get(1)
	third, _ := reg.Get(2)
	assert.NotNil(t, first.Pipeline())
	assert.Nil(t, second.Pipeline())
	assert.NotNil(t, third.Pipeline())
	assert.Equal(t, uint64(16), third.ParameterSize())

	require.NoError(t, e.Run())
	assert.Equal(t, uint64(4), tg.state().simulation.Steps())

	polygon, err := reg.Lookup(tg.state().polygon)
	require.NoError(t, err)
	assert.InDelta(t, 4*shearPerFrame, polygon.Shear().X, 1e-5)

	core.InputProcessKey(core.KEY_SPACE, true)
	assert.True(t, tg.state().simulation.Paused())
	require.NoError(t, e.Run())
	assert.Equal(t, uint64(4), tg.state().simulation.Steps())

	require.NoError(t, e.Shutdown())
}
