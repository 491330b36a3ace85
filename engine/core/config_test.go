package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfigKeepsDefaults(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
[application]
name = "Gravity"

[renderer]
backend = "headless"
`))
	require.NoError(t, err)

	assert.Equal(t, "Gravity", cfg.Application.Name)
	assert.Equal(t, uint32(720), cfg.Application.Width)
	assert.Equal(t, uint32(720), cfg.Application.Height)
	assert.Equal(t, "headless", cfg.Renderer.Backend)
	assert.Equal(t, uint32(4), cfg.Renderer.SampleCount)
	assert.Equal(t, "mailbox", cfg.Renderer.PresentMode)
}

func TestParseConfigBodies(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
[[simulation.bodies]]
mass = 100000
radius = 0.1
position = [-0.5, 0.0]
velocity = [0.0, 0.001]
color = [0.0, 0.5, 0.5]

[[simulation.bodies]]
mass = 1000
radius = 0.05
position = [0.5, 0.0]
`))
	require.NoError(t, err)
	require.Len(t, cfg.Simulation.Bodies, 2)

	first := cfg.Simulation.Bodies[0]
	assert.Equal(t, uint32(100000), first.Mass)
	assert.Equal(t, [2]float32{-0.5, 0}, first.Position)
	assert.Equal(t, [2]float32{0, 0.001}, first.Velocity)
	assert.Equal(t, []float32{0, 0.5, 0.5}, first.Color)
	assert.Nil(t, cfg.Simulation.Bodies[1].Color)
}

func TestParseConfigRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		toml string
	}{
		{"zero width", "[application]\nwidth = 0"},
		{"sample count", "[renderer]\nsample_count = 3"},
		{"backend", "[renderer]\nbackend = \"metal\""},
		{"present mode", "[renderer]\npresent_mode = \"vsync\""},
		{"radius", "[[simulation.bodies]]\nmass = 1\nradius = 0.0"},
		{"color", "[[simulation.bodies]]\nmass = 1\nradius = 0.1\ncolor = [1.0]"},
		{"syntax", "[application\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tt.toml))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "anima2d.toml")
	require.NoError(t, os.WriteFile(path, []byte("[application]\nwidth = 800\nheight = 600\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, uint32(800), cfg.Application.Width)
	assert.Equal(t, uint32(600), cfg.Application.Height)
}

func TestConfigPathFromEnv(t *testing.T) {
	t.Setenv(ConfigPathEnv, "/tmp/custom.toml")
	path, err := ConfigPath()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/custom.toml", path)

	t.Setenv(ConfigPathEnv, "")
	path, err = ConfigPath()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfigFile, path)
}
