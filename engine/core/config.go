package core

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
)

const (
	DefaultConfigFile = "anima2d.toml"
	// ConfigPathEnv overrides the config file location.
	ConfigPathEnv = "ANIMA2D_CONFIG"
)

type Config struct {
	Application ApplicationSection `toml:"application"`
	Renderer    RendererSection    `toml:"renderer"`
	Assets      AssetsSection      `toml:"assets"`
	Simulation  SimulationSection  `toml:"simulation"`
}

type ApplicationSection struct {
	Name     string   `toml:"name"`
	Width    uint32   `toml:"width"`
	Height   uint32   `toml:"height"`
	PosX     uint32   `toml:"pos_x"`
	PosY     uint32   `toml:"pos_y"`
	LogLevel LogLevel `toml:"log_level"`
}

type RendererSection struct {
	// "vulkan" or "headless"
	Backend string `toml:"backend"`
	// "mailbox", "fifo" or "immediate"
	PresentMode    string `toml:"present_mode"`
	SampleCount    uint32 `toml:"sample_count"`
	Validation     bool   `toml:"validation"`
	MaxBindingSets uint32 `toml:"max_binding_sets"`
	// Frames rendered before exiting when running headless.
	HeadlessFrames uint32 `toml:"headless_frames"`
}

type AssetsSection struct {
	Dir       string `toml:"dir"`
	ShaderDir string `toml:"shader_dir"`
	HotReload bool   `toml:"hot_reload"`
}

type SimulationSection struct {
	Bodies []BodyConfig `toml:"bodies"`
}

type BodyConfig struct {
	Mass     uint32     `toml:"mass"`
	Radius   float32    `toml:"radius"`
	Position [2]float32 `toml:"position"`
	Velocity [2]float32 `toml:"velocity"`
	// Optional colour; bodies without one use the default pipeline.
	Color []float32 `toml:"color"`
}

func DefaultConfig() *Config {
	return &Config{
		Application: ApplicationSection{
			Name:     "Render Test",
			Width:    720,
			Height:   720,
			PosX:     100,
			PosY:     100,
			LogLevel: InfoLevel,
		},
		Renderer: RendererSection{
			Backend:        "vulkan",
			PresentMode:    "mailbox",
			SampleCount:    4,
			MaxBindingSets: 1024,
			HeadlessFrames: 600,
		},
		Assets: AssetsSection{
			Dir:       "assets",
			ShaderDir: "shaders",
			HotReload: true,
		},
	}
}

// ConfigPath resolves the config file location: the environment override
// if set, otherwise DefaultConfigFile. A leading ~ is expanded.
func ConfigPath() (string, error) {
	path := os.Getenv(ConfigPathEnv)
	if path == "" {
		path = DefaultConfigFile
	}
	return homedir.Expand(path)
}

// LoadConfig reads the file at path on top of the defaults. A missing
// file is not an error, the defaults are returned.
func LoadConfig(path string) (*Config, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(expanded)
	if errors.Is(err, fs.ErrNotExist) {
		LogWarn("config file %s not found, using defaults", expanded)
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, err
	}
	return ParseConfig(data)
}

// ParseConfig decodes TOML on top of the defaults and validates the result.
func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Application.Width == 0 || c.Application.Height == 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalidConfig, c.Application.Width, c.Application.Height)
	}
	switch c.Renderer.SampleCount {
	case 1, 2, 4, 8:
	default:
		return fmt.Errorf("%w: unsupported sample count %d", ErrInvalidConfig, c.Renderer.SampleCount)
	}
	switch c.Renderer.Backend {
	case "vulkan", "headless":
	default:
		return fmt.Errorf("%w: unknown renderer backend %q", ErrInvalidConfig, c.Renderer.Backend)
	}
	switch c.Renderer.PresentMode {
	case "mailbox", "fifo", "immediate":
	default:
		return fmt.Errorf("%w: unknown present mode %q", ErrInvalidConfig, c.Renderer.PresentMode)
	}
	for i, b := range c.Simulation.Bodies {
		if b.Radius <= 0 {
			return fmt.Errorf("%w: body %d has non-positive radius", ErrInvalidConfig, i)
		}
		if b.Color != nil && len(b.Color) != 3 {
			return fmt.Errorf("%w: body %d color needs 3 components", ErrInvalidConfig, i)
		}
	}
	return nil
}

// AssetDir returns the asset directory with ~ expanded.
func (c *Config) AssetDir() (string, error) {
	return homedir.Expand(c.Assets.Dir)
}
