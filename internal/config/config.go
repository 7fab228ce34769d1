// Package config provides the game configuration. Values start from
// DefaultConfig and are overlaid by an optional YAML file, so a file only
// needs the keys it changes.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"chosenoffset.com/skyhop/internal/assets"
	"chosenoffset.com/skyhop/internal/logging"
	"chosenoffset.com/skyhop/internal/platform"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds all settings for a run
type Config struct {
	Window  WindowConfig   `yaml:"window"`
	Physics PhysicsConfig  `yaml:"physics"`
	Player  PlayerConfig   `yaml:"player"`
	Boost   BoostConfig    `yaml:"boost"`
	Level   LevelConfig    `yaml:"level"`
	Logging logging.Config `yaml:"logging"`
}

// WindowConfig defines the window and logical screen
type WindowConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	Title     string `yaml:"title"`
	Resizable bool   `yaml:"resizable"`
}

// PhysicsConfig defines arcade physics settings
type PhysicsConfig struct {
	GravityX     float64 `yaml:"gravity_x"`
	GravityY     float64 `yaml:"gravity_y"`
	MaxFallSpeed float64 `yaml:"max_fall_speed"` // 0 disables the cap
	Debug        bool    `yaml:"debug"`          // Draw body outlines
}

// PlayerConfig defines the player's movement and skin
type PlayerConfig struct {
	Speed     float64  `yaml:"speed"`      // Horizontal speed in px/s
	JumpSpeed float64  `yaml:"jump_speed"` // Upward launch speed in px/s
	Color     string   `yaml:"color"`      // Skin used by the player
	Colors    []string `yaml:"colors"`     // Skins loaded at startup
	SpawnX    float64  `yaml:"spawn_x"`
	SpawnY    float64  `yaml:"spawn_y"`
	Facing    string   `yaml:"facing"` // Initial idle facing: left or right
}

// BoostConfig defines boost platform behavior
type BoostConfig struct {
	LaunchSpeed float64 `yaml:"launch_speed"` // Upward speed given on contact
}

// GoalConfig is the area that ends the level when entered
type GoalConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

// LevelConfig declares the platforms and end conditions
type LevelConfig struct {
	Name      string               `yaml:"name"`
	Platforms []platform.Placement `yaml:"platforms"`
	Goal      GoalConfig           `yaml:"goal"`
	FallLimit float64              `yaml:"fall_limit"` // Y beyond which the player is lost
}

// DefaultConfig returns the stock level: 800x600, gravity 300, speed 400.
func DefaultConfig() *Config {
	return &Config{
		Window: WindowConfig{
			Width:     800,
			Height:    600,
			Title:     "Skyhop",
			Resizable: false,
		},
		Physics: PhysicsConfig{
			GravityX:     0,
			GravityY:     300,
			MaxFallSpeed: 900,
		},
		Player: PlayerConfig{
			Speed:     400,
			JumpSpeed: 250,
			Color:     "red",
			Colors:    []string{"red", "blue"},
			SpawnX:    100,
			SpawnY:    500,
			Facing:    "right",
		},
		Boost: BoostConfig{
			LaunchSpeed: 450,
		},
		Level: LevelConfig{
			Name: "meadow",
			Platforms: []platform.Placement{
				{Type: platform.TypeGround, X: 64, Y: 584, Scale: 2},
				{Type: platform.TypeGround, X: 192, Y: 584, Scale: 2},
				{Type: platform.TypeGround, X: 320, Y: 584, Scale: 2},
				{Type: platform.TypeGround, X: 576, Y: 584, Scale: 2},
				{Type: platform.TypeGround, X: 704, Y: 584, Scale: 2},
				{Type: platform.TypeBoost, X: 320, Y: 556},
				{Type: platform.TypeGround, X: 560, Y: 420, Scale: 1.5},
				{Type: platform.TypeBoost, X: 560, Y: 396},
				{Type: platform.TypeGround, X: 720, Y: 260, Scale: 1.5},
			},
			Goal:      GoalConfig{X: 690, Y: 180, W: 60, H: 64},
			FallLimit: 700,
		},
		Logging: logging.DefaultConfig(),
	}
}

// Load reads a YAML config file over the defaults. A missing file yields
// the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings the game relies on.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalidConfig, c.Window.Width, c.Window.Height)
	}
	if c.Player.Speed <= 0 {
		return fmt.Errorf("%w: player speed must be positive, got %v", ErrInvalidConfig, c.Player.Speed)
	}
	if c.Player.JumpSpeed < 0 || c.Boost.LaunchSpeed < 0 {
		return fmt.Errorf("%w: jump and boost speeds must not be negative", ErrInvalidConfig)
	}
	if c.Physics.MaxFallSpeed < 0 {
		return fmt.Errorf("%w: max fall speed must not be negative", ErrInvalidConfig)
	}
	if c.Player.Facing != "left" && c.Player.Facing != "right" {
		return fmt.Errorf("%w: player facing must be left or right, got %q", ErrInvalidConfig, c.Player.Facing)
	}
	if len(c.Player.Colors) == 0 {
		return fmt.Errorf("%w: at least one player color is required", ErrInvalidConfig)
	}
	for _, color := range c.Player.Colors {
		if _, ok := assets.SkinPalette[color]; !ok {
			return fmt.Errorf("%w: unknown player color %q (known: %v)", ErrInvalidConfig, color, assets.Skins())
		}
	}
	if !slices.Contains(c.Player.Colors, c.Player.Color) {
		return fmt.Errorf("%w: player color %q is not in colors %v", ErrInvalidConfig, c.Player.Color, c.Player.Colors)
	}
	if c.Level.Goal.W <= 0 || c.Level.Goal.H <= 0 {
		return fmt.Errorf("%w: goal area must have positive size", ErrInvalidConfig)
	}
	for i, p := range c.Level.Platforms {
		if !platform.KnownType(p.Type) {
			return fmt.Errorf("%w: platform %d has unknown type %q", ErrInvalidConfig, i, p.Type)
		}
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}
