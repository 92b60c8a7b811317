// pkg/config/config.go
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// SimulationConfig contains the scenario and tuning for one simulation run
type SimulationConfig struct {
	Name      string        `json:"name" yaml:"name" toml:"name"`
	Bounds    BoundsConfig  `json:"bounds" yaml:"bounds" toml:"bounds"`
	Physics   PhysicsConfig `json:"physics" yaml:"physics" toml:"physics"`
	Clock     ClockConfig   `json:"clock" yaml:"clock" toml:"clock"`
	Display   DisplayConfig `json:"display" yaml:"display" toml:"display"`
	AutoOrbit bool          `json:"autoOrbit,omitempty" yaml:"autoOrbit,omitempty" toml:"autoOrbit,omitempty"`
	Bodies    []BodyConfig  `json:"bodies" yaml:"bodies" toml:"bodies"`
}

// BoundsConfig is the reflecting rectangle, in world units
type BoundsConfig struct {
	Width  float64 `json:"width" yaml:"width" toml:"width"`
	Height float64 `json:"height" yaml:"height" toml:"height"`
}

// PhysicsConfig contains physics-related configuration
type PhysicsConfig struct {
	Gravity    float64 `json:"gravity" yaml:"gravity" toml:"gravity"`
	Elasticity float64 `json:"elasticity" yaml:"elasticity" toml:"elasticity"`
}

// ClockConfig controls the fixed-step loop
type ClockConfig struct {
	TickRate   int `json:"tickRate" yaml:"tickRate" toml:"tickRate"`
	FrameRate  int `json:"frameRate" yaml:"frameRate" toml:"frameRate"`
	MaxCatchUp int `json:"maxCatchUp" yaml:"maxCatchUp" toml:"maxCatchUp"`
}

// DisplayConfig holds renderer and input settings. None of it affects physics.
type DisplayConfig struct {
	Title       string  `json:"title" yaml:"title" toml:"title"`
	TrailEvery  int     `json:"trailEvery" yaml:"trailEvery" toml:"trailEvery"`
	TrailLength int     `json:"trailLength" yaml:"trailLength" toml:"trailLength"`
	LaunchScale float64 `json:"launchScale" yaml:"launchScale" toml:"launchScale"`
	LaunchBody  int     `json:"launchBody" yaml:"launchBody" toml:"launchBody"` // -1 selects the last body
	ShowFPS     bool    `json:"showFPS" yaml:"showFPS" toml:"showFPS"`
	Audio       bool    `json:"audio" yaml:"audio" toml:"audio"`
}

// BodyConfig describes one initial body
type BodyConfig struct {
	Name   string  `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty"`
	Mass   float64 `json:"mass" yaml:"mass" toml:"mass"`
	Radius float64 `json:"radius,omitempty" yaml:"radius,omitempty" toml:"radius,omitempty"` // 0 derives 2 × mass
	X      float64 `json:"x" yaml:"x" toml:"x"`
	Y      float64 `json:"y" yaml:"y" toml:"y"`
	VX     float64 `json:"vx" yaml:"vx" toml:"vx"`
	VY     float64 `json:"vy" yaml:"vy" toml:"vy"`
	Static bool    `json:"static,omitempty" yaml:"static,omitempty" toml:"static,omitempty"`
	Color  string  `json:"color,omitempty" yaml:"color,omitempty" toml:"color,omitempty"` // "#rrggbb"
}

// Format is a config file encoding
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// ErrUnknownFormat is returned for unsupported file extensions
var ErrUnknownFormat = errors.New("unknown config format")

// FormatFromPath picks the encoding from the file extension
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("%q: %w", path, ErrUnknownFormat)
	}
}

// LoadConfig loads a configuration from a file. Fields missing from the file
// keep their DefaultConfig values; a file without bodies keeps the default bodies.
func LoadConfig(path string) (*SimulationConfig, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return config, nil
}

// Decode parses data in the given format on top of the defaults
func Decode(data []byte, format Format) (*SimulationConfig, error) {
	config := DefaultConfig()
	defaultBodies := config.Bodies
	// decoders reuse slice elements, so start from an empty slice
	config.Bodies = nil

	var err error
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, config)
	case FormatYAML:
		err = yaml.Unmarshal(data, config)
	case FormatTOML:
		err = toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields().Decode(config)
	default:
		err = fmt.Errorf("%q: %w", format, ErrUnknownFormat)
	}
	if err != nil {
		return nil, err
	}

	if len(config.Bodies) == 0 {
		config.Bodies = defaultBodies
	}
	return config, nil
}

// Encode serializes the configuration in the given format
func Encode(config *SimulationConfig, format Format) ([]byte, error) {
	if config == nil {
		return nil, errors.New("nil config")
	}
	switch format {
	case FormatJSON:
		return json.MarshalIndent(config, "", "  ")
	case FormatYAML:
		return yaml.Marshal(config)
	case FormatTOML:
		return toml.Marshal(config)
	default:
		return nil, fmt.Errorf("%q: %w", format, ErrUnknownFormat)
	}
}

// SaveConfig saves a configuration to a file, encoded by its extension
func SaveConfig(config *SimulationConfig, path string) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	data, err := Encode(config, format)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultConfig returns the reference scenario: six bodies in a 900×900 box
func DefaultConfig() *SimulationConfig {
	return &SimulationConfig{
		Name: "gravity",
		Bounds: BoundsConfig{
			Width:  900,
			Height: 900,
		},
		Physics: PhysicsConfig{
			Gravity:    5,
			Elasticity: 1.0,
		},
		Clock: ClockConfig{
			TickRate:   120,
			FrameRate:  60,
			MaxCatchUp: 8,
		},
		Display: DisplayConfig{
			Title:       "gravity",
			TrailEvery:  4,
			TrailLength: 1000,
			LaunchScale: 0.05,
			LaunchBody:  -1,
			ShowFPS:     true,
		},
		Bodies: []BodyConfig{
			{Mass: 10, Radius: 20, X: 450, Y: 450},
			{Mass: 10, Radius: 20, X: 50, Y: 50, VX: 0.1, VY: 0.1},
			{Mass: 1, Radius: 5, X: 400, Y: 12},
			{Mass: 10, Radius: 20, X: 23, Y: 400, VY: -0.5},
			{Mass: 10, Radius: 20, X: 900, Y: 800, VX: -0.2, VY: -0.1},
			{Mass: 1, Radius: 5, X: 750, Y: 250},
		},
	}
}

// LaunchIndex resolves Display.LaunchBody to a body index, or -1 when there are no bodies
func (c *SimulationConfig) LaunchIndex() int {
	n := len(c.Bodies)
	if n == 0 {
		return -1
	}
	if c.Display.LaunchBody < 0 || c.Display.LaunchBody >= n {
		return n - 1
	}
	return c.Display.LaunchBody
}
