package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Boundary policies a ball can use at the arena edge.
const (
	BoundaryReflect = "reflect"
	BoundaryWrap    = "wrap"
)

// Config describes an arena, what moves in it and how it is observed.
type Config struct {
	Arena    ArenaConfig     `json:"arena" yaml:"arena"`
	Tick     time.Duration   `json:"tick" yaml:"tick"`
	LogLevel string          `json:"log_level,omitempty" yaml:"log_level,omitempty"`
	Seed     uint64          `json:"seed,omitempty" yaml:"seed,omitempty"`
	Stream   StreamConfig    `json:"stream" yaml:"stream"`
	Balls    []BallConfig    `json:"balls" yaml:"balls"`
	Paddles  []PaddleConfig  `json:"paddles,omitempty" yaml:"paddles,omitempty"`
	Polygons []PolygonConfig `json:"polygons,omitempty" yaml:"polygons,omitempty"`
}

// ArenaConfig is the square [-HalfWidth, HalfWidth] on both axes.
type ArenaConfig struct {
	HalfWidth float64 `json:"half_width" yaml:"half_width"`
}

// StreamConfig controls the websocket snapshot stream.
type StreamConfig struct {
	Enabled    bool   `json:"enabled" yaml:"enabled"`
	ListenAddr string `json:"listen_addr,omitempty" yaml:"listen_addr,omitempty"`
	Path       string `json:"path,omitempty" yaml:"path,omitempty"`
}

type BallConfig struct {
	ID       string  `json:"id,omitempty" yaml:"id,omitempty"`
	X        float64 `json:"x" yaml:"x"`
	Y        float64 `json:"y" yaml:"y"`
	Radius   float64 `json:"radius" yaml:"radius"`
	VX       float64 `json:"vx" yaml:"vx"`
	VY       float64 `json:"vy" yaml:"vy"`
	Boundary string  `json:"boundary,omitempty" yaml:"boundary,omitempty"`
}

// PaddleConfig is a static rectangular obstacle given by center and half extents.
type PaddleConfig struct {
	X          float64 `json:"x" yaml:"x"`
	Y          float64 `json:"y" yaml:"y"`
	HalfWidth  float64 `json:"half_width" yaml:"half_width"`
	HalfHeight float64 `json:"half_height" yaml:"half_height"`
}

// PolygonConfig is a decorative regular polygon.
type PolygonConfig struct {
	X      float64 `json:"x" yaml:"x"`
	Y      float64 `json:"y" yaml:"y"`
	Radius float64 `json:"radius" yaml:"radius"`
	Sides  int     `json:"sides" yaml:"sides"`
	Legacy bool    `json:"legacy,omitempty" yaml:"legacy,omitempty"`
}

// Default returns a small arena with one reflecting ball and one paddle.
func Default() *Config {
	return &Config{
		Arena:    ArenaConfig{HalfWidth: 200},
		Tick:     16 * time.Millisecond,
		LogLevel: "info",
		Seed:     1,
		Stream:   StreamConfig{Enabled: false, ListenAddr: "127.0.0.1:8090", Path: "/ws"},
		Balls: []BallConfig{
			{ID: "ball-1", X: 0, Y: 50, Radius: 8, VX: 3, VY: -2, Boundary: BoundaryReflect},
		},
		Paddles: []PaddleConfig{
			{X: 0, Y: -150, HalfWidth: 40, HalfHeight: 4},
		},
	}
}

// LoadJSON loads config from a JSON reader.
func LoadJSON(r io.Reader) (*Config, error) {
	var c Config
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("decode json config: %w", err)
	}
	return c.finish()
}

// LoadYAML loads config from a YAML reader.
func LoadYAML(r io.Reader) (*Config, error) {
	var c Config
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("decode yaml config: %w", err)
	}
	return c.finish()
}

// LoadFile picks the decoder from the file extension.
func LoadFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return LoadJSON(f)
	case ".yaml", ".yml":
		return LoadYAML(f)
	default:
		return nil, fmt.Errorf("unsupported config extension %q", filepath.Ext(path))
	}
}

// ToYAML renders the configuration.
func (c *Config) ToYAML() ([]byte, error) {
	return yaml.Marshal(c)
}

func (c *Config) finish() (*Config, error) {
	c.ApplyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// ApplyDefaults fills optional fields left empty.
func (c *Config) ApplyDefaults() {
	def := Default()
	if c.Tick == 0 {
		c.Tick = def.Tick
	}
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
	if c.Stream.ListenAddr == "" {
		c.Stream.ListenAddr = def.Stream.ListenAddr
	}
	if c.Stream.Path == "" {
		c.Stream.Path = def.Stream.Path
	}
	for i := range c.Balls {
		if c.Balls[i].ID == "" {
			c.Balls[i].ID = uuid.NewString()
		}
		if c.Balls[i].Boundary == "" {
			c.Balls[i].Boundary = BoundaryReflect
		}
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if !(c.Arena.HalfWidth > 0) {
		return fmt.Errorf("arena half_width must be positive, got %g", c.Arena.HalfWidth)
	}
	if c.Tick < 0 {
		return fmt.Errorf("tick must not be negative, got %s", c.Tick)
	}

	seen := make(map[string]struct{}, len(c.Balls))
	for i, b := range c.Balls {
		if err := b.Validate(); err != nil {
			return fmt.Errorf("ball %d validation failed: %w", i, err)
		}
		if _, dup := seen[b.ID]; dup {
			return fmt.Errorf("ball %d: duplicate id %q", i, b.ID)
		}
		seen[b.ID] = struct{}{}
	}

	for i, p := range c.Paddles {
		if p.HalfWidth < 0 || p.HalfHeight < 0 {
			return fmt.Errorf("paddle %d: half extents must not be negative", i)
		}
	}

	for i, p := range c.Polygons {
		if p.Sides < 3 {
			return fmt.Errorf("polygon %d: needs at least 3 sides, got %d", i, p.Sides)
		}
		if !(p.Radius > 0) {
			return fmt.Errorf("polygon %d: radius must be positive", i)
		}
	}

	return nil
}

// Validate validates a single ball.
func (b BallConfig) Validate() error {
	if b.ID == "" {
		return fmt.Errorf("ball id is required")
	}
	if b.Radius < 0 {
		return fmt.Errorf("ball radius must not be negative, got %g", b.Radius)
	}
	switch b.Boundary {
	case BoundaryReflect, BoundaryWrap:
	default:
		return fmt.Errorf("unknown boundary policy %q", b.Boundary)
	}
	return nil
}
