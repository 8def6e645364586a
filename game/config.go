package game

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds simulation and window configuration
type Config struct {
	// ScreenWidth is the initial window width in pixels
	ScreenWidth int `yaml:"screenWidth"`

	// ScreenHeight is the initial window height in pixels
	ScreenHeight int `yaml:"screenHeight"`

	// GroundRatio is the ground strip height as a fraction of the viewport height
	GroundRatio float64 `yaml:"groundRatio"`

	// BackgroundStars is the number of static stars scattered over the sky
	BackgroundStars int `yaml:"backgroundStars"`

	Spawn    SpawnConfig    `yaml:"spawn"`
	Shatter  ShatterConfig  `yaml:"shatter"`
	Fragment FragmentConfig `yaml:"fragment"`

	// Twinkle is the alpha amplitude of background star twinkling (0 disables it)
	Twinkle float64 `yaml:"twinkle"`

	Background BackgroundConfig `yaml:"background"`

	// Seed seeds the random source; 0 means seed from the clock
	Seed int64 `yaml:"seed"`

	Profile ProfileConfig `yaml:"profile"`
}

// SpawnConfig controls the falling star scheduler
type SpawnConfig struct {
	InitialInterval int     `yaml:"initialInterval"`
	MinInterval     int     `yaml:"minInterval"`
	MaxInterval     int     `yaml:"maxInterval"`
	Radius          float64 `yaml:"radius"`
	StartY          float64 `yaml:"startY"`
	WrapBound       int64   `yaml:"wrapBound"`
}

// ShatterConfig controls what an impact does to a star
type ShatterConfig struct {
	// Step is how much radius a star loses per impact
	Step float64 `yaml:"step"`

	// Fragments is the number of fragments emitted per impact
	Fragments int `yaml:"fragments"`
}

// FragmentConfig controls fragment lifetime and size
type FragmentConfig struct {
	TTL    int     `yaml:"ttl"`
	Radius float64 `yaml:"radius"`
}

// BackgroundConfig toggles decorative layers
type BackgroundConfig struct {
	Mountains bool `yaml:"mountains"`
}

// ProfileConfig controls automatic CPU profiling on frame rate drops
type ProfileConfig struct {
	Enabled bool    `yaml:"enabled"`
	MinTPS  float64 `yaml:"minTPS"`
	Dir     string  `yaml:"dir"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() Config {
	return Config{
		ScreenWidth:     1024,
		ScreenHeight:    768,
		GroundRatio:     0.09,
		BackgroundStars: 200,
		Spawn: SpawnConfig{
			InitialInterval: 75,
			MinInterval:     125,
			MaxInterval:     200,
			Radius:          9,
			StartY:          -100,
			WrapBound:       1e9,
		},
		Shatter: ShatterConfig{
			Step:      3,
			Fragments: 8,
		},
		Fragment: FragmentConfig{
			TTL:    100,
			Radius: 2,
		},
		Twinkle:    0.35,
		Background: BackgroundConfig{Mountains: true},
		Profile: ProfileConfig{
			Enabled: false,
			MinTPS:  55,
			Dir:     "profiles",
		},
	}
}

// LoadConfig reads a YAML config file on top of DefaultConfig.
// Keys missing from the file keep their default values.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return config, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return config, fmt.Errorf("invalid config: %w", err)
	}

	return config, nil
}

// Validate checks that the configuration is usable
func (c Config) Validate() error {
	if c.ScreenWidth <= 0 || c.ScreenHeight <= 0 {
		return fmt.Errorf("screen size must be positive, got %dx%d", c.ScreenWidth, c.ScreenHeight)
	}
	if c.GroundRatio < 0 || c.GroundRatio >= 1 {
		return fmt.Errorf("groundRatio must be in [0,1), got %.3f", c.GroundRatio)
	}
	if c.BackgroundStars < 0 {
		return fmt.Errorf("backgroundStars must not be negative, got %d", c.BackgroundStars)
	}

	if c.Spawn.InitialInterval <= 0 {
		return fmt.Errorf("spawn.initialInterval must be positive, got %d", c.Spawn.InitialInterval)
	}
	if c.Spawn.MinInterval <= 0 || c.Spawn.MinInterval > c.Spawn.MaxInterval {
		return fmt.Errorf("spawn interval range invalid: min(%d) max(%d)", c.Spawn.MinInterval, c.Spawn.MaxInterval)
	}
	if c.Spawn.WrapBound <= 0 {
		return fmt.Errorf("spawn.wrapBound must be positive, got %d", c.Spawn.WrapBound)
	}

	// A star is removed once its radius is used up, so the spawn radius
	// must be a whole number of shatter steps.
	if c.Shatter.Step <= 0 {
		return fmt.Errorf("shatter.step must be positive, got %.2f", c.Shatter.Step)
	}
	if c.Spawn.Radius <= 0 || math.Mod(c.Spawn.Radius, c.Shatter.Step) != 0 {
		return fmt.Errorf("spawn.radius (%.2f) must be a positive multiple of shatter.step (%.2f)",
			c.Spawn.Radius, c.Shatter.Step)
	}
	if c.Shatter.Fragments < 0 {
		return fmt.Errorf("shatter.fragments must not be negative, got %d", c.Shatter.Fragments)
	}

	if c.Fragment.TTL <= 0 {
		return fmt.Errorf("fragment.ttl must be positive, got %d", c.Fragment.TTL)
	}
	if c.Fragment.Radius <= 0 {
		return fmt.Errorf("fragment.radius must be positive, got %.2f", c.Fragment.Radius)
	}

	if c.Twinkle < 0 || c.Twinkle > 1 {
		return fmt.Errorf("twinkle must be in [0,1], got %.2f", c.Twinkle)
	}
	if c.Profile.Enabled && c.Profile.MinTPS <= 0 {
		return fmt.Errorf("profile.minTPS must be positive, got %.1f", c.Profile.MinTPS)
	}

	return nil
}
