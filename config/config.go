// Package config provides configuration loading and access for the display.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrInvalid is wrapped by every validation failure returned from Load.
var ErrInvalid = errors.New("invalid config")

// Config holds all display configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	Eyes       EyeConfig        `yaml:"eyes"`
	Ripples    RippleConfig     `yaml:"ripples"`
	Digits     DigitConfig      `yaml:"digits"`
	Background BackgroundConfig `yaml:"background"`
	Waves      WaveConfig       `yaml:"waves"`
	Modes      ModesConfig      `yaml:"modes"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds the LED panel geometry and frame rate.
type ScreenConfig struct {
	Width       int `yaml:"width"`
	Height      int `yaml:"height"`
	TargetFPS   int `yaml:"target_fps"`
	WindowScale int `yaml:"window_scale"` // Window pixels per LED in the raylib backend
}

// EyeConfig holds the eye pool and lifecycle tuning.
type EyeConfig struct {
	Capacity         int      `yaml:"capacity"`
	HalfHeight       int      `yaml:"half_height"`
	MinSpacing       int      `yaml:"min_spacing"`
	OpenSpeed        int      `yaml:"open_speed"`
	Margin           int      `yaml:"margin"`      // maxOpen = width/2 - margin
	EdgeMargin       int      `yaml:"edge_margin"` // Keeps tips this far from the top/bottom rows
	SpawnAttempts    int      `yaml:"spawn_attempts"`
	MinActive        int      `yaml:"min_active"`
	MaxActive        int      `yaml:"max_active"`
	ExtraSpawnChance int      `yaml:"extra_spawn_chance"` // 1-in-N per frame
	Blinks           IntRange `yaml:"blinks"`
	HoldFrames       IntRange `yaml:"hold_frames"`
	FirstLook        IntRange `yaml:"first_look"`
	LookInterval     IntRange `yaml:"look_interval"`
	IrisThreshold    int      `yaml:"iris_threshold"`
	LashCount        int      `yaml:"lash_count"`
	LashLength       int      `yaml:"lash_length"`
	LashInset        int      `yaml:"lash_inset"`
	LidColor         RGB      `yaml:"lid_color"`
	FillColor        RGB      `yaml:"fill_color"`
	IrisColor        RGB      `yaml:"iris_color"`
	PupilColor       RGB      `yaml:"pupil_color"`
}

// RippleConfig holds the ripple pool tuning.
type RippleConfig struct {
	Capacity int      `yaml:"capacity"`
	Count    IntRange `yaml:"count"`
	Speed    IntRange `yaml:"speed"`
	Color    RGB      `yaml:"color"`
}

// DigitConfig holds the scrolling binary column layout.
type DigitConfig struct {
	X     int `yaml:"x"`
	Scale int `yaml:"scale"`
	Count int `yaml:"count"`
	Speed int `yaml:"speed"`
	Color RGB `yaml:"color"`
}

// BackgroundConfig bounds the red background drift.
type BackgroundConfig struct {
	RedMin int `yaml:"red_min"`
	RedMax int `yaml:"red_max"`
}

// WaveConfig holds the analog waveform pool tuning.
type WaveConfig struct {
	Capacity         int      `yaml:"capacity"`
	MinActive        int      `yaml:"min_active"`
	MaxActive        int      `yaml:"max_active"`
	ExtraSpawnChance int      `yaml:"extra_spawn_chance"`
	RadianOffset     IntRange `yaml:"radian_offset"` // Multiplied by pi
	LengthMin        int      `yaml:"length_min"`    // Upper bound is screen height - 1
	Speed            IntRange `yaml:"speed"`
}

// ModesConfig holds scene selection settings.
type ModesConfig struct {
	Initial           string  `yaml:"initial"`
	AutoSwitchSeconds float64 `yaml:"auto_switch_seconds"` // 0 = never
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"`
	BookmarkHistorySize int     `yaml:"bookmark_history_size"`
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
	QuietWindows        int     `yaml:"quiet_windows"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	FrameSeconds    float64 // 1 / TargetFPS
	AutoSwitchTicks int32   // 0 = never
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Default returns a fresh copy of the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are broken: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// Validate checks the loaded values for combinations the display cannot run with.
func (c *Config) Validate() error {
	checks := []struct {
		ok    bool
		field string
	}{
		{c.Screen.Width > 0 && c.Screen.Height > 0, "screen size must be positive"},
		{c.Screen.TargetFPS > 0, "screen.target_fps must be positive"},
		{c.Screen.WindowScale > 0, "screen.window_scale must be positive"},
		{c.Eyes.Capacity > 0, "eyes.capacity must be positive"},
		{c.Eyes.HalfHeight > 0, "eyes.half_height must be positive"},
		{c.Eyes.OpenSpeed > 0, "eyes.open_speed must be positive"},
		{c.Eyes.SpawnAttempts > 0, "eyes.spawn_attempts must be positive"},
		{c.Screen.Width/2-c.Eyes.Margin > 0, "eyes.margin leaves no room to open"},
		{c.Eyes.MinActive <= c.Eyes.MaxActive, "eyes.min_active exceeds eyes.max_active"},
		{c.Eyes.MaxActive <= c.Eyes.Capacity, "eyes.max_active exceeds eyes.capacity"},
		{c.Eyes.ExtraSpawnChance > 0, "eyes.extra_spawn_chance must be at least 1"},
		{c.Eyes.LashCount >= 0 && c.Eyes.LashInset < c.Eyes.HalfHeight, "eyes lash layout out of range"},
		{c.Eyes.Blinks.Valid() && c.Eyes.Blinks.Min >= 0, "eyes.blinks range"},
		{c.Eyes.HoldFrames.Valid(), "eyes.hold_frames range"},
		{c.Eyes.FirstLook.Valid(), "eyes.first_look range"},
		{c.Eyes.LookInterval.Valid(), "eyes.look_interval range"},
		{c.Ripples.Capacity > 0, "ripples.capacity must be positive"},
		{c.Ripples.Count.Valid() && c.Ripples.Count.Min >= 0, "ripples.count range"},
		{c.Ripples.Speed.Valid() && c.Ripples.Speed.Min > 0, "ripples.speed range"},
		{c.Digits.Count >= 2, "digits.count must be at least 2"},
		{c.Digits.Scale > 0, "digits.scale must be positive"},
		{c.Digits.Speed > 0, "digits.speed must be positive"},
		{c.Background.RedMin <= c.Background.RedMax && c.Background.RedMax <= 255, "background red range"},
		{c.Waves.Capacity > 0, "waves.capacity must be positive"},
		{c.Waves.MinActive <= c.Waves.MaxActive, "waves.min_active exceeds waves.max_active"},
		{c.Waves.MaxActive <= c.Waves.Capacity, "waves.max_active exceeds waves.capacity"},
		{c.Waves.ExtraSpawnChance > 0, "waves.extra_spawn_chance must be at least 1"},
		{c.Waves.RadianOffset.Valid() && c.Waves.RadianOffset.Min > 0, "waves.radian_offset range"},
		{c.Waves.Speed.Valid() && c.Waves.Speed.Min > 0, "waves.speed range"},
		{c.Modes.Initial == "digital" || c.Modes.Initial == "analog", "modes.initial must be digital or analog"},
		{c.Modes.AutoSwitchSeconds >= 0, "modes.auto_switch_seconds must not be negative"},
		{c.Telemetry.StatsWindow > 0, "telemetry.stats_window must be positive"},
	}
	for _, chk := range checks {
		if !chk.ok {
			return fmt.Errorf("%w: %s", ErrInvalid, chk.field)
		}
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.FrameSeconds = 1.0 / float64(c.Screen.TargetFPS)
	c.Derived.AutoSwitchTicks = int32(c.Modes.AutoSwitchSeconds * float64(c.Screen.TargetFPS))
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
