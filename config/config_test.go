package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load defaults: %v", err)
	}

	if cfg.Eyes.Capacity != 8 {
		t.Errorf("eyes.capacity = %d, want 8", cfg.Eyes.Capacity)
	}
	if cfg.Eyes.MinSpacing != 55 {
		t.Errorf("eyes.min_spacing = %d, want 55", cfg.Eyes.MinSpacing)
	}
	if cfg.Ripples.Capacity != 12 {
		t.Errorf("ripples.capacity = %d, want 12", cfg.Ripples.Capacity)
	}
	if cfg.Eyes.Blinks != (IntRange{Min: 1, Max: 4}) {
		t.Errorf("eyes.blinks = %+v, want [1, 4]", cfg.Eyes.Blinks)
	}
	if cfg.Eyes.LidColor != (RGB{R: 180, G: 180, B: 140}) {
		t.Errorf("eyes.lid_color = %+v", cfg.Eyes.LidColor)
	}
}

func TestLoadMergesUserFile(t *testing.T) {
	path := writeFile(t, `
screen:
  height: 128
eyes:
  extra_spawn_chance: 30
  blinks: {min: 2, max: 2}
ripples:
  color: [10, 20, 30]
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Screen.Height != 128 {
		t.Errorf("height = %d, want 128", cfg.Screen.Height)
	}
	// Untouched keys keep their defaults
	if cfg.Screen.Width != 64 {
		t.Errorf("width = %d, want default 64", cfg.Screen.Width)
	}
	if cfg.Eyes.ExtraSpawnChance != 30 {
		t.Errorf("extra_spawn_chance = %d, want 30", cfg.Eyes.ExtraSpawnChance)
	}
	if cfg.Eyes.Blinks != (IntRange{Min: 2, Max: 2}) {
		t.Errorf("blinks = %+v, want {2 2}", cfg.Eyes.Blinks)
	}
	if cfg.Ripples.Color != (RGB{R: 10, G: 20, B: 30}) {
		t.Errorf("ripple colour = %+v", cfg.Ripples.Color)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"floor above ceiling", "eyes:\n  min_active: 6\n  max_active: 5\n"},
		{"ceiling above capacity", "eyes:\n  max_active: 9\n"},
		{"zero chance", "eyes:\n  extra_spawn_chance: 0\n"},
		{"inverted range", "eyes:\n  hold_frames: [100, 50]\n"},
		{"margin too wide", "eyes:\n  margin: 40\n"},
		{"single digit", "digits:\n  count: 1\n"},
		{"zero ripple speed", "ripples:\n  speed: [0, 3]\n"},
		{"zero digit speed", "digits:\n  speed: 0\n"},
		{"wave ceiling above capacity", "waves:\n  max_active: 6\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.body))
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("Load error = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestLoadRejectsMalformedTypes(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"short range", "eyes:\n  blinks: [1]\n"},
		{"colour channel overflow", "eyes:\n  lid_color: [300, 0, 0]\n"},
		{"colour too short", "eyes:\n  lid_color: [1, 2]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeFile(t, tt.body)); err == nil {
				t.Error("expected parse error")
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Eyes.ExtraSpawnChance = 45
	cfg.Waves.Speed = IntRange{Min: 2, Max: 3}

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load written file: %v", err)
	}
	if loaded.Eyes.ExtraSpawnChance != 45 {
		t.Errorf("extra_spawn_chance = %d, want 45", loaded.Eyes.ExtraSpawnChance)
	}
	if loaded.Waves.Speed != (IntRange{Min: 2, Max: 3}) {
		t.Errorf("waves.speed = %+v", loaded.Waves.Speed)
	}
	if loaded.Eyes.IrisColor != cfg.Eyes.IrisColor {
		t.Errorf("iris colour = %+v, want %+v", loaded.Eyes.IrisColor, cfg.Eyes.IrisColor)
	}
}

func TestAutoSwitchTicks(t *testing.T) {
	cfg, err := Load(writeFile(t, "modes:\n  auto_switch_seconds: 2.5\n"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Derived.AutoSwitchTicks != 150 {
		t.Errorf("auto switch ticks = %d, want 150", cfg.Derived.AutoSwitchTicks)
	}
}
