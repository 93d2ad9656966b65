package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scout.yaml")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("default config file not written: %v", err)
	}
	if cfg.Canvas.CellSize != 70 {
		t.Fatalf("default cell size = %d; want 70", cfg.Canvas.CellSize)
	}
	if cfg.Fleet.Drones != 3 {
		t.Fatalf("default drone count = %d; want 3", cfg.Fleet.Drones)
	}
	if cfg.Serial.Port != "COM8" || cfg.Serial.Baud != 9600 {
		t.Fatalf("default serial = %s @ %d; want COM8 @ 9600", cfg.Serial.Port, cfg.Serial.Baud)
	}
}

func TestLoadConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scout.yaml")

	cfg := DefaultConfig()
	cfg.Canvas.CellSize = 40
	cfg.Fleet.Drones = 5
	cfg.Serial.Port = "/dev/ttyUSB0"
	if err := SaveConfig(cfg, path); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if loaded.Canvas.CellSize != 40 {
		t.Fatalf("cell size = %d; want 40", loaded.Canvas.CellSize)
	}
	if loaded.Fleet.Drones != 5 {
		t.Fatalf("drones = %d; want 5", loaded.Fleet.Drones)
	}
	if loaded.Serial.Port != "/dev/ttyUSB0" {
		t.Fatalf("serial port = %s; want /dev/ttyUSB0", loaded.Serial.Port)
	}
}

func TestLoadConfigSanitizesValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scout.yaml")
	raw := `
canvas:
  cell_size: 0
  min_cell_size: -5
  max_cell_size: 0
fleet:
  drones: -2
  tick_ms: 0
serial:
  baud: -1
`
	if err := os.WriteFile(path, []byte(raw), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Canvas.MinCellSize != 1 {
		t.Fatalf("min cell size = %d; want 1", cfg.Canvas.MinCellSize)
	}
	if cfg.Canvas.CellSize < 1 {
		t.Fatalf("cell size = %d; want at least 1", cfg.Canvas.CellSize)
	}
	if cfg.Fleet.Drones != 0 {
		t.Fatalf("drones = %d; want clamped to 0", cfg.Fleet.Drones)
	}
	if cfg.Fleet.TickMS <= 0 {
		t.Fatalf("tick = %d; want positive", cfg.Fleet.TickMS)
	}
	if cfg.Serial.Baud <= 0 {
		t.Fatalf("baud = %d; want positive", cfg.Serial.Baud)
	}
}

func TestLoadConfigRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scout.yaml")
	if err := os.WriteFile(path, []byte("canvas: [not a mapping"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("LoadConfig accepted malformed YAML")
	}
}

func TestGetTickInterval(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.GetTickInterval(); got != 50*time.Millisecond {
		t.Fatalf("GetTickInterval() = %v; want 50ms", got)
	}
}
