package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all application settings.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Canvas  CanvasConfig  `yaml:"canvas"`
	Fleet   FleetConfig   `yaml:"fleet"`
	Serial  SerialConfig  `yaml:"serial"`
	Logging LoggingConfig `yaml:"logging"`
}

// WindowConfig holds the main window settings.
type WindowConfig struct {
	Title  string  `yaml:"title"`
	Width  float32 `yaml:"width"`
	Height float32 `yaml:"height"`
}

// CanvasConfig holds grid canvas settings.
type CanvasConfig struct {
	MinWidth    float32 `yaml:"min_width"`
	MinHeight   float32 `yaml:"min_height"`
	CellSize    int     `yaml:"cell_size"`
	MinCellSize int     `yaml:"min_cell_size"`
	MaxCellSize int     `yaml:"max_cell_size"`
}

// FleetConfig holds drone simulation settings.
type FleetConfig struct {
	Drones int `yaml:"drones"`
	TickMS int `yaml:"tick_ms"`
}

// SerialConfig holds telemetry receiver settings.
type SerialConfig struct {
	Port string `yaml:"port"`
	Baud int    `yaml:"baud"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Dir   string `yaml:"dir"`
	Level string `yaml:"level"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	exePath, _ := os.Executable()
	exeDir := filepath.Dir(exePath)

	return &Config{
		Window: WindowConfig{
			Title:  "Detector Scout",
			Width:  900,
			Height: 700,
		},
		Canvas: CanvasConfig{
			MinWidth:    400,
			MinHeight:   300,
			CellSize:    70,
			MinCellSize: 1,
			MaxCellSize: 400,
		},
		Fleet: FleetConfig{
			Drones: 3,
			TickMS: 50,
		},
		Serial: SerialConfig{
			Port: "COM8",
			Baud: 9600,
		},
		Logging: LoggingConfig{
			Dir:   filepath.Join(exeDir, "logs"),
			Level: "info",
		},
	}
}

// ConfigPath returns the location of the config file next to the executable.
func ConfigPath() string {
	exePath, _ := os.Executable()
	return filepath.Join(filepath.Dir(exePath), "scout.yaml")
}

// LoadConfig reads the YAML config at path, writing one with defaults when
// it does not exist. Loaded values are sanitized back into valid ranges.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		if err := SaveConfig(cfg, path); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.sanitize()
	return cfg, nil
}

// SaveConfig writes the configuration as YAML.
func SaveConfig(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// sanitize clamps loaded values into usable ranges.
func (c *Config) sanitize() {
	def := DefaultConfig()
	if c.Window.Title == "" {
		c.Window.Title = def.Window.Title
	}
	if c.Window.Width < c.Canvas.MinWidth {
		c.Window.Width = def.Window.Width
	}
	if c.Window.Height < c.Canvas.MinHeight {
		c.Window.Height = def.Window.Height
	}
	if c.Canvas.MinWidth <= 0 {
		c.Canvas.MinWidth = def.Canvas.MinWidth
	}
	if c.Canvas.MinHeight <= 0 {
		c.Canvas.MinHeight = def.Canvas.MinHeight
	}
	if c.Canvas.MinCellSize < 1 {
		c.Canvas.MinCellSize = 1
	}
	if c.Canvas.MaxCellSize < c.Canvas.MinCellSize {
		c.Canvas.MaxCellSize = def.Canvas.MaxCellSize
	}
	if c.Canvas.CellSize < c.Canvas.MinCellSize {
		c.Canvas.CellSize = c.Canvas.MinCellSize
	}
	if c.Canvas.CellSize > c.Canvas.MaxCellSize {
		c.Canvas.CellSize = c.Canvas.MaxCellSize
	}
	if c.Fleet.Drones < 0 {
		c.Fleet.Drones = 0
	}
	if c.Fleet.TickMS <= 0 {
		c.Fleet.TickMS = def.Fleet.TickMS
	}
	if c.Serial.Port == "" {
		c.Serial.Port = def.Serial.Port
	}
	if c.Serial.Baud <= 0 {
		c.Serial.Baud = def.Serial.Baud
	}
	if c.Logging.Dir == "" {
		c.Logging.Dir = def.Logging.Dir
	}
	if c.Logging.Level == "" {
		c.Logging.Level = def.Logging.Level
	}
}

// EnsureDirectories creates the directories the application writes to.
func (c *Config) EnsureDirectories() error {
	if err := os.MkdirAll(c.Logging.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", c.Logging.Dir, err)
	}
	return nil
}

// GetTickInterval returns the fleet simulation tick interval.
func (c *Config) GetTickInterval() time.Duration {
	return time.Duration(c.Fleet.TickMS) * time.Millisecond
}
