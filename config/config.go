package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"

	"gopkg.in/yaml.v3"
)

// WindowConfig contains window settings for the viewer
type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// LoggingConfig selects the slog level and handler format
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // console, text, json
}

// InputConfig contains device polling and action map settings
type InputConfig struct {
	// Deadzone for analog stick input (0.0 to 1.0)
	AnalogDeadzone float64 `yaml:"analogDeadzone"`
	// Optional YAML action map; built-in actions are used when empty
	ActionsFile string `yaml:"actionsFile"`
}

// PersistenceConfig contains settings for saved binding overrides
type PersistenceConfig struct {
	AppName string `yaml:"appName"`
	Enabled bool   `yaml:"enabled"`
}

// HUDConfig contains layout values for the input viewer overlay
type HUDConfig struct {
	LogLength  int        `yaml:"logLength"`
	FontSize   float64    `yaml:"fontSize"`
	Margin     int        `yaml:"margin"`
	LineHeight int        `yaml:"lineHeight"`
	TextColor  color.RGBA `yaml:"-"`
	DimColor   color.RGBA `yaml:"-"`
	Background color.RGBA `yaml:"-"`
}

type Config struct {
	Window      WindowConfig      `yaml:"window"`
	Logging     LoggingConfig     `yaml:"logging"`
	Input       InputConfig       `yaml:"input"`
	Persistence PersistenceConfig `yaml:"persistence"`
	HUD         HUDConfig         `yaml:"hud"`
}

// C is the active configuration
var C *Config

func init() {
	C = Default()
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Width:  960,
			Height: 540,
			Title:  "actionmap viewer",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Input: InputConfig{
			AnalogDeadzone: 0.25,
		},
		Persistence: PersistenceConfig{
			AppName: "actionmap",
			Enabled: true,
		},
		HUD: HUDConfig{
			LogLength:  12,
			FontSize:   14,
			Margin:     16,
			LineHeight: 18,
			TextColor:  color.RGBA{R: 230, G: 230, B: 230, A: 255},
			DimColor:   color.RGBA{R: 130, G: 130, B: 140, A: 255},
			Background: color.RGBA{R: 20, G: 22, B: 28, A: 255},
		},
	}
}

// Load reads a YAML file on top of the defaults. Omitted fields keep their
// default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks ranges the rest of the program relies on
func (c *Config) Validate() error {
	var errs []error
	if c.Input.AnalogDeadzone < 0 || c.Input.AnalogDeadzone >= 1 {
		errs = append(errs, fmt.Errorf("input.analogDeadzone %v out of range [0, 1)", c.Input.AnalogDeadzone))
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if c.HUD.LogLength <= 0 {
		errs = append(errs, fmt.Errorf("hud.logLength %d must be positive", c.HUD.LogLength))
	}
	if c.Persistence.Enabled && c.Persistence.AppName == "" {
		errs = append(errs, errors.New("persistence.appName is required when persistence is enabled"))
	}
	return errors.Join(errs...)
}
