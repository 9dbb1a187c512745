// Package config loads the tool configuration from defaults, an optional
// YAML file, PACKET_* environment variables and command-line flags.
package config

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-packet/packet/core"
	"github.com/cwbudde/algo-packet/packet/spectrum"
)

// Config is the effective configuration of a run.
type Config struct {
	Engine   EngineConfig   `yaml:"engine"`
	Session  SessionConfig  `yaml:"session"`
	Log      LogConfig      `yaml:"log"`
	Spectrum SpectrumConfig `yaml:"spectrum"`
}

// EngineConfig mirrors core.Config with a textual rule.
type EngineConfig struct {
	NumSteps     int     `yaml:"num_steps"`
	StdDevSpanK  float64 `yaml:"std_dev_span_k"`
	StdDevSpanX  float64 `yaml:"std_dev_span_x"`
	Truncation3D float64 `yaml:"truncation_3d"`
	Rule         string  `yaml:"rule"`
}

// SessionConfig holds the initial interactive parameters.
type SessionConfig struct {
	Center float64 `yaml:"center"`
	Width  float64 `yaml:"width"`
	Count  int     `yaml:"count"`
	KLow   float64 `yaml:"k_low"`
	KHigh  float64 `yaml:"k_high"`
	XLow   float64 `yaml:"x_low"`
	XHigh  float64 `yaml:"x_high"`
}

// LogConfig selects the logger.
type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// SpectrumConfig selects the FFT backend used for the spectral cross-check.
type SpectrumConfig struct {
	Backend string `yaml:"backend"`
}

// CoreConfig converts the engine section into a core.Config.
func (c *Config) CoreConfig() (core.Config, error) {
	rule, err := core.ParseRule(c.Engine.Rule)
	if err != nil {
		return core.Config{}, err
	}
	cfg := core.Config{
		NumSteps:     c.Engine.NumSteps,
		StdDevSpanK:  c.Engine.StdDevSpanK,
		StdDevSpanX:  c.Engine.StdDevSpanX,
		Truncation3D: c.Engine.Truncation3D,
		Rule:         rule,
	}
	return cfg, cfg.Validate()
}

// YAML renders the configuration.
func (c *Config) YAML() ([]byte, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	return out, nil
}

// Validate checks every section.
func Validate(c *Config) error {
	if _, err := c.CoreConfig(); err != nil {
		return err
	}
	if _, err := spectrum.BackendByName(c.Spectrum.Backend); err != nil {
		return fmt.Errorf("%w: %v", core.ErrInvalidConfig, err)
	}
	s := c.Session
	if err := core.ValidateWidth(s.Width); err != nil {
		return fmt.Errorf("session width: %w", err)
	}
	if err := core.ValidateCount(s.Count); err != nil {
		return fmt.Errorf("session count: %w", err)
	}
	if !(s.KLow < s.KHigh) {
		return fmt.Errorf("%w: session k range must satisfy low < high: [%g, %g]", core.ErrInvalidConfig, s.KLow, s.KHigh)
	}
	if !(s.XLow < s.XHigh) || !(s.XHigh > 0) {
		return fmt.Errorf("%w: session x range must satisfy low < high and high > 0: [%g, %g]",
			core.ErrInvalidConfig, s.XLow, s.XHigh)
	}
	return nil
}
