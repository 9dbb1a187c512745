package config

import (
	"errors"
	"fmt"
	"strings"

	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/cwbudde/algo-packet/packet/core"
)

// EnvPrefix prefixes every environment override, e.g. PACKET_ENGINE_NUM_STEPS.
const EnvPrefix = "PACKET"

// flagBindings maps viper keys to flag names.
var flagBindings = map[string]string{
	"engine.num_steps":      "num-steps",
	"engine.std_dev_span_k": "span-k",
	"engine.std_dev_span_x": "span-x",
	"engine.truncation_3d":  "truncation",
	"engine.rule":           "rule",
	"session.center":        "center",
	"session.width":         "width",
	"session.count":         "count",
	"session.k_low":         "k-low",
	"session.k_high":        "k-high",
	"session.x_low":         "x-low",
	"session.x_high":        "x-high",
	"log.level":             "log-level",
	"log.development":       "log-dev",
	"spectrum.backend":      "fft-backend",
}

// RegisterFlags adds every configuration flag to fs.
func RegisterFlags(fs *flag.FlagSet) {
	def := core.DefaultConfig()

	fs.String("config", "", "path to a YAML configuration file")
	fs.Int("num-steps", def.NumSteps, "grid intervals on each axis")
	fs.Float64("span-k", def.StdDevSpanK, "momentum grid span in envelope widths")
	fs.Float64("span-x", def.StdDevSpanX, "position grid span in multiples of the x view limit")
	fs.Float64("truncation", def.Truncation3D, "component window half-width in standard deviations")
	fs.String("rule", def.Rule.String(), "integration rule (rectangle, trapezoid)")
	fs.Float64("center", 10, "initial envelope center")
	fs.Float64("width", 1, "initial envelope width (sigma)")
	fs.Int("count", 11, "initial number of component waves")
	fs.Float64("k-low", 5, "initial lower k view bound")
	fs.Float64("k-high", 15, "initial upper k view bound")
	fs.Float64("x-low", -5, "initial lower x view bound")
	fs.Float64("x-high", 5, "initial upper x view bound")
	fs.String("log-level", "info", "log level (debug, info, warn, error)")
	fs.Bool("log-dev", false, "human-readable development logging")
	fs.String("fft-backend", "algo-fft", "FFT backend for the spectral check (algo-fft, go-dsp)")
}

// Load resolves the configuration with precedence flags > env > file > defaults
// and validates it. flagSet may be nil.
func Load(flagSet *flag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flagSet != nil {
		for key, name := range flagBindings {
			if f := flagSet.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	if path := configPath(v, flagSet); path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	cfg := &Config{
		Engine: EngineConfig{
			NumSteps:     v.GetInt("engine.num_steps"),
			StdDevSpanK:  v.GetFloat64("engine.std_dev_span_k"),
			StdDevSpanX:  v.GetFloat64("engine.std_dev_span_x"),
			Truncation3D: v.GetFloat64("engine.truncation_3d"),
			Rule:         v.GetString("engine.rule"),
		},
		Session: SessionConfig{
			Center: v.GetFloat64("session.center"),
			Width:  v.GetFloat64("session.width"),
			Count:  v.GetInt("session.count"),
			KLow:   v.GetFloat64("session.k_low"),
			KHigh:  v.GetFloat64("session.k_high"),
			XLow:   v.GetFloat64("session.x_low"),
			XHigh:  v.GetFloat64("session.x_high"),
		},
		Log: LogConfig{
			Level:       v.GetString("log.level"),
			Development: v.GetBool("log.development"),
		},
		Spectrum: SpectrumConfig{
			Backend: v.GetString("spectrum.backend"),
		},
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	def := core.DefaultConfig()

	v.SetDefault("engine.num_steps", def.NumSteps)
	v.SetDefault("engine.std_dev_span_k", def.StdDevSpanK)
	v.SetDefault("engine.std_dev_span_x", def.StdDevSpanX)
	v.SetDefault("engine.truncation_3d", def.Truncation3D)
	v.SetDefault("engine.rule", def.Rule.String())

	v.SetDefault("session.center", 10.0)
	v.SetDefault("session.width", 1.0)
	v.SetDefault("session.count", 11)
	v.SetDefault("session.k_low", 5.0)
	v.SetDefault("session.k_high", 15.0)
	v.SetDefault("session.x_low", -5.0)
	v.SetDefault("session.x_high", 5.0)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)
	v.SetDefault("spectrum.backend", "algo-fft")
}

func configPath(v *viper.Viper, fs *flag.FlagSet) string {
	if fs != nil {
		if f := fs.Lookup("config"); f != nil && f.Changed {
			return f.Value.String()
		}
	}
	return v.GetString("config")
}

// IsValidation reports whether err came from configuration validation.
func IsValidation(err error) bool {
	return errors.Is(err, core.ErrInvalidConfig) || errors.Is(err, core.ErrDegenerateConfiguration)
}
