package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/danmuck/coaphdr/internal/cli/output"
	"github.com/danmuck/coaphdr/internal/logging"
)

type Config struct {
	Log     LogConfig
	Output  OutputConfig
	Decode  DecodeConfig
	Metrics MetricsConfig
}

type LogConfig struct {
	Level     string
	Timestamp bool
	NoColor   bool
}

type OutputConfig struct {
	Format string
	Color  bool
}

type DecodeConfig struct {
	StopOnError bool
}

type MetricsConfig struct {
	Enabled  bool
	Textfile string
}

// fileConfig is the on-disk key layout.
type fileConfig struct {
	Log struct {
		Level     string `toml:"level"`
		Timestamp bool   `toml:"timestamp"`
		NoColor   bool   `toml:"no_color"`
	} `toml:"log"`
	Output struct {
		Format string `toml:"format"`
		Color  bool   `toml:"color"`
	} `toml:"output"`
	Decode struct {
		StopOnError bool `toml:"stop_on_error"`
	} `toml:"decode"`
	Metrics struct {
		Enabled  bool   `toml:"enabled"`
		Textfile string `toml:"textfile"`
	} `toml:"metrics"`
}

func Default() Config {
	runtime := logging.DefaultConfig(logging.ProfileRuntime)
	return Config{
		Log:    LogConfig{Level: runtime.Level.String(), Timestamp: runtime.Timestamp},
		Output: OutputConfig{Format: string(output.FormatText), Color: true},
	}
}

// Load reads path on top of Default. Keys absent from the file keep
// their defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("config parse failed (%s): unknown key %s", path, undecoded[0])
	}

	if meta.IsDefined("log", "level") {
		cfg.Log.Level = strings.TrimSpace(raw.Log.Level)
	}
	if meta.IsDefined("log", "timestamp") {
		cfg.Log.Timestamp = raw.Log.Timestamp
	}
	if meta.IsDefined("log", "no_color") {
		cfg.Log.NoColor = raw.Log.NoColor
	}
	if meta.IsDefined("output", "format") {
		cfg.Output.Format = strings.TrimSpace(raw.Output.Format)
	}
	if meta.IsDefined("output", "color") {
		cfg.Output.Color = raw.Output.Color
	}
	if meta.IsDefined("decode", "stop_on_error") {
		cfg.Decode.StopOnError = raw.Decode.StopOnError
	}
	if meta.IsDefined("metrics", "enabled") {
		cfg.Metrics.Enabled = raw.Metrics.Enabled
	}
	if meta.IsDefined("metrics", "textfile") {
		cfg.Metrics.Textfile = strings.TrimSpace(raw.Metrics.Textfile)
	}

	if err := Validate(cfg); err != nil {
		return Config{}, fmt.Errorf("config invalid (%s): %w", path, err)
	}
	return cfg, nil
}

func Validate(cfg Config) error {
	if _, ok := logging.ParseLevel(cfg.Log.Level); !ok {
		return fmt.Errorf("log.level %q is not a known level", cfg.Log.Level)
	}
	if _, err := output.ParseFormat(cfg.Output.Format); err != nil {
		return fmt.Errorf("output.format: %w", err)
	}
	if cfg.Metrics.Textfile != "" && !cfg.Metrics.Enabled {
		return fmt.Errorf("metrics.textfile set but metrics.enabled is false")
	}
	return nil
}

// LoggingConfig converts the [log] table for logging/observability.
func (c Config) LoggingConfig() logging.Config {
	level, _ := logging.ParseLevel(c.Log.Level)
	return logging.Config{
		Level:     level,
		Timestamp: c.Log.Timestamp,
		NoColor:   c.Log.NoColor,
	}
}
