// Package config loads prclips settings from defaults, an optional YAML file
// and environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/forPelevin/prclips/internal/domain/project"
	"github.com/forPelevin/prclips/internal/domain/timecode"
)

const (
	EnvConfigPath     = "PRCLIPS_CONFIG_PATH"
	EnvFrameRate      = "PRCLIPS_FRAME_RATE"
	EnvTicksPerSecond = "PRCLIPS_TICKS_PER_SECOND"
	EnvMaxDepth       = "PRCLIPS_MAX_DEPTH"
	EnvLogLevel       = "PRCLIPS_LOG_LEVEL"
	EnvServerAddr     = "PRCLIPS_SERVER_ADDR"

	DefaultServerAddr = "127.0.0.1:8790"
	DefaultLogLevel   = "info"
)

// Config defines extraction and server settings.
type Config struct {
	Extract ExtractConfig `yaml:"extract"`
	Server  ServerConfig  `yaml:"server"`
	Log     LogConfig     `yaml:"log"`
}

type ExtractConfig struct {
	FrameRate      int   `yaml:"frame_rate"`
	TicksPerSecond int64 `yaml:"ticks_per_second"`
	Nested         bool  `yaml:"nested"`
	MaxDepth       int   `yaml:"max_depth"`
	Sort           bool  `yaml:"sort"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

func Default() Config {
	return Config{
		Extract: ExtractConfig{
			FrameRate:      timecode.DefaultFrameRate,
			TicksPerSecond: timecode.TicksPerSecond,
			MaxDepth:       project.DefaultMaxDepth,
		},
		Server: ServerConfig{Addr: DefaultServerAddr},
		Log:    LogConfig{Level: DefaultLogLevel},
	}
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	cfg := Default()

	if path := os.Getenv(EnvConfigPath); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if v := os.Getenv(EnvFrameRate); v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", EnvFrameRate, err)
		}
		cfg.Extract.FrameRate = n
	}
	if v := os.Getenv(EnvTicksPerSecond); v != "" {
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", EnvTicksPerSecond, err)
		}
		cfg.Extract.TicksPerSecond = n
	}
	if v := os.Getenv(EnvMaxDepth); v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", EnvMaxDepth, err)
		}
		cfg.Extract.MaxDepth = n
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv(EnvServerAddr); v != "" {
		cfg.Server.Addr = v
	}

	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	e := c.Extract
	if e.FrameRate <= 0 {
		return fmt.Errorf("frame_rate must be > 0 (got %d)", e.FrameRate)
	}
	if e.TicksPerSecond <= 0 {
		return errors.New("ticks_per_second must be > 0")
	}
	if e.TicksPerSecond < int64(e.FrameRate) {
		return fmt.Errorf("ticks_per_second must be >= frame_rate")
	}
	if e.MaxDepth < 0 {
		return fmt.Errorf("max_depth must be >= 0")
	}
	return nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
