package platform

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/wasi/pkg/core"
)

// Config is the content of a wasi.yaml file.
// Zero values keep the defaults.
type Config struct {
	Adapter  string        `yaml:"adapter,omitempty"`
	Store    string        `yaml:"store,omitempty"`
	ReadOnly bool          `yaml:"read_only,omitempty"`
	Redis    RedisConfig   `yaml:"redis,omitempty"`
	Session  SessionConfig `yaml:"session,omitempty"`
}

// RedisConfig configures the redis adapter.
type RedisConfig struct {
	Addr     string `yaml:"addr,omitempty"`
	Password string `yaml:"password,omitempty"`
	DB       int    `yaml:"db,omitempty"`
	Key      string `yaml:"key,omitempty"`
}

// SessionConfig tunes the simulated delays. Durations use Go syntax ("1.5s").
type SessionConfig struct {
	ThinkMin      *time.Duration `yaml:"think_min,omitempty"`
	ThinkMax      *time.Duration `yaml:"think_max,omitempty"`
	LearnDelay    *time.Duration `yaml:"learn_delay,omitempty"`
	ErrorCooldown *time.Duration `yaml:"error_cooldown,omitempty"`
	Greeting      *bool          `yaml:"greeting,omitempty"`
}

// LoadConfig reads a wasi.yaml file. Unknown fields are rejected.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &Config{}
	if len(bytes.TrimSpace(data)) == 0 {
		return cfg, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	// A relative store path is relative to the config file.
	if cfg.Store != "" && !filepath.IsAbs(cfg.Store) {
		cfg.Store = filepath.Join(filepath.Dir(path), cfg.Store)
	}
	return cfg, nil
}

// DiscoverConfig looks for wasi.yaml from startDir upwards.
// It returns (nil, "", nil) when no project root or config file exists.
func DiscoverConfig(startDir string) (*Config, string, error) {
	root, err := FindRoot(startDir)
	if err != nil {
		return nil, "", nil
	}

	path := filepath.Join(root, ConfigFile)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil, root, nil
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, root, err
	}
	return cfg, root, nil
}

// Options converts the file into functional options.
// Options given after these override them.
func (c *Config) Options() []Option {
	if c == nil {
		return nil
	}

	var opts []Option
	if c.Adapter != "" {
		opts = append(opts, WithAdapter(c.Adapter))
	}
	if c.ReadOnly {
		opts = append(opts, WithReadOnly(true))
	}
	if c.Redis != (RedisConfig{}) {
		opts = append(opts, WithRedis(c.Redis.Addr, c.Redis.Password, c.Redis.DB, c.Redis.Key))
	}

	s := c.Session
	if s.ThinkMin != nil || s.ThinkMax != nil {
		lo, hi := core.DefaultThinkMin, core.DefaultThinkMax
		if s.ThinkMin != nil {
			lo = *s.ThinkMin
		}
		if s.ThinkMax != nil {
			hi = *s.ThinkMax
		}
		opts = append(opts, WithSessionOptions(core.WithThinkDelay(lo, hi)))
	}
	if s.LearnDelay != nil {
		opts = append(opts, WithSessionOptions(core.WithLearnDelay(*s.LearnDelay)))
	}
	if s.ErrorCooldown != nil {
		opts = append(opts, WithSessionOptions(core.WithErrorCooldown(*s.ErrorCooldown)))
	}
	if s.Greeting != nil {
		opts = append(opts, WithSessionOptions(core.WithGreeting(*s.Greeting)))
	}
	return opts
}
