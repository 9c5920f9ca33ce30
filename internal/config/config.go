// Package config loads and saves the on-disk application
// configuration, a YAML file under the user config directory.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the persisted application configuration.
type Config struct {
	WorkMinutes   int    `yaml:"work_minutes"`
	RestMinutes   int    `yaml:"rest_minutes"`
	ShortWorkSecs int    `yaml:"short_work_seconds"`
	ShortRestSecs int    `yaml:"short_rest_seconds"`
	Sound         bool   `yaml:"sound"`
	Notifications bool   `yaml:"notifications"`
	DBPath        string `yaml:"db_path,omitempty"`
}

// Default is the stock 25/5 configuration with all alerts on.
func Default() Config {
	return Config{
		WorkMinutes:   25,
		RestMinutes:   5,
		ShortWorkSecs: 10,
		ShortRestSecs: 5,
		Sound:         true,
		Notifications: true,
	}
}

// Path returns <UserConfigDir>/tomato/config.yaml.
func Path() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "tomato", "config.yaml"), nil
}

// Load reads the config file, returning defaults when it is absent.
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), err
	}
	return loadFrom(path)
}

func loadFrom(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return Default(), fmt.Errorf("read config: %w", err)
	}
	c := Default()
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Default(), fmt.Errorf("parse config: %w", err)
	}
	c.normalize()
	return c, nil
}

// Save writes the config file, creating its directory if needed.
func (c Config) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}
	return c.saveTo(path)
}

func (c Config) saveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// normalize clamps nonsense values back to defaults.
func (c *Config) normalize() {
	d := Default()
	if c.WorkMinutes <= 0 {
		c.WorkMinutes = d.WorkMinutes
	}
	if c.RestMinutes <= 0 {
		c.RestMinutes = d.RestMinutes
	}
	if c.ShortWorkSecs <= 0 {
		c.ShortWorkSecs = d.ShortWorkSecs
	}
	if c.ShortRestSecs <= 0 {
		c.ShortRestSecs = d.ShortRestSecs
	}
}

// Durations returns the work/rest phase lengths. In short mode the
// override pair is used, for trying out a full cycle in seconds.
func (c Config) Durations(short bool) (work, rest time.Duration) {
	if short {
		return time.Duration(c.ShortWorkSecs) * time.Second,
			time.Duration(c.ShortRestSecs) * time.Second
	}
	return time.Duration(c.WorkMinutes) * time.Minute,
		time.Duration(c.RestMinutes) * time.Minute
}
