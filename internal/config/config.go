// Package config loads run settings from a YAML file. Values not present in
// the file keep their defaults; the CLI overrides both with flags the user
// set explicitly.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/mj1618/storeshots/internal/platform"
	"github.com/mj1618/storeshots/internal/walkthrough"
	"gopkg.in/yaml.v3"
)

// Config is the full set of run settings.
type Config struct {
	Backend       string             `yaml:"backend"`
	Device        string             `yaml:"device,omitempty"`
	OutputDir     string             `yaml:"output_dir"`
	ClearPrevious bool               `yaml:"clear_previous"`
	Scale         float64            `yaml:"scale"`
	URL           string             `yaml:"url,omitempty"`
	Headless      bool               `yaml:"headless"`
	AppModel      string             `yaml:"app_model,omitempty"`
	Viewport      platform.Viewport  `yaml:"viewport"`
	TimeoutMs     int                `yaml:"timeout_ms,omitempty"`
	ScriptFile    string             `yaml:"script_file,omitempty"`
	Script        []walkthrough.Step `yaml:"script,omitempty"`
}

// Default returns the settings used when no file or flag says otherwise.
func Default() Config {
	return Config{
		Backend:   "sim",
		OutputDir: "screenshots",
		Scale:     1,
		Headless:  true,
		Viewport:  platform.DefaultViewport,
	}
}

// Load reads a YAML config file over the defaults. An empty path returns
// the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the settings for consistency.
func (c Config) Validate() error {
	if c.Backend == "" {
		return errors.New("backend is required")
	}
	if c.OutputDir == "" {
		return errors.New("output_dir is required")
	}
	if c.Scale <= 0 || c.Scale > 1 {
		return fmt.Errorf("scale must be in (0, 1], got %g", c.Scale)
	}
	if c.TimeoutMs < 0 {
		return fmt.Errorf("timeout_ms must not be negative, got %d", c.TimeoutMs)
	}
	if err := c.Viewport.Validate(); err != nil {
		return err
	}
	if c.ScriptFile != "" && len(c.Script) > 0 {
		return errors.New("set either script or script_file, not both")
	}
	if len(c.Script) > 0 {
		if err := walkthrough.Validate(c.Script); err != nil {
			return fmt.Errorf("script: %w", err)
		}
	}
	return nil
}

// ResolveScript returns the configured script: the inline one, the one in
// script_file, or the default walkthrough.
func (c Config) ResolveScript() ([]walkthrough.Step, error) {
	switch {
	case len(c.Script) > 0:
		return c.Script, nil
	case c.ScriptFile != "":
		return walkthrough.LoadScript(c.ScriptFile)
	default:
		return walkthrough.DefaultScript(), nil
	}
}

// PlatformOptions returns the backend options for the settings.
func (c Config) PlatformOptions() platform.Options {
	return platform.Options{
		URL:       c.URL,
		Headless:  c.Headless,
		AppModel:  c.AppModel,
		Viewport:  c.Viewport,
		TimeoutMs: c.TimeoutMs,
	}
}
