// Package config loads the colkit configuration file and merges it over
// the embedded defaults.
package config

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/colkit/pkg/settings"
)

//go:embed default_config.yaml
var embeddedDefaultConfig []byte

// Config is the merged configuration.
type Config struct {
	App     AppConfig     `yaml:"app" toml:"app" json:"app"`
	Output  OutputConfig  `yaml:"output" toml:"output" json:"output"`
	Preview PreviewConfig `yaml:"preview" toml:"preview" json:"preview"`
}

// AppConfig describes the application.
type AppConfig struct {
	Name        string `yaml:"name" toml:"name" json:"name"`
	Description string `yaml:"description" toml:"description" json:"description"`
}

// OutputConfig holds rendering defaults.
type OutputConfig struct {
	// Format is text, markdown or html.
	Format  string `yaml:"format" toml:"format" json:"format"`
	NoColor bool   `yaml:"no_color" toml:"no_color" json:"no_color"`
	// Width is the table width; 0 uses the terminal width.
	Width int `yaml:"width" toml:"width" json:"width"`
}

// PreviewConfig holds defaults for the preview command.
type PreviewConfig struct {
	Interactive bool `yaml:"interactive" toml:"interactive" json:"interactive"`
	// KeyMode is vim, emacs or function.
	KeyMode string `yaml:"key_mode" toml:"key_mode" json:"key_mode"`
	Where   string `yaml:"where" toml:"where" json:"where"`
	Limit   int    `yaml:"limit" toml:"limit" json:"limit"`
	Offset  int    `yaml:"offset" toml:"offset" json:"offset"`
	Tail    int    `yaml:"tail" toml:"tail" json:"tail"`
	// Slots maps scoped slot names to cell templates.
	Slots map[string]string `yaml:"slots" toml:"slots" json:"slots"`
}

// DefaultConfigYAML returns a copy of the embedded default config.
func DefaultConfigYAML() []byte {
	return append([]byte(nil), embeddedDefaultConfig...)
}

// Default returns the embedded defaults.
func Default() (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(embeddedDefaultConfig, &cfg); err != nil {
		return cfg, fmt.Errorf("decode default config: %w", err)
	}
	return cfg, nil
}

// DefaultPath is $XDG_CONFIG_HOME/colkit/config.yaml, falling back to
// ~/.config when XDG_CONFIG_HOME is unset.
func DefaultPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, settings.CliBinaryName, "config.yaml")
}

// Load merges the file at path over the defaults. An empty path tries
// DefaultPath and silently uses the defaults when that file is missing.
// Files ending in .toml are decoded as TOML, anything else as YAML.
func Load(path string) (Config, error) {
	cfg, err := Default()
	if err != nil {
		return cfg, err
	}

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
		if path == "" {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, err
	}

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		err = toml.Unmarshal(data, &cfg)
	} else {
		err = yaml.Unmarshal(data, &cfg)
	}
	if err != nil {
		return cfg, fmt.Errorf("decode %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects unknown output formats and negative sizes.
func (c Config) Validate() error {
	switch c.Output.Format {
	case settings.OutputText, settings.OutputMarkdown, settings.OutputHTML:
	default:
		return fmt.Errorf("output.format must be text, markdown or html, got %q", c.Output.Format)
	}
	if c.Output.Width < 0 {
		return fmt.Errorf("output.width must be non-negative, got %d", c.Output.Width)
	}
	switch c.Preview.KeyMode {
	case "", "vim", "emacs", "function":
	default:
		return fmt.Errorf("preview.key_mode must be vim, emacs or function, got %q", c.Preview.KeyMode)
	}
	if c.Preview.Limit < 0 || c.Preview.Offset < 0 || c.Preview.Tail < 0 {
		return fmt.Errorf("preview limit, offset and tail must be non-negative")
	}
	return nil
}

// Marshal encodes cfg as yaml, json or toml.
func Marshal(cfg Config, format string) ([]byte, error) {
	switch format {
	case "", settings.OutputYAML:
		return yaml.Marshal(cfg)
	case settings.OutputJSON:
		out, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(out, '\n'), nil
	case settings.OutputTOML:
		return toml.Marshal(cfg)
	default:
		return nil, fmt.Errorf("unsupported config format %q", format)
	}
}
