package config

import (
	"os"
	"strings"

	"encyclopedia/pkg/markup"

	"github.com/pkg/errors"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Listen     string `yaml:"listen"`
	EntriesDir string `yaml:"entries_dir"`
	Markup     string `yaml:"markup"`
	LogLevel   string `yaml:"log_level"`
}

func Default() *Config {
	return &Config{
		Listen:     "localhost:63411",
		EntriesDir: "entries",
		Markup:     markup.GoMarkdown,
		LogLevel:   "info",
	}
}

// Load reads a YAML config on top of the defaults. An empty path yields the
// defaults alone.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(err, "read config")
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, errors.Wrapf(err, "decode config %q", path)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.Listen) == "" {
		return errors.New("listen is required")
	}
	if strings.TrimSpace(c.EntriesDir) == "" {
		return errors.New("entries_dir is required")
	}
	if _, err := markup.New(c.Markup); err != nil {
		return errors.Wrap(err, "markup")
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

func (c *Config) Level() (zapcore.Level, error) {
	lvl, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return lvl, errors.Wrapf(err, "log_level %q", c.LogLevel)
	}
	return lvl, nil
}
