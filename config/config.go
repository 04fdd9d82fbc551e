package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/kilianp07/vrptw/core/construct"
	"github.com/kilianp07/vrptw/core/metrics"
	"github.com/kilianp07/vrptw/core/report"
	"github.com/kilianp07/vrptw/core/search"
	"github.com/kilianp07/vrptw/infra/logger"
	"github.com/kilianp07/vrptw/infra/source"
)

type Config struct {
	Instance  source.Config    `json:"instance"`
	Construct construct.Config `json:"construct"`
	Search    search.Config    `json:"search"`
	Report    report.Config    `json:"report"`
	Metrics   metrics.Config   `json:"metrics"`
	Log       logger.Config    `json:"log"`
}

// Load reads the configuration file at path, applies K_ environment
// overrides and defaults, then validates every section except instance,
// which the CLI may still override. An empty path loads defaults and
// environment only.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	if path != "" {
		ext := strings.ToLower(filepath.Ext(path))
		var parser koanf.Parser
		switch ext {
		case ".yaml", ".yml":
			parser = yaml.Parser()
		case ".json":
			parser = json.Parser()
		default:
			return nil, fmt.Errorf("unsupported config format: %s", ext)
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, err
		}
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("K_", ".", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "k_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SetDefaults applies section defaults.
func (c *Config) SetDefaults() {
	c.Construct.SetDefaults()
	c.Search.SetDefaults()
	c.Log.SetDefaults()
}

// Validate checks the solver and logging sections.
func (c Config) Validate() error {
	return errors.Join(
		c.Construct.Validate(),
		c.Search.Validate(),
		c.Log.Validate(),
	)
}
