// Package config loads hospitalrank configuration from file, environment,
// and CLI flags.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"hospitalrank/outcomes"
)

// Config file names searched in the working directory when no explicit
// --config path is given.
const (
	ConfigFileName    = "hospitalrank.yaml"
	ConfigFileNameAlt = "hospitalrank.yml"
)

// EnvPrefix is the prefix for environment variable overrides, e.g.
// HOSPITALRANK_DATA_FILE.
const EnvPrefix = "HOSPITALRANK_"

// Config holds all runtime options.
type Config struct {
	Data    DataConfig    `koanf:"data"`
	Columns ColumnsConfig `koanf:"columns"`
	Output  string        `koanf:"output"`
	Verbose bool          `koanf:"verbose"`
}

// DataConfig locates the outcome-of-care measures file.
type DataConfig struct {
	File    string `koanf:"file"`
	NAToken string `koanf:"na_token"`
}

// ColumnsConfig overrides the header names the loader binds to. Empty fields
// keep the CMS defaults.
type ColumnsConfig struct {
	State        string `koanf:"state"`
	Hospital     string `koanf:"hospital"`
	HeartAttack  string `koanf:"heart_attack"`
	HeartFailure string `koanf:"heart_failure"`
	Pneumonia    string `koanf:"pneumonia"`
}

// ReaderOptions converts the config into loader options.
func (c *Config) ReaderOptions() outcomes.ReaderOptions {
	return outcomes.ReaderOptions{
		NAToken: c.Data.NAToken,
		Columns: outcomes.Columns{
			State:        c.Columns.State,
			Hospital:     c.Columns.Hospital,
			HeartAttack:  c.Columns.HeartAttack,
			HeartFailure: c.Columns.HeartFailure,
			Pneumonia:    c.Columns.Pneumonia,
		},
	}
}

// findConfigFile returns the config file to use: the explicit path if given,
// else the first of hospitalrank.yaml / hospitalrank.yml that exists.
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range []string{ConfigFileName, ConfigFileNameAlt} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// Load loads configuration with precedence (highest to lowest):
// flags > env vars > config file > defaults.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(map[string]interface{}{
		"data.file":     "outcome-of-care-measures.csv",
		"data.na_token": outcomes.DefaultNAToken,
		"output":        "table",
		"verbose":       false,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path := findConfigFile(cfgFile); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	// HOSPITALRANK_DATA_FILE -> data.file, HOSPITALRANK_COLUMNS_HEART_ATTACK
	// -> columns.heart_attack, and so on. Leaf keys keep their underscores.
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		switch {
		case key == "data_file":
			return "data.file"
		case key == "data_na_token":
			return "data.na_token"
		case strings.HasPrefix(key, "columns_"):
			return "columns." + strings.TrimPrefix(key, "columns_")
		}
		return key
	}), nil); err != nil {
		return nil, fmt.Errorf("load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			switch f.Name {
			case "file":
				return "data.file", posflag.FlagVal(flags, f)
			case "na-token":
				return "data.na_token", posflag.FlagVal(flags, f)
			case "output", "verbose":
				return f.Name, posflag.FlagVal(flags, f)
			}
			return "", nil
		}), nil); err != nil {
			return nil, fmt.Errorf("load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, nil
}
