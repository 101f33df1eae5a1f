// Package config loads the service configuration and the FX rate table.
package config

import (
	"fmt"
	"log"
	"os"

	hjson "github.com/hjson/hjson-go/v4"
	"gopkg.in/yaml.v2"
)

// Config is the YAML service configuration. Every field has a working
// default so the binaries run with no config file at all.
type Config struct {
	Server struct {
		Addr           string   `yaml:"addr"`
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"server"`
	Reconciliation struct {
		Mode string `yaml:"mode"` // "strict" or "relaxed"
	} `yaml:"reconciliation"`
	Database struct {
		Enabled bool   `yaml:"enabled"`
		URL     string `yaml:"url"`
	} `yaml:"database"`
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg := &Config{}
	cfg.Server.Addr = ":8080"
	cfg.Server.AllowedOrigins = []string{"*"}
	cfg.Reconciliation.Mode = "strict"
	return cfg
}

// Load reads a YAML config file over the defaults. A missing file is not an
// error; a malformed one is.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("[Config] %s not found, using defaults", path)
			return applyEnv(cfg), nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return applyEnv(cfg), nil
}

// applyEnv fills settings the YAML file left empty from the environment.
func applyEnv(cfg *Config) *Config {
	if cfg.Database.URL == "" {
		cfg.Database.URL = os.Getenv("DATABASE_URL")
	}
	return cfg
}

// LoadRates reads the USD-relative FX rate table from an hjson file (hjson so
// ops can annotate rates with comments). A missing file yields nil, letting
// the reconciler fall back to its built-in table.
func LoadRates(path string) (map[string]float64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading rates %s: %w", path, err)
	}

	var raw map[string]interface{}
	if err := hjson.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing rates %s: %w", path, err)
	}

	rates := make(map[string]float64, len(raw))
	for code, v := range raw {
		f, ok := v.(float64)
		if !ok || f <= 0 {
			return nil, fmt.Errorf("rate for %s is not a positive number", code)
		}
		rates[code] = f
	}
	return rates, nil
}
