package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultPath      = ".selfcare.yaml"
	DefaultOutputDir = "."
	DefaultListen    = ":8080"

	// AnonKeyEnv overrides backend.anonKey, so the key can stay out of the
	// config file.
	AnonKeyEnv = "SELFCARE_ANON_KEY"
)

type Config struct {
	Backend    BackendConfig `yaml:"backend"`
	SessionDir string        `yaml:"sessionDir"`
	Output     OutputConfig  `yaml:"output"`
	Server     ServerConfig  `yaml:"server"`
	Timezone   string        `yaml:"timezone"`
}

type BackendConfig struct {
	URL     string `yaml:"url"`
	AnonKey string `yaml:"anonKey"`
}

type OutputConfig struct {
	Dir string `yaml:"dir"`
}

type ServerConfig struct {
	Listen string `yaml:"listen"`
}

func Load(path string) (*Config, error) {
	var useDefaultConf bool
	useDefaultConf = (path == "")

	if useDefaultConf {
		path = DefaultPath
	}

	conf := Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && useDefaultConf {
			// No config was found, but no config path was specified either
			conf.applyDefaults()
			return &conf, nil
		}
		return nil, fmt.Errorf("os.ReadFile: %w", err)
	}

	err = yaml.Unmarshal(data, &conf)
	if err != nil {
		return nil, fmt.Errorf("yaml.Unmarshal: %w", err)
	}

	conf.applyDefaults()
	return &conf, nil
}

func (c *Config) applyDefaults() {
	if key := os.Getenv(AnonKeyEnv); key != "" {
		c.Backend.AnonKey = key
	}
	if c.Output.Dir == "" {
		c.Output.Dir = DefaultOutputDir
	}
	if c.Server.Listen == "" {
		c.Server.Listen = DefaultListen
	}
}

// Location is the time zone dates are shown in. An empty timezone means the
// system's local zone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}

	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("time.LoadLocation(%s): %w", c.Timezone, err)
	}
	return loc, nil
}
