package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port            int `yaml:"port"`
		ReadTimeoutSec  int `yaml:"read_timeout_seconds"`
		WriteTimeoutSec int `yaml:"write_timeout_seconds"`
	} `yaml:"server"`

	Mongo struct {
		URI      string `yaml:"uri"`
		Database string `yaml:"database"`
	} `yaml:"mongo"`

	Redis struct {
		Address        string `yaml:"address"`
		Password       string `yaml:"password"`
		DB             int    `yaml:"db"`
		SlotsTTLSecond int    `yaml:"slots_ttl_seconds"`
	} `yaml:"redis"`

	Push struct {
		Enabled         bool    `yaml:"enabled"`
		CredentialsFile string  `yaml:"credentials_file"`
		ProjectID       string  `yaml:"project_id"`
		Rate            float64 `yaml:"rate"`
		Burst           int     `yaml:"burst"`
	} `yaml:"push"`

	Monitoring struct {
		PrometheusEnabled bool `yaml:"prometheus_enabled"`
	} `yaml:"monitoring"`
}

func Load(path string) (*Config, error) {
	if path == "" {
		path = "configs/config.yaml"
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Support ${ENV_VAR} placeholders in YAML config.
	data = []byte(os.ExpandEnv(string(data)))

	var cfg Config
	if err = yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Mongo.URI == "" {
		cfg.Mongo.URI = "mongodb://localhost:27017"
	}
	if cfg.Mongo.Database == "" {
		cfg.Mongo.Database = "balzac"
	}

	return &cfg, nil
}

func (c *Config) ReadTimeout() time.Duration {
	if c.Server.ReadTimeoutSec <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.Server.ReadTimeoutSec) * time.Second
}

func (c *Config) WriteTimeout() time.Duration {
	if c.Server.WriteTimeoutSec <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.Server.WriteTimeoutSec) * time.Second
}

func (c *Config) SlotsTTL() time.Duration {
	if c.Redis.SlotsTTLSecond <= 0 {
		return 60 * time.Second
	}
	return time.Duration(c.Redis.SlotsTTLSecond) * time.Second
}

func (c *Config) PushRate() float64 {
	if c.Push.Rate <= 0 {
		return 20.0
	}
	return c.Push.Rate
}

func (c *Config) PushBurst() int {
	if c.Push.Burst <= 0 {
		return 30
	}
	return c.Push.Burst
}
