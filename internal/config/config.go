package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Version string       `yaml:"version" json:"version"`
	Server  ServerConfig `yaml:"server" json:"server"`
	Data    DataConfig   `yaml:"data" json:"data"`
	Game    GameConfig   `yaml:"game" json:"game"`
}

type ServerConfig struct {
	Addr string `yaml:"addr" json:"addr"`
}

type DataConfig struct {
	Dir              string `yaml:"dir" json:"dir"`
	SaveFile         string `yaml:"save_file" json:"save_file"`
	AutosaveSeconds  int    `yaml:"autosave_seconds" json:"autosave_seconds"`
	TelemetryEnabled bool   `yaml:"telemetry_enabled" json:"telemetry_enabled"`
}

type GameConfig struct {
	Difficulty string `yaml:"difficulty" json:"difficulty"`
	TickMillis int    `yaml:"tick_millis" json:"tick_millis"`
}

func (c *Config) ApplyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Data.Dir == "" {
		c.Data.Dir = "data"
	}
	if c.Data.SaveFile == "" {
		c.Data.SaveFile = "save.json"
	}
	if c.Data.AutosaveSeconds == 0 {
		c.Data.AutosaveSeconds = 30
	}
	if c.Game.TickMillis == 0 {
		c.Game.TickMillis = 250
	}
}

// Balance returns the balance preset named by the difficulty field.
func (c *Config) Balance() Balance {
	switch c.Game.Difficulty {
	case "casual":
		return Casual()
	case "hard":
		return Hard()
	default:
		return Default()
	}
}

func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var r Config
	if err := yaml.Unmarshal(b, &r); err != nil {
		return nil, err
	}
	r.ApplyDefaults()
	return &r, nil
}
