// Package config loads YAML configuration for the server and client
// binaries, grounded on the teacher's internal/config package: a defaults
// struct, an os.ReadFile + os.IsNotExist-tolerant loader, yaml.Unmarshal
// over the defaults so a partial file only overrides what it mentions.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Server holds everything internal/serverapp.Run needs to stand up a
// listener and run the session/match lifecycle.
type Server struct {
	BindAddress string `yaml:"bind_address"`
	Port        int    `yaml:"port"`

	LogLevel string `yaml:"log_level"`

	// MaxPlayers bounds the color.Palette assignment, per spec.md §4.4.
	MaxPlayers int `yaml:"max_players"`

	// TickHz is the simulation's fixed tick rate, per spec.md §4.5.
	TickHz int `yaml:"tick_hz"`
}

// DefaultServer returns sensible defaults for the server binary.
func DefaultServer() Server {
	return Server{
		BindAddress: "0.0.0.0",
		Port:        9310,
		LogLevel:    "info",
		MaxPlayers:  10,
		TickHz:      60,
	}
}

// LoadServer loads server config from a YAML file at path, falling back to
// DefaultServer entirely if the file doesn't exist.
func LoadServer(path string) (Server, error) {
	cfg := DefaultServer()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// Client holds everything internal/clientapp.Run needs to dial a server and
// run the session lifecycle.
type Client struct {
	ServerAddress string `yaml:"server_address"`
	LogLevel      string `yaml:"log_level"`
}

// DefaultClient returns sensible defaults for the client binary.
func DefaultClient() Client {
	return Client{
		ServerAddress: "127.0.0.1:9310",
		LogLevel:      "info",
	}
}

// LoadClient loads client config from a YAML file at path, falling back to
// DefaultClient entirely if the file doesn't exist.
func LoadClient(path string) (Client, error) {
	cfg := DefaultClient()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}
