// Package assets embeds the client's compiled-in default server address,
// spec.md §6's "embedded default-address file". Grounded on
// internal/data/player_template_loader.go's go:embed usage, adapted from an
// embedded XML data directory to a single embedded YAML file.
package assets

import (
	"embed"
	"fmt"
	"net"

	"gopkg.in/yaml.v3"
)

//go:embed server.yaml
var defaultServerFS embed.FS

type defaultServer struct {
	IP   string `yaml:"ip"`
	Port int    `yaml:"port"`
}

// DefaultServerAddress returns the compiled-in default server address,
// baked into the binary at build time rather than loaded from a runtime
// config file, so a client always has somewhere to connect to even with no
// config present.
func DefaultServerAddress() (string, error) {
	data, err := defaultServerFS.ReadFile("server.yaml")
	if err != nil {
		return "", fmt.Errorf("assets: reading embedded server.yaml: %w", err)
	}

	var ds defaultServer
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return "", fmt.Errorf("assets: parsing embedded server.yaml: %w", err)
	}

	return net.JoinHostPort(ds.IP, fmt.Sprint(ds.Port)), nil
}
