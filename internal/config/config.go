package config

import (
	"os"
	"path/filepath"

	"github.com/getkin/kin-openapi/openapi3"
	"gopkg.in/yaml.v3"
)

// FileName is the optional per-project configuration file, looked up next to
// the input file.
const FileName = ".pve2openapi.yaml"

// Config holds the document metadata and decoder settings. Every field has a
// default; a config file only overlays what it sets.
type Config struct {
	// Info becomes the output document's info block.
	Info *openapi3.Info `yaml:"info"`
	// ServerURL is the templated server URL; it should reference a {host}
	// variable.
	ServerURL string `yaml:"serverURL"`
	// HostDefault is the default value of the server's host variable.
	HostDefault string `yaml:"hostDefault"`
	// SourceVariable names the JavaScript variable holding the API tree.
	SourceVariable string `yaml:"sourceVariable"`
}

// Default returns the built-in configuration for a stock Proxmox VE apidoc.js.
func Default() *Config {
	return &Config{
		Info: &openapi3.Info{
			Title:       "Proxmox VE API",
			Description: "Generated from the Proxmox VE API viewer tree.",
			Version:     "1.0.0",
		},
		ServerURL:      "https://{host}:8006/api2/json",
		HostDefault:    "localhost",
		SourceVariable: "apiSchema",
	}
}

// Load reads FileName from dir on top of the defaults. A missing file is not
// an error; any other read or parse failure is.
func Load(dir string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile reads an explicitly named config file on top of the defaults;
// unlike Load, a missing file is an error.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
