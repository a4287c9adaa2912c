// Package config loads deployment settings for specline. The settings file
// picks the discovery strategy: when NodesFile is set the static resolver
// is used, otherwise the live registry.
package config

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	yaml "gopkg.in/yaml.v3"

	"specline/internal/registry"
)

// Settings holds everything the CLI and the MCP server need to run a query
// round. All fields are optional; zero values fall back to Default().
type Settings struct {
	RegistryURL    string `yaml:"registry_url" json:"registry_url"`
	Capability     string `yaml:"capability" json:"capability"`
	NodesFile      string `yaml:"nodes_file" json:"nodes_file"`
	TimeoutSeconds int    `yaml:"timeout_seconds" json:"timeout_seconds"`
	MaxInFlight    int    `yaml:"max_in_flight" json:"max_in_flight"`
	LogLevel       string `yaml:"log_level" json:"log_level"`
	LogFormat      string `yaml:"log_format" json:"log_format"`
}

// Default returns the stock settings: live registry discovery, 30 second
// per-node deadline, unlimited fan-out, text logging at info.
func Default() Settings {
	return Settings{
		RegistryURL:    registry.DefaultRegistryURL,
		Capability:     registry.DefaultCapability,
		TimeoutSeconds: 30,
		LogLevel:       "info",
		LogFormat:      "text",
	}
}

// Timeout returns the per-node deadline as a duration.
func (s Settings) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// Resolver picks the discovery strategy the settings call for. client may
// be nil to use http.DefaultClient.
func (s Settings) Resolver(client *http.Client) registry.Resolver {
	if s.NodesFile != "" {
		return &registry.StaticResolver{Source: s.NodesFile, HTTPClient: client}
	}
	return &registry.LiveResolver{
		RegistryURL: s.RegistryURL,
		Capability:  s.Capability,
		HTTPClient:  client,
	}
}

// LoadFromPath reads a settings file (YAML or JSON, detected by extension
// or content) and backfills unset fields from Default().
func LoadFromPath(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("read settings: %w", err)
	}
	return Load(data, filepath.Ext(path))
}

// Load parses settings from bytes. ext is the file extension for a format
// hint; empty means detect from content.
func Load(data []byte, ext string) (Settings, error) {
	s, err := parse(data, ext)
	if err != nil {
		return Settings{}, err
	}
	return withDefaults(s), nil
}

func parse(data []byte, ext string) (Settings, error) {
	var s Settings
	ext = strings.ToLower(ext)
	if ext == ".yml" {
		ext = ".yaml"
	}
	switch ext {
	case ".yaml":
		if err := yaml.Unmarshal(data, &s); err != nil {
			return Settings{}, fmt.Errorf("parse settings yaml: %w", err)
		}
		return s, nil
	case ".json":
		if err := json.Unmarshal(data, &s); err != nil {
			return Settings{}, fmt.Errorf("parse settings json: %w", err)
		}
		return s, nil
	}
	if strings.HasPrefix(strings.TrimSpace(string(data)), "{") {
		if err := json.Unmarshal(data, &s); err != nil {
			return Settings{}, fmt.Errorf("parse settings json: %w", err)
		}
		return s, nil
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("parse settings yaml: %w", err)
	}
	return s, nil
}

// withDefaults backfills zero fields. NodesFile and MaxInFlight stay as
// given: empty and zero are meaningful there (live discovery, unlimited).
func withDefaults(s Settings) Settings {
	d := Default()
	if s.RegistryURL == "" {
		s.RegistryURL = d.RegistryURL
	}
	if s.Capability == "" {
		s.Capability = d.Capability
	}
	if s.TimeoutSeconds <= 0 {
		s.TimeoutSeconds = d.TimeoutSeconds
	}
	if s.LogLevel == "" {
		s.LogLevel = d.LogLevel
	}
	if s.LogFormat == "" {
		s.LogFormat = d.LogFormat
	}
	return s
}
