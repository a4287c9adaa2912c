package main

import (
	"fmt"

	"specline/internal/config"
	"specline/internal/logging"
)

// loadSettings builds the effective settings for a command run: defaults,
// then the settings file when given, then root flag overrides on top.
func loadSettings() (config.Settings, error) {
	settings := config.Default()
	if rootFlags.configPath != "" {
		loaded, err := config.LoadFromPath(rootFlags.configPath)
		if err != nil {
			return config.Settings{}, fmt.Errorf("load config: %w", err)
		}
		settings = loaded
	}
	settings = applyOverrides(settings)

	logging.Init(logging.ParseLevel(settings.LogLevel), settings.LogFormat)
	return settings, nil
}

// applyOverrides layers non-empty root flags over loaded settings.
func applyOverrides(s config.Settings) config.Settings {
	if rootFlags.nodesFile != "" {
		s.NodesFile = rootFlags.nodesFile
	}
	if rootFlags.registry != "" {
		s.RegistryURL = rootFlags.registry
	}
	if rootFlags.logLevel != "" {
		s.LogLevel = rootFlags.logLevel
	}
	if rootFlags.logFormat != "" {
		s.LogFormat = rootFlags.logFormat
	}
	return s
}
