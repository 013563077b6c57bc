package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	yaml "gopkg.in/yaml.v2"
)

// SaveToFile writes a snapshot to path, creating parent directories as
// needed. The extension selects the encoding: .yaml and .yml produce
// YAML, everything else indented JSON.
func SaveToFile(configuration *DeviceConfig, path string) error {
	directory := filepath.Dir(path)
	if err := os.MkdirAll(directory, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	var data []byte
	var err error
	if isYAML(path) {
		data, err = yaml.Marshal(configuration)
	} else {
		data, err = json.MarshalIndent(configuration, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to marshal configuration: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

// LoadFromFile reads a snapshot saved by SaveToFile, detecting the
// encoding from the extension.
func LoadFromFile(path string) (*DeviceConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var configuration DeviceConfig
	if isYAML(path) {
		err = yaml.Unmarshal(data, &configuration)
	} else {
		err = json.Unmarshal(data, &configuration)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	return &configuration, nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// GetConfigPath returns the conventional location for a named snapshot.
func GetConfigPath(name string) string {
	return filepath.Join("etc", "valon", fmt.Sprintf("%s.json", name))
}
