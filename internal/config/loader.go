package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up in the user and local directories.
const FileName = "gapbird.yaml"

// Load loads and validates the gameplay configuration.
// Search order: customPath -> ~/.gapbird/gapbird.yaml -> ./configs/gapbird.yaml -> embedded default.
// A file only needs to name the values it overrides; the rest keep their defaults.
func Load(customPath string) (GameConfig, error) {
	cfg, _, err := LoadWithSource(customPath)
	return cfg, err
}

// LoadWithSource is Load that also reports which file the configuration came from.
// The source is "embedded" when no file was found.
func LoadWithSource(customPath string) (GameConfig, string, error) {
	// An explicit path must exist and parse
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return GameConfig{}, "", fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return GameConfig{}, "", fmt.Errorf("config: %s: %w", customPath, err)
		}
		return cfg, customPath, nil
	}

	candidates := []string{filepath.Join("configs", FileName)}
	if userCfgPath := userConfigPath(FileName); userCfgPath != "" {
		candidates = append([]string{userCfgPath}, candidates...)
	}

	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		// A broken file found on the search path is still an error, not a silent fallback
		cfg, err := Parse(data)
		if err != nil {
			return GameConfig{}, "", fmt.Errorf("config: %s: %w", path, err)
		}
		return cfg, path, nil
	}

	cfg, err := Parse(defaultYAML)
	if err != nil {
		return GameConfig{}, "", fmt.Errorf("config: embedded defaults: %w", err)
	}
	return cfg, "embedded", nil
}

// Parse decodes YAML on top of Default and validates the result.
func Parse(data []byte) (GameConfig, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return GameConfig{}, fmt.Errorf("failed to parse: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return GameConfig{}, err
	}
	return cfg, nil
}

// Marshal encodes the configuration as YAML.
func Marshal(cfg GameConfig) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to encode: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("config: failed to encode: %w", err)
	}
	return buf.Bytes(), nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".gapbird", filename)
}
