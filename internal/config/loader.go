package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// searchNames are tried in order inside each config directory.
var searchNames = []string{"shatter.yaml", "shatter.yml", "shatter.toml"}

// LoadShatter loads the game configuration.
// Search order: customPath -> ~/.shatter/configs/shatter.{yaml,yml,toml} ->
// ./configs/shatter.{yaml,yml,toml} -> embedded default.
//
// Files are decoded on top of the defaults, so a file may set only the keys
// it wants to change. The result is validated.
func LoadShatter(customPath string) (ShatterConfig, string, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return ShatterConfig{}, "", fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := decode(customPath, data)
		if err != nil {
			return ShatterConfig{}, "", fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, customPath, cfg.Validate()
	}

	for _, dir := range searchDirs() {
		for _, name := range searchNames {
			path := filepath.Join(dir, name)
			data, err := os.ReadFile(path)
			if err != nil {
				continue
			}
			if cfg, err := decode(path, data); err == nil && cfg.Validate() == nil {
				return cfg, path, nil
			}
		}
	}

	cfg, err := decode("shatter.yaml", defaultShatterYAML)
	if err != nil {
		return DefaultShatterConfig(), "", nil
	}
	return cfg, "", cfg.Validate()
}

// decode parses data as TOML or YAML by file extension, starting from the
// defaults.
func decode(path string, data []byte) (ShatterConfig, error) {
	cfg := DefaultShatterConfig()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, err
		}
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}

// searchDirs returns the config directories in lookup order.
func searchDirs() []string {
	dirs := make([]string, 0, 2)
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".shatter", "configs"))
	}
	return append(dirs, "configs")
}

// Marshal renders cfg as YAML.
func Marshal(cfg ShatterConfig) ([]byte, error) {
	return yaml.Marshal(cfg)
}
