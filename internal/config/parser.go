package config

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// format represents the file format of a config file.
type format int

const (
	formatUnknown format = iota
	formatYAML
	formatTOML
	formatJSON
)

// detectFormat determines the file format from the extension, falling back
// to content sniffing for extensionless files.
func detectFormat(path string, content []byte) format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return formatYAML
	case ".toml":
		return formatTOML
	case ".json":
		return formatJSON
	}
	return sniffFormat(content)
}

// sniffFormat guesses the format from content: JSON opens with a brace,
// TOML uses `key = value` or [sections], YAML uses `key: value`.
func sniffFormat(content []byte) format {
	trimmed := strings.TrimSpace(string(content))

	if strings.HasPrefix(trimmed, "{") {
		return formatJSON
	}

	for _, line := range strings.Split(trimmed, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.Contains(line, " = ") || strings.HasPrefix(line, "[") {
			return formatTOML
		}
		if strings.Contains(line, ":") {
			return formatYAML
		}
	}
	return formatUnknown
}

// unmarshal parses content into cfg using the detected format.
func unmarshal(path string, content []byte, cfg *Config) error {
	switch detectFormat(path, content) {
	case formatYAML:
		if err := yaml.Unmarshal(content, cfg); err != nil {
			return fmt.Errorf("parsing %s as YAML: %w", path, err)
		}
	case formatTOML:
		if err := toml.Unmarshal(content, cfg); err != nil {
			return fmt.Errorf("parsing %s as TOML: %w", path, err)
		}
	case formatJSON:
		if err := json.Unmarshal(content, cfg); err != nil {
			return fmt.Errorf("parsing %s as JSON: %w", path, err)
		}
	default:
		return fmt.Errorf("cannot determine format of %s", path)
	}
	return nil
}
