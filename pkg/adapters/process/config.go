package process

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// HookConfig describes an activation hook backed by an external command.
type HookConfig struct {
	Name        string            `yaml:"name" json:"name"`
	Command     string            `yaml:"command" json:"command"`
	Args        []string          `yaml:"args" json:"args"`
	Environment map[string]string `yaml:"env" json:"env"`
	Description string            `yaml:"description" json:"description"`
	// Timeout overrides the runner timeout for this hook (e.g. "5s").
	Timeout time.Duration `yaml:"timeout" json:"timeout"`
}

// ConfigFile represents the structure of hooks.yaml.
type ConfigFile struct {
	Hooks []HookConfig `yaml:"hooks" json:"hooks"`
}

// LoadHooks reads a configuration file (YAML or JSON) and returns a map of hook names to configs.
// A missing file means no hooks are configured.
func LoadHooks(path string) (map[string]HookConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]HookConfig{}, nil
		}
		return nil, fmt.Errorf("failed to read hooks config: %w", err)
	}

	var cfg ConfigFile
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	} else {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	}

	return Index(cfg.Hooks), nil
}

// Index keys hooks by name, skipping unnamed entries.
func Index(hooks []HookConfig) map[string]HookConfig {
	out := make(map[string]HookConfig, len(hooks))
	for _, h := range hooks {
		if h.Name == "" {
			continue
		}
		out[h.Name] = h
	}
	return out
}
