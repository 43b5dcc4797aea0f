package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const DefaultMinutes = 25

type Config struct {
	DataDir        string
	DBPath         string
	DefaultMinutes uint64
	NotifyDisabled bool
}

type fileConfig struct {
	DefaultMinutes uint64 `yaml:"default_minutes"`
	NotifyDisabled bool   `yaml:"notify_disabled"`
}

// Load resolves the data directory and applies overrides from an optional
// config.yaml inside it. A missing file is fine; malformed yaml is not.
func Load(dataDir string) (Config, error) {
	if dataDir == "" {
		return Config{}, fmt.Errorf("data directory is required")
	}
	cfg := Config{
		DataDir:        dataDir,
		DBPath:         filepath.Join(dataDir, "index.db"),
		DefaultMinutes: DefaultMinutes,
	}

	raw, err := os.ReadFile(filepath.Join(dataDir, "config.yaml"))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	fc := fileConfig{}
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if fc.DefaultMinutes > 0 {
		cfg.DefaultMinutes = fc.DefaultMinutes
	}
	cfg.NotifyDisabled = fc.NotifyDisabled
	return cfg, nil
}
