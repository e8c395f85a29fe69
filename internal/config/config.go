// Package config loads the YAML-backed settings for the cmd/btreeidx
// CLI tool. The index engine itself (btreeindex.New) never reads
// this package - only the CLI layer does, so a library caller
// embedding the engine never picks up a stray config file.
package config

import (
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"
)

// Config holds everything the CLI needs to open or build an index
// file without the caller spelling it out on every invocation.
type Config struct {
	Home           string `yaml:"home"`
	DataDir        string `yaml:"data_dir"`
	LogDir         string `yaml:"log_dir"`
	LogLevel       string `yaml:"log_level"`
	BufferPoolSize int    `yaml:"buffer_pool_size"`
}

// Load resolves Home (homeOverride, then BTREEIDX_HOME, then
// ~/.local/share/btreeidx), creates the directories it owns, and
// overlays a config.yaml found there if one exists.
func Load(homeOverride string) (*Config, error) {
	home := homeOverride
	if home == "" {
		home = os.Getenv("BTREEIDX_HOME")
	}
	if home == "" {
		userHome, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		home = filepath.Join(userHome, ".local", "share", "btreeidx")
	}

	if err := os.MkdirAll(home, 0o755); err != nil {
		return nil, err
	}

	cfg := &Config{
		Home:           home,
		DataDir:        filepath.Join(home, "data"),
		LogDir:         filepath.Join(home, "log"),
		LogLevel:       "info",
		BufferPoolSize: 100,
	}

	cfgPath := filepath.Join(home, "config.yaml")
	if f, err := os.Open(cfgPath); err == nil {
		defer f.Close()
		if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
			return nil, err
		}
	}

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(cfg.LogDir, 0o755); err != nil {
		return nil, err
	}

	return cfg, nil
}
