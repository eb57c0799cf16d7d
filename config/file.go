package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load resolves the effective configuration: an optional YAML file
// (HUWISE_CONFIG_FILE, or ~/.huwise/config.yaml when present) overlaid with
// environment variables. A missing default file is not an error; a file named
// explicitly via HUWISE_CONFIG_FILE must exist.
func Load() (Config, error) {
	path := os.Getenv(EnvConfigFile)
	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath
	}

	resolved, err := expandHome(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()
	fileCfg, err := loadFile(resolved)
	switch {
	case err == nil:
		cfg = fileCfg.WithDefaults()
	case errors.Is(err, fs.ErrNotExist) && !explicit:
		// No file, env-only operation.
	default:
		return Config{}, err
	}

	cfg = applyEnvOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Config{}, err
		}
		return Config{}, internalError(fmt.Sprintf("failed to read config file %q", path), err)
	}

	var cfg Config
	decoder := yaml.NewDecoder(strings.NewReader(string(data)))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return Config{}, validationError(fmt.Sprintf("invalid config file %q", path), err)
	}
	return cfg, nil
}

func expandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", internalError("failed to resolve home directory", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
