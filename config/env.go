package config

import "os"

// FromEnv builds a Config from the process environment. HUWISE_API_KEY and
// HUWISE_DOMAIN are required; HUWISE_API_TYPE falls back to the default
// version path segment.
func FromEnv() (Config, error) {
	cfg := Default()
	cfg.APIKey = os.Getenv(EnvAPIKey)
	cfg.Domain = os.Getenv(EnvDomain)
	if apiType := os.Getenv(EnvAPIType); apiType != "" {
		cfg.APIType = apiType
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// applyEnvOverrides layers the environment on top of a file-sourced config.
// Environment values always win so one-off runs can redirect a shared file
// config at another installation.
func applyEnvOverrides(cfg Config) Config {
	if key := os.Getenv(EnvAPIKey); key != "" {
		cfg.APIKey = key
	}
	if domain := os.Getenv(EnvDomain); domain != "" {
		cfg.Domain = domain
	}
	if apiType := os.Getenv(EnvAPIType); apiType != "" {
		cfg.APIType = apiType
	}
	return cfg
}
