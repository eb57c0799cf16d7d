package config

import (
	"fmt"
	"strings"
	"time"
)

const (
	DefaultAPIType = "automation/v1.0"

	EnvAPIKey     = "HUWISE_API_KEY"
	EnvDomain     = "HUWISE_DOMAIN"
	EnvAPIType    = "HUWISE_API_TYPE"
	EnvConfigFile = "HUWISE_CONFIG_FILE"

	DefaultConfigPath = "~/.huwise/config.yaml"
)

// Config carries everything the client needs to talk to one Huwise
// installation. It is constructed once at process start and injected into
// every component; nothing reads the environment after that.
type Config struct {
	APIKey  string `yaml:"api-key"`
	Domain  string `yaml:"domain"`
	APIType string `yaml:"api-type,omitempty"`

	HTTP     HTTP     `yaml:"http,omitempty"`
	Retry    Retry    `yaml:"retry,omitempty"`
	IdleWait IdleWait `yaml:"idle-wait,omitempty"`
}

type HTTP struct {
	Timeout            time.Duration `yaml:"timeout,omitempty"`
	ConnectTimeout     time.Duration `yaml:"connect-timeout,omitempty"`
	MaxConnections     int           `yaml:"max-connections,omitempty"`
	MaxIdleConnections int           `yaml:"max-idle-connections,omitempty"`
	RequestsPerSecond  float64       `yaml:"requests-per-second,omitempty"`
}

type Retry struct {
	Attempts      int           `yaml:"attempts,omitempty"`
	InitialDelay  time.Duration `yaml:"initial-delay,omitempty"`
	BackoffFactor float64       `yaml:"backoff-factor,omitempty"`
}

type IdleWait struct {
	PollInterval time.Duration `yaml:"poll-interval,omitempty"`
	MaxWait      time.Duration `yaml:"max-wait,omitempty"`
}

func Default() Config {
	return Config{
		APIType: DefaultAPIType,
		HTTP: HTTP{
			Timeout:            30 * time.Second,
			ConnectTimeout:     10 * time.Second,
			MaxConnections:     100,
			MaxIdleConnections: 20,
		},
		Retry: Retry{
			Attempts:      6,
			InitialDelay:  5 * time.Second,
			BackoffFactor: 2,
		},
		IdleWait: IdleWait{
			PollInterval: 3 * time.Second,
			MaxWait:      10 * time.Minute,
		},
	}
}

// WithDefaults fills every unset tuning knob with its default value. The
// credentials are left untouched; Validate reports on those.
func (c Config) WithDefaults() Config {
	defaults := Default()
	if strings.TrimSpace(c.APIType) == "" {
		c.APIType = defaults.APIType
	}
	if c.HTTP.Timeout <= 0 {
		c.HTTP.Timeout = defaults.HTTP.Timeout
	}
	if c.HTTP.ConnectTimeout <= 0 {
		c.HTTP.ConnectTimeout = defaults.HTTP.ConnectTimeout
	}
	if c.HTTP.MaxConnections <= 0 {
		c.HTTP.MaxConnections = defaults.HTTP.MaxConnections
	}
	if c.HTTP.MaxIdleConnections <= 0 {
		c.HTTP.MaxIdleConnections = defaults.HTTP.MaxIdleConnections
	}
	if c.Retry.Attempts <= 0 {
		c.Retry.Attempts = defaults.Retry.Attempts
	}
	if c.Retry.InitialDelay <= 0 {
		c.Retry.InitialDelay = defaults.Retry.InitialDelay
	}
	if c.Retry.BackoffFactor <= 0 {
		c.Retry.BackoffFactor = defaults.Retry.BackoffFactor
	}
	if c.IdleWait.PollInterval <= 0 {
		c.IdleWait.PollInterval = defaults.IdleWait.PollInterval
	}
	if c.IdleWait.MaxWait <= 0 {
		c.IdleWait.MaxWait = defaults.IdleWait.MaxWait
	}
	return c
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return validationError("api key is required (set "+EnvAPIKey+")", nil)
	}
	if strings.TrimSpace(c.Domain) == "" {
		return validationError("domain is required (set "+EnvDomain+")", nil)
	}
	return nil
}

// BaseURL composes the API root, without a trailing slash.
func (c Config) BaseURL() string {
	apiType := c.APIType
	if strings.TrimSpace(apiType) == "" {
		apiType = DefaultAPIType
	}
	return fmt.Sprintf("https://%s/api/%s", c.Domain, apiType)
}

// AuthorizationHeader returns the value of the Authorization header the
// Automation API expects on every request.
func (c Config) AuthorizationHeader() string {
	return "apikey " + c.APIKey
}

// String masks the API key so configs can be logged safely.
func (c Config) String() string {
	return fmt.Sprintf("Config(domain=%s, api_type=%s, api_key=%s)", c.Domain, c.APIType, maskSecret(c.APIKey))
}

func maskSecret(secret string) string {
	if secret == "" {
		return "<unset>"
	}
	if len(secret) <= 4 {
		return "****"
	}
	return secret[:2] + strings.Repeat("*", len(secret)-4) + secret[len(secret)-2:]
}
