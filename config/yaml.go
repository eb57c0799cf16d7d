package config

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// durationWire accepts Go duration strings ("30s", "10m") in the config file.
type durationWire time.Duration

func (d *durationWire) UnmarshalYAML(value *yaml.Node) error {
	var text string
	if err := value.Decode(&text); err != nil {
		return fmt.Errorf("expected a duration string: %w", err)
	}
	parsed, err := time.ParseDuration(text)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	*d = durationWire(parsed)
	return nil
}

type httpWire struct {
	Timeout            durationWire `yaml:"timeout,omitempty"`
	ConnectTimeout     durationWire `yaml:"connect-timeout,omitempty"`
	MaxConnections     int          `yaml:"max-connections,omitempty"`
	MaxIdleConnections int          `yaml:"max-idle-connections,omitempty"`
	RequestsPerSecond  float64      `yaml:"requests-per-second,omitempty"`
}

func (h *HTTP) UnmarshalYAML(value *yaml.Node) error {
	var wire httpWire
	if err := value.Decode(&wire); err != nil {
		return err
	}
	*h = HTTP{
		Timeout:            time.Duration(wire.Timeout),
		ConnectTimeout:     time.Duration(wire.ConnectTimeout),
		MaxConnections:     wire.MaxConnections,
		MaxIdleConnections: wire.MaxIdleConnections,
		RequestsPerSecond:  wire.RequestsPerSecond,
	}
	return nil
}

type retryWire struct {
	Attempts      int          `yaml:"attempts,omitempty"`
	InitialDelay  durationWire `yaml:"initial-delay,omitempty"`
	BackoffFactor float64      `yaml:"backoff-factor,omitempty"`
}

func (r *Retry) UnmarshalYAML(value *yaml.Node) error {
	var wire retryWire
	if err := value.Decode(&wire); err != nil {
		return err
	}
	*r = Retry{
		Attempts:      wire.Attempts,
		InitialDelay:  time.Duration(wire.InitialDelay),
		BackoffFactor: wire.BackoffFactor,
	}
	return nil
}

type idleWaitWire struct {
	PollInterval durationWire `yaml:"poll-interval,omitempty"`
	MaxWait      durationWire `yaml:"max-wait,omitempty"`
}

func (w *IdleWait) UnmarshalYAML(value *yaml.Node) error {
	var wire idleWaitWire
	if err := value.Decode(&wire); err != nil {
		return err
	}
	*w = IdleWait{
		PollInterval: time.Duration(wire.PollInterval),
		MaxWait:      time.Duration(wire.MaxWait),
	}
	return nil
}
