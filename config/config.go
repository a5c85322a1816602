package config

import (
	"errors"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type HTTP struct {
	Addr string `yaml:"addr"`
}

type Logging struct {
	Env       string `yaml:"env"`       // dev|prod
	Service   string `yaml:"service"`   // room-broker
	Version   string `yaml:"version"`   // v0.1.0
	Backend   string `yaml:"backend"`   // std|zap
	AddSource bool   `yaml:"addSource"` // false|true
	Debug     bool   `yaml:"debug"`     // false|true
}

type CORS struct {
	AllowedOrigins []string `yaml:"allowedOrigins"`
}

type Rooms struct {
	InactivityThreshold string `yaml:"inactivityThreshold"` // e.g. 30m
	SweepInterval       string `yaml:"sweepInterval"`       // e.g. 60s
	CodeLength          int    `yaml:"codeLength"`
	SessionIDLength     int    `yaml:"sessionIdLength"`
}

type Config struct {
	HTTP    HTTP    `yaml:"http"`
	Logging Logging `yaml:"logging"`
	CORS    CORS    `yaml:"cors"`
	Rooms   Rooms   `yaml:"rooms"`
}

func LoadConfig() (*Config, error) {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "./config/config.yaml"
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.HTTP.Addr == "" {
		return errors.New("http.addr is required")
	}
	if c.Rooms.CodeLength < 0 || c.Rooms.SessionIDLength < 0 {
		return errors.New("rooms identifier lengths must not be negative")
	}
	// defaults when values are not set
	if c.Logging.Service == "" {
		c.Logging.Service = "room-broker"
	}
	if c.Logging.Env == "" {
		c.Logging.Env = "dev"
	}
	if c.Logging.Version == "" {
		c.Logging.Version = "v0.1.0"
	}
	if c.Logging.Backend == "" {
		c.Logging.Backend = "std"
	}
	if len(c.CORS.AllowedOrigins) == 0 {
		c.CORS.AllowedOrigins = []string{"*"}
	}
	if c.Rooms.CodeLength == 0 {
		c.Rooms.CodeLength = 12
	}
	if c.Rooms.SessionIDLength == 0 {
		c.Rooms.SessionIDLength = 16
	}
	return nil
}

// InactivityThresholdDuration is the maximum idle time before a room
// becomes eligible for expiry.
func (r Rooms) InactivityThresholdDuration() time.Duration {
	return parseDurationOr(30*time.Minute, r.InactivityThreshold)
}

// SweepIntervalDuration is the reaper period; it should stay much smaller
// than the inactivity threshold.
func (r Rooms) SweepIntervalDuration() time.Duration {
	return parseDurationOr(60*time.Second, r.SweepInterval)
}

// helper for parsing timeouts
func parseDurationOr(def time.Duration, s string) time.Duration {
	if d, err := time.ParseDuration(s); err == nil && d > 0 {
		return d
	}
	return def
}
