package server

import (
	"fmt"
	"strconv"
)

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API.
	ApiKey string `mapstructure:"api_key" default:""`
	// BodyLimitMB caps request bodies, which carry whole documents on /compare.
	BodyLimitMB int `mapstructure:"body_limit_mb" default:"8"`
	// Metrics enables the /metrics endpoint.
	Metrics bool `mapstructure:"metrics" default:"true"`
}

// Validate checks the port and body limit.
func (c Config) Validate() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil || port <= 0 || port > 65535 {
		return fmt.Errorf("invalid server port %q", c.Port)
	}
	if c.BodyLimitMB <= 0 {
		return fmt.Errorf("invalid body limit %d", c.BodyLimitMB)
	}
	return nil
}

// BodyLimit returns the body limit in bytes.
func (c Config) BodyLimit() int {
	return c.BodyLimitMB * 1024 * 1024
}
