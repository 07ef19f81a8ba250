package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := validatePort("service.port", c.Service.Port); err != nil {
		return err
	}
	if err := validatePort("socket.port", c.Socket.Port); err != nil {
		return err
	}
	switch c.HTTP.Backend {
	case BackendShared, BackendIsolated:
	default:
		return fmt.Errorf("http.backend must be %q or %q, got %q", BackendShared, BackendIsolated, c.HTTP.Backend)
	}
	if c.HTTP.TimeoutSeconds <= 0 {
		return errors.New("http.timeout_seconds must be positive")
	}
	if _, err := c.ProxyURL(); err != nil {
		return fmt.Errorf("http.proxy_url: %w", err)
	}
	return nil
}

func validatePort(field string, port int) error {
	if port < 1 || port > 65535 {
		return fmt.Errorf("%s must be between 1 and 65535, got %d", field, port)
	}
	return nil
}
