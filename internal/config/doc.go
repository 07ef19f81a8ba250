// Package config loads, normalizes, and validates conduit configuration data.
//
// It supplies repository defaults, reads TOML files, and resolves the outbound
// proxy exactly once at load time (honouring the HTTPS_PROXY environment
// variable when no explicit proxy is configured) so transports never consult
// the environment themselves. The Config type centralizes every knob the CLI
// and channel constructors need.
//
// Always obtain settings through this package so downstream code receives
// canonical log formats, sane timeouts, and clear validation errors.
package config
