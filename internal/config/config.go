package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Service contains the REST destination settings.
type Service struct {
	Port int `toml:"port"`
}

// Socket contains the framed socket destination settings.
type Socket struct {
	Port int `toml:"port"`
}

// HTTP contains transport-level settings shared by both REST backends.
type HTTP struct {
	// Backend selects the transport implementation: "shared" keeps one
	// reusable client per channel, "isolated" builds a fresh client per call.
	Backend        string `toml:"backend"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
	// ProxyURL routes outbound requests through a proxy. When empty, Load
	// falls back to the HTTPS_PROXY environment variable, resolved once.
	ProxyURL string `toml:"proxy_url"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for conduit.
type Config struct {
	Service Service `toml:"service"`
	Socket  Socket  `toml:"socket"`
	HTTP    HTTP    `toml:"http"`
	Logging Logging `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration
// file location.
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".config", "conduit", "config.toml"), nil
}

// Load locates, parses, and validates a configuration file. A missing file is
// not an error; defaults apply. The returned config has the proxy already
// resolved from the environment when no explicit value is set.
func Load(path string) (*Config, error) {
	cfg := Default()

	resolved, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, err
	}
	if exists {
		file, err := os.Open(resolved)
		if err != nil {
			return nil, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()
		if err := toml.NewDecoder(file).Decode(&cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if strings.TrimSpace(path) != "" {
		_, err := os.Stat(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return path, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return path, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	return defaultPath, false, nil
}

func (c *Config) normalize() {
	c.HTTP.Backend = strings.ToLower(strings.TrimSpace(c.HTTP.Backend))
	c.HTTP.ProxyURL = strings.TrimSpace(c.HTTP.ProxyURL)
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))

	if c.HTTP.ProxyURL == "" {
		c.HTTP.ProxyURL = strings.TrimSpace(os.Getenv("HTTPS_PROXY"))
	}
}

// ProxyURL parses the resolved proxy setting. It returns nil when no proxy is
// configured.
func (c *Config) ProxyURL() (*url.URL, error) {
	if c.HTTP.ProxyURL == "" {
		return nil, nil
	}
	parsed, err := url.Parse(c.HTTP.ProxyURL)
	if err != nil {
		return nil, fmt.Errorf("parse proxy url: %w", err)
	}
	if parsed.Host == "" {
		return nil, fmt.Errorf("proxy url %q has no host", c.HTTP.ProxyURL)
	}
	return parsed, nil
}

// SampleConfig returns the embedded sample configuration file contents.
func SampleConfig() string {
	return sampleConfig
}

// CreateSample writes the embedded sample configuration to the target path.
func CreateSample(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
