package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gofrs/flock"

	"conduit/internal/channel"
	"conduit/internal/command"
	"conduit/internal/config"
	"conduit/internal/framed"
	"conduit/internal/logging"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		c.config, c.configErr = config.Load(path)
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() *slog.Logger {
	c.loggerOnce.Do(func() {
		opts := logging.Options{Level: "info", Format: "auto"}
		if cfg, err := c.ensureConfig(); err == nil {
			opts.Level = cfg.Logging.Level
			opts.Format = cfg.Logging.Format
		}
		logger, err := logging.New(opts)
		if err != nil {
			logger = logging.NewNop()
		}
		c.logger = logger
	})
	return c.logger
}

// commandChannel builds the REST channel from configuration.
func (c *commandContext) commandChannel() (*command.Channel, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger := c.ensureLogger()
	transport, err := channel.NewTransport(cfg, logger)
	if err != nil {
		return nil, err
	}
	return command.NewChannel(cfg.Service.Port, transport, logger), nil
}

// withFramedChannel runs fn with a connected framed channel while holding the
// cross-process socket lock, so concurrent CLI invocations never interleave
// frames on the shared connection endpoint.
func (c *commandContext) withFramedChannel(fn func(*framed.Channel) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}

	lockDir := filepath.Join(os.TempDir(), "conduit")
	if err := os.MkdirAll(lockDir, 0o755); err != nil {
		return fmt.Errorf("create lock directory: %w", err)
	}
	lock := flock.New(filepath.Join(lockDir, "framed.lock"))
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("acquire socket lock: %w", err)
	}
	defer lock.Unlock()

	ch := framed.New(cfg.Socket.Port, c.ensureLogger())
	defer ch.Close()
	if !ch.IsConnected() {
		return fmt.Errorf("framed socket unreachable on port %d", cfg.Socket.Port)
	}
	return fn(ch)
}
