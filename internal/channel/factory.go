package channel

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"conduit/internal/command"
	"conduit/internal/config"
	"conduit/internal/framed"
	"conduit/internal/rest"
)

// Kind selects which channel implementation a factory builds.
type Kind string

const (
	KindCommand Kind = "command"
	KindFramed  Kind = "framed"
)

// Factory holds everything needed to build a channel without opening one.
type Factory struct {
	kind   Kind
	cfg    *config.Config
	logger *slog.Logger

	once sync.Once
	ch   Channel
	err  error
}

// NewFactory captures the configuration for later construction. Nothing is
// dialed until Channel is called.
func NewFactory(kind Kind, cfg *config.Config, logger *slog.Logger) *Factory {
	return &Factory{kind: kind, cfg: cfg, logger: logger}
}

// Channel constructs the channel on first use and returns the same handle on
// every subsequent call.
func (f *Factory) Channel() (Channel, error) {
	f.once.Do(func() {
		f.ch, f.err = f.build()
	})
	return f.ch, f.err
}

func (f *Factory) build() (Channel, error) {
	switch f.kind {
	case KindCommand:
		transport, err := NewTransport(f.cfg, f.logger)
		if err != nil {
			return nil, err
		}
		return commandChannel{command.NewChannel(f.cfg.Service.Port, transport, f.logger)}, nil
	case KindFramed:
		// Construction attempts the connection; failure leaves a degraded
		// channel visible through Alive, never an error.
		return framedChannel{framed.New(f.cfg.Socket.Port, f.logger)}, nil
	default:
		return nil, fmt.Errorf("channel: unknown kind %q", f.kind)
	}
}

// NewTransport builds the configured rest backend: a shared client routed
// through the resolved proxy, or an isolated per-call client.
func NewTransport(cfg *config.Config, logger *slog.Logger) (rest.Transport, error) {
	timeout := time.Duration(cfg.HTTP.TimeoutSeconds) * time.Second
	switch cfg.HTTP.Backend {
	case config.BackendIsolated:
		return rest.NewIsolatedTransport(timeout, logger), nil
	default:
		proxy, err := cfg.ProxyURL()
		if err != nil {
			return nil, err
		}
		return rest.NewSharedTransport(timeout, proxy, logger), nil
	}
}
