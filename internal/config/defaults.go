package config

const (
	defaultServicePort    = 8765
	defaultSocketPort     = 8766
	defaultBackend        = "shared"
	defaultTimeoutSeconds = 600
	defaultLogFormat      = "auto"
	defaultLogLevel       = "info"
)

// BackendShared and BackendIsolated are the accepted http.backend values.
const (
	BackendShared   = "shared"
	BackendIsolated = "isolated"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Service: Service{
			Port: defaultServicePort,
		},
		Socket: Socket{
			Port: defaultSocketPort,
		},
		HTTP: HTTP{
			Backend:        defaultBackend,
			TimeoutSeconds: defaultTimeoutSeconds,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
