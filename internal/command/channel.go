package command

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"conduit/internal/logging"
	"conduit/internal/rest"
)

// Channel is a convenience layer over a rest.Transport bound to the
// co-located service's API root.
type Channel struct {
	transport rest.Transport
	baseURL   string
	logger    *slog.Logger
}

// NewChannel binds the transport to http://localhost:{port}/api.
func NewChannel(port int, transport rest.Transport, logger *slog.Logger) *Channel {
	return &Channel{
		transport: transport,
		baseURL:   fmt.Sprintf("http://localhost:%d/api", port),
		logger:    logging.WithComponent(logger, "command"),
	}
}

// SendAndWait posts the message to /command and blocks for the raw response
// text. Failures are logged by the transport and surface as "".
func (c *Channel) SendAndWait(message string) string {
	return c.transport.PostAndWait(c.baseURL+"/command", message, nil, nil)
}

// SendAndWaitJSON encodes the message to its JSON wire form before sending.
func (c *Channel) SendAndWaitJSON(message any) (string, error) {
	encoded, err := json.Marshal(message)
	if err != nil {
		return "", fmt.Errorf("command: encode message: %w", err)
	}
	return c.SendAndWait(string(encoded)), nil
}

// SendFireAndForget posts the message to /command without blocking. The
// deferred result is triggered so the request actually dispatches.
func (c *Channel) SendFireAndForget(message string) {
	c.transport.Post(c.baseURL+"/command", message, nil, nil).Trigger()
}

// IsAlive probes /isAlive and reports true only when the body decodes to the
// JSON boolean true. It never raises; every failure degrades to false.
func (c *Channel) IsAlive() bool {
	body, err := c.transport.Get(c.baseURL+"/isAlive", nil, nil).Wait()
	if err != nil {
		c.logger.Error("liveness probe failed", slog.Any("error", err))
		return false
	}
	var alive bool
	if err := json.Unmarshal([]byte(body), &alive); err != nil {
		c.logger.Error("liveness body not a boolean",
			slog.String("body", body),
			slog.Any("error", err))
		return false
	}
	return alive
}

// Close releases resources. Nothing stateful is held, so this is a no-op.
func (c *Channel) Close() error {
	return nil
}
