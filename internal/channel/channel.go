package channel

import (
	"conduit/internal/command"
	"conduit/internal/framed"
)

// Channel is a bound communication handle to one local destination. Command
// and framed channels are parallel implementations of this contract; they
// never depend on each other.
type Channel interface {
	// Send delivers one message and blocks for the textual reply.
	Send(message string) (string, error)

	// Alive reports whether the destination is currently reachable. It never
	// raises; failures degrade to false.
	Alive() bool

	// Close releases any held socket or client resources.
	Close() error
}

type commandChannel struct {
	*command.Channel
}

func (c commandChannel) Send(message string) (string, error) {
	return c.SendAndWait(message), nil
}

func (c commandChannel) Alive() bool {
	return c.IsAlive()
}

type framedChannel struct {
	*framed.Channel
}

func (f framedChannel) Alive() bool {
	return f.IsConnected()
}
