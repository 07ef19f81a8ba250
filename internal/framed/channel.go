package framed

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"strings"
	"time"

	evbus "github.com/asaskevich/EventBus"

	"conduit/internal/logging"
)

// Framing tokens marking the start and end of a logical message.
const (
	StartToken = "_!START_"
	EndToken   = "_!END_"
)

const (
	dialTimeout  = 2 * time.Second
	inboundTopic = "framed:inbound"
)

// ErrNotConnected reports an operation attempted without an open connection.
var ErrNotConnected = errors.New("framed: not connected")

// Channel is a synchronous framed TCP connection to a local peer. Not safe
// for concurrent use; a single request/response pair is in flight at a time.
type Channel struct {
	logger *slog.Logger
	bus    evbus.Bus

	conn   net.Conn
	reader *bufio.Reader
	writer *bufio.Writer
	port   int
}

// New builds a channel and attempts the connection immediately. A connection
// failure is logged and leaves the instance degraded; inspect IsConnected.
func New(port int, logger *slog.Logger) *Channel {
	c := &Channel{
		logger: logging.WithComponent(logger, "framed"),
		bus:    evbus.New(),
	}
	c.Connect(port)
	return c
}

// Connect opens a TCP connection to localhost:port. It logs and returns false
// on any I/O error, and refuses while a prior connection exists: discard it
// with Close first.
func (c *Channel) Connect(port int) bool {
	if c.conn != nil {
		c.logger.Error("connect refused: existing connection must be closed first",
			slog.Int("port", port),
			slog.Int("connected_port", c.port))
		return false
	}
	conn, err := net.DialTimeout("tcp", net.JoinHostPort("localhost", strconv.Itoa(port)), dialTimeout)
	if err != nil {
		c.logger.Error("connect failed", slog.Int("port", port), slog.Any("error", err))
		return false
	}
	c.conn = conn
	c.reader = bufio.NewReader(conn)
	c.writer = bufio.NewWriter(conn)
	c.port = port
	c.logger.Debug("connected", slog.Int("port", port))
	return true
}

// IsConnected reports whether the socket is open.
func (c *Channel) IsConnected() bool {
	return c.conn != nil
}

// SendRaw writes one line to the socket.
func (c *Channel) SendRaw(message string) error {
	if !c.IsConnected() {
		return ErrNotConnected
	}
	if _, err := c.writer.WriteString(message + "\n"); err != nil {
		return fmt.Errorf("framed: write: %w", err)
	}
	if err := c.writer.Flush(); err != nil {
		return fmt.Errorf("framed: flush: %w", err)
	}
	return nil
}

// ReceiveRaw blocks reading one line from the socket. Every received line is
// also published to the inbound notifier.
func (c *Channel) ReceiveRaw() (string, error) {
	if !c.IsConnected() {
		return "", ErrNotConnected
	}
	line, err := c.reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("framed: read: %w", err)
	}
	line = strings.TrimRight(line, "\r\n")
	c.bus.Publish(inboundTopic, line)
	return line, nil
}

// Send writes one framed message (start token, payload, and end token on
// separate lines) then blocks for exactly one line of response.
func (c *Channel) Send(message string) (string, error) {
	if err := c.SendWithoutResponse(message); err != nil {
		return "", err
	}
	return c.ReceiveRaw()
}

// SendJSON encodes the message to its JSON wire form before sending.
func (c *Channel) SendJSON(message any) (string, error) {
	encoded, err := json.Marshal(message)
	if err != nil {
		return "", fmt.Errorf("framed: encode message: %w", err)
	}
	return c.Send(string(encoded))
}

// SendWithoutResponse writes the three framed lines and does not read a
// reply.
func (c *Channel) SendWithoutResponse(message string) error {
	if !c.IsConnected() {
		return ErrNotConnected
	}
	if strings.Contains(message, "\n") {
		// The protocol cannot escape embedded newlines; the peer will
		// misparse this frame.
		c.logger.Warn("payload contains a raw newline", slog.Int("port", c.port))
	}
	for _, line := range []string{StartToken, message, EndToken} {
		if err := c.SendRaw(line); err != nil {
			return err
		}
	}
	return nil
}

// Subscribe registers a listener on the inbound notifier. Listeners run
// synchronously on the receiving goroutine, once per received line.
func (c *Channel) Subscribe(fn func(line string)) error {
	return c.bus.Subscribe(inboundTopic, fn)
}

// Unsubscribe removes a previously registered listener.
func (c *Channel) Unsubscribe(fn func(line string)) error {
	return c.bus.Unsubscribe(inboundTopic, fn)
}

// Close releases the read side, the write side, and the socket, in that
// order, tolerating sub-resources that are nil or already closed.
func (c *Channel) Close() error {
	hadConn := c.conn != nil
	c.reader = nil
	if c.writer != nil {
		// Flush errors on a dead socket are expected during teardown.
		_ = c.writer.Flush()
		c.writer = nil
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
			c.logger.Warn("close socket", slog.Int("port", c.port), slog.Any("error", err))
		}
		c.conn = nil
	}
	if hadConn {
		c.logger.Info("closed framed channel", slog.Int("port", c.port))
	}
	return nil
}
