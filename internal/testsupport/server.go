// Package testsupport provides the local socket servers conduit tests talk
// to. Servers bind 127.0.0.1:0 and shut down with the test.
package testsupport

import (
	"bufio"
	"net"
	"testing"

	"conduit/internal/framed"
)

// StartLineServer starts a line-oriented TCP server. The handler runs once
// per received line; when it reports ok the returned string is written back
// as one reply line. Returns the bound port.
func StartLineServer(t testing.TB, handle func(line string) (reply string, ok bool)) int {
	return startServer(t, func() func(string) (string, bool) { return handle })
}

// startServer accepts connections and serves each with its own handler, so
// handlers may carry per-connection state.
func startServer(t testing.TB, newHandler func() func(string) (string, bool)) int {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	t.Cleanup(func() { listener.Close() })

	go func() {
		for {
			conn, err := listener.Accept()
			if err != nil {
				return
			}
			go serveLines(conn, newHandler())
		}
	}()

	return listener.Addr().(*net.TCPAddr).Port
}

func serveLines(conn net.Conn, handle func(string) (string, bool)) {
	defer conn.Close()
	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		reply, ok := handle(scanner.Text())
		if !ok {
			continue
		}
		if _, err := conn.Write([]byte(reply + "\n")); err != nil {
			return
		}
	}
}

// StartFramedServer starts a TCP server speaking the three-line framing
// protocol: it collects the payload between start and end tokens and answers
// every complete frame with reply(payload) on a single line. Returns the
// bound port.
func StartFramedServer(t testing.TB, reply func(payload string) string) int {
	t.Helper()

	return startServer(t, func() func(string) (string, bool) {
		// Frame state is per connection; concurrent channels never share it.
		var payload string
		inFrame := false
		return func(line string) (string, bool) {
			switch line {
			case framed.StartToken:
				inFrame = true
				payload = ""
				return "", false
			case framed.EndToken:
				inFrame = false
				return reply(payload), true
			default:
				if inFrame {
					payload = line
				}
				return "", false
			}
		}
	})
}
