package rest

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"conduit/internal/deferred"
)

// DefaultTimeout bounds every request; an overrun fails the result instead of
// hanging.
const DefaultTimeout = 600 * time.Second

// Transport issues POST and GET requests against a co-located service. Both
// implementations are safe for concurrent use.
type Transport interface {
	// Post sends the body to the URL and resolves with the raw response text.
	Post(url, body string, headers []Header, params []Param) *deferred.Single[string]

	// Get requests the URL and resolves with the raw response text.
	Get(url string, headers []Header, params []Param) *deferred.Single[string]

	// PostAndWait blocks for the result and returns "" on any failure. The
	// failure is logged, not surfaced; "" is ambiguous by design.
	PostAndWait(url, body string, headers []Header, params []Param) string

	// GetAndWait blocks for the result and returns "" on any failure.
	GetAndWait(url string, headers []Header, params []Param) string

	// Close releases any resources held by the transport.
	Close() error
}

// StatusError reports a non-200 response.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("rest: http %d: %s", e.StatusCode, strings.TrimSpace(e.Body))
}

func blockingWait(s *deferred.Single[string]) string {
	value, err := s.Wait()
	if err != nil {
		return ""
	}
	return value
}

// perform executes one request and returns the body text on HTTP 200. Every
// other status and every transport-level error is returned as a failure and
// logged at error level; callers cannot distinguish the two beyond the log
// line.
func perform(client *http.Client, logger *slog.Logger, method, target, body string, headers []Header) (string, error) {
	requestID := uuid.NewString()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, target, reader)
	if err != nil {
		logger.Error("build request failed",
			slog.String("request_id", requestID),
			slog.String("url", target),
			slog.Any("error", err))
		return "", fmt.Errorf("rest: build request: %w", err)
	}
	for _, h := range defaultHeaders(headers) {
		req.Header.Add(h.Name, h.Value)
	}

	resp, err := client.Do(req)
	if err != nil {
		logger.Error("request failed",
			slog.String("request_id", requestID),
			slog.String("method", method),
			slog.String("url", target),
			slog.Any("error", err))
		return "", fmt.Errorf("rest: %s %s: %w", method, target, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Error("read response failed",
			slog.String("request_id", requestID),
			slog.String("url", target),
			slog.Any("error", err))
		return "", fmt.Errorf("rest: read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		statusErr := &StatusError{StatusCode: resp.StatusCode, Body: string(payload)}
		logger.Error("unexpected status",
			slog.String("request_id", requestID),
			slog.String("method", method),
			slog.String("url", target),
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(payload)))
		return "", statusErr
	}
	return string(payload), nil
}
