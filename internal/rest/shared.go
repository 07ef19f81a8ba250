package rest

import (
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"conduit/internal/deferred"
	"conduit/internal/logging"
)

// SharedTransport reuses one HTTP client across calls. The client and proxy
// configuration are read-only after construction, so one instance may serve
// concurrent callers.
type SharedTransport struct {
	client *http.Client
	logger *slog.Logger
}

// NewSharedTransport builds a transport with a reusable client. A nil proxy
// means direct connections; when set, every outbound request for this
// instance routes through the proxy's host and port. A non-positive timeout
// falls back to DefaultTimeout.
func NewSharedTransport(timeout time.Duration, proxy *url.URL, logger *slog.Logger) *SharedTransport {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	httpTransport := &http.Transport{}
	if proxy != nil {
		httpTransport.Proxy = http.ProxyURL(proxy)
	}
	return &SharedTransport{
		client: &http.Client{Timeout: timeout, Transport: httpTransport},
		logger: logging.WithComponent(logger, "rest.shared"),
	}
}

// Post sends body to the URL, appending params through structured URL
// assembly.
func (t *SharedTransport) Post(rawURL, body string, headers []Header, params []Param) *deferred.Single[string] {
	return t.send(http.MethodPost, Request{URL: rawURL, Body: body, Headers: headers, Params: params})
}

// Get requests the URL, appending params through structured URL assembly.
func (t *SharedTransport) Get(rawURL string, headers []Header, params []Param) *deferred.Single[string] {
	return t.send(http.MethodGet, Request{URL: rawURL, Headers: headers, Params: params})
}

// PostAndWait blocks for the result, returning "" on any failure.
func (t *SharedTransport) PostAndWait(rawURL, body string, headers []Header, params []Param) string {
	return blockingWait(t.Post(rawURL, body, headers, params))
}

// GetAndWait blocks for the result, returning "" on any failure.
func (t *SharedTransport) GetAndWait(rawURL string, headers []Header, params []Param) string {
	return blockingWait(t.Get(rawURL, headers, params))
}

// Close releases idle connections held by the shared client.
func (t *SharedTransport) Close() error {
	t.client.CloseIdleConnections()
	return nil
}

func (t *SharedTransport) send(method string, req Request) *deferred.Single[string] {
	var s *deferred.Single[string]
	s = deferred.NewSingle[string](func() {
		go func() {
			target, err := buildURL(req.URL, req.Params)
			if err != nil {
				t.logger.Error("build url failed", slog.String("url", req.URL), slog.Any("error", err))
				s.Fail(err)
				return
			}
			body, err := perform(t.client, t.logger, method, target, req.Body, req.Headers)
			if err != nil {
				s.Fail(err)
				return
			}
			s.Complete(body)
		}()
	})
	return s
}
