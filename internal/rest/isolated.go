package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"conduit/internal/deferred"
	"conduit/internal/logging"
)

// IsolatedTransport builds a fresh HTTP client for every call so no per-call
// state is ever shared between concurrent senders.
type IsolatedTransport struct {
	timeout time.Duration
	logger  *slog.Logger
}

// NewIsolatedTransport builds a per-call-client transport. A non-positive
// timeout falls back to DefaultTimeout.
func NewIsolatedTransport(timeout time.Duration, logger *slog.Logger) *IsolatedTransport {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &IsolatedTransport{
		timeout: timeout,
		logger:  logging.WithComponent(logger, "rest.isolated"),
	}
}

// Post sends body to the URL, appending params as a plain string join.
func (t *IsolatedTransport) Post(rawURL, body string, headers []Header, params []Param) *deferred.Single[string] {
	return t.send(http.MethodPost, Request{URL: rawURL, Body: body, Headers: headers, Params: params})
}

// Get requests the URL, appending params as a plain string join.
func (t *IsolatedTransport) Get(rawURL string, headers []Header, params []Param) *deferred.Single[string] {
	return t.send(http.MethodGet, Request{URL: rawURL, Headers: headers, Params: params})
}

// PostAndWait blocks for the result, returning "" on any failure.
func (t *IsolatedTransport) PostAndWait(rawURL, body string, headers []Header, params []Param) string {
	return blockingWait(t.Post(rawURL, body, headers, params))
}

// GetAndWait blocks for the result, returning "" on any failure.
func (t *IsolatedTransport) GetAndWait(rawURL string, headers []Header, params []Param) string {
	return blockingWait(t.Get(rawURL, headers, params))
}

// Close is a no-op: nothing outlives a single call.
func (t *IsolatedTransport) Close() error {
	return nil
}

// chatReply is the completion shape GetContent extracts from.
type chatReply struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// errNoContent reports a response body without the expected completion shape.
var errNoContent = errors.New("rest: response missing choices message content")

// GetContent requests the URL and resolves with the content string extracted
// from a {choices:[{message:{content}}]} body. The extraction is strict: a
// body without that shape fails the result, it never falls back to the raw
// text.
func (t *IsolatedTransport) GetContent(rawURL string, headers []Header, params []Param) *deferred.Single[string] {
	var s *deferred.Single[string]
	s = deferred.NewSingle[string](func() {
		go func() {
			body, err := t.roundTrip(http.MethodGet, Request{URL: rawURL, Headers: headers, Params: params})
			if err != nil {
				s.Fail(err)
				return
			}
			var reply chatReply
			if err := json.Unmarshal([]byte(body), &reply); err != nil {
				t.logger.Error("decode completion failed", slog.String("url", rawURL), slog.Any("error", err))
				s.Fail(err)
				return
			}
			if len(reply.Choices) == 0 || reply.Choices[0].Message.Content == "" {
				t.logger.Error("completion missing content", slog.String("url", rawURL))
				s.Fail(errNoContent)
				return
			}
			s.Complete(reply.Choices[0].Message.Content)
		}()
	})
	return s
}

func (t *IsolatedTransport) send(method string, req Request) *deferred.Single[string] {
	var s *deferred.Single[string]
	s = deferred.NewSingle[string](func() {
		go func() {
			body, err := t.roundTrip(method, req)
			if err != nil {
				s.Fail(err)
				return
			}
			s.Complete(body)
		}()
	})
	return s
}

func (t *IsolatedTransport) roundTrip(method string, req Request) (string, error) {
	client := &http.Client{Timeout: t.timeout}
	return perform(client, t.logger, method, joinQuery(req.URL, req.Params), req.Body, req.Headers)
}
