// Package rest implements the HTTP transport layer behind conduit channels.
//
// Two interchangeable backends satisfy the Transport interface: SharedTransport
// keeps one reusable HTTP client per instance (optionally routed through a
// proxy supplied at construction), while IsolatedTransport builds a fresh
// client for every call so no per-call state is ever shared. Both apply the
// same request construction rules: ordered headers with a defaulted JSON
// content type, plain key=value query appending, a fixed request timeout, and
// success only on HTTP 200.
//
// Non-blocking sends return a deferred.Single resolved on a transport
// goroutine; the blocking wrappers swallow every failure into an empty string
// after logging it, so callers needing failure detail must use the
// non-blocking path.
package rest
