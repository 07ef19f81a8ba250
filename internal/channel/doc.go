// Package channel defines the transport-agnostic contract implemented by the
// command and framed channels, plus a deferred-construction factory.
//
// The factory lets a caller hold configuration without eagerly opening a
// connection or HTTP client: construction happens on the first Channel call
// and the same handle is returned afterwards.
package channel
