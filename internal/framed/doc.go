// Package framed implements the synchronous TCP channel used for local IPC.
//
// Wire format: a logical message is exactly three lines (the start token,
// one line of payload, and the end token), and the reply to a framed request
// is exactly one line. The protocol has no length prefix and does not escape
// embedded tokens or newlines; payloads containing a raw newline corrupt the
// framing.
//
// A Channel owns one connection exclusively and every operation blocks the
// calling goroutine on socket I/O. Instances are not safe for concurrent use;
// callers serialize. Received lines are additionally published to a multicast
// notifier as an extension point for future listeners; nothing pushes data
// into it outside the explicit receive path.
package framed
