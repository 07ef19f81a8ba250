// Package deferred provides the asynchronous result types shared by every
// conduit transport.
//
// Single carries at most one eventual value or failure, Stream carries zero or
// more values terminated by completion or failure. Both are lazy: the
// underlying operation only runs once a consumer waits, registers a callback,
// or triggers the result explicitly, which is what makes fire-and-forget sends
// possible without leaking unexecuted requests.
//
// Transports construct these types with a start function and resolve them from
// whatever goroutine completes the operation; callers must not assume
// callbacks run on the calling goroutine.
package deferred
