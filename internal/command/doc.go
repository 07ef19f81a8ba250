// Package command exposes the fixed-endpoint REST channel for driving a
// co-located service.
//
// A Channel binds a rest.Transport to http://localhost:{port}/api and offers
// send-and-wait, fire-and-forget, and a liveness probe over the /command and
// /isAlive endpoints. Fire-and-forget sends must trigger the deferred result
// explicitly; an untriggered result never dispatches its request.
//
// The liveness probe never raises: unreachable services, empty bodies, and
// non-boolean bodies all degrade to false with an error log line.
package command
