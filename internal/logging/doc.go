// Package logging assembles the structured slog loggers used across conduit.
//
// It owns the console and JSON handlers, level parsing, and the "auto" format
// that picks console output on a terminal and JSON everywhere else. Components
// receive a logger tagged with a component attribute so transport, channel,
// and CLI lines stay distinguishable in shared output.
//
// Prefer these constructors over hand-rolled slog setup so every component
// emits data with the same shape.
package logging
