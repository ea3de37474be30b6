// Package logging assembles the slog loggers used by hbcheckup.
//
// It owns the console and JSON handlers, level parsing, and the helpers that
// tag records with a component name and the request id of the HTTP call being
// served. NewNop gives tests and optional wiring a logger that cannot fail.
package logging
