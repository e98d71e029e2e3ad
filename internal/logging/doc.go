// Package logging builds the application's slog loggers and provides typed
// attribute helpers so call sites stay terse and consistent.
//
// Console output is human-oriented text; JSON output is for log shipping.
// Component loggers carry a standardized "component" attribute so one
// stream can be filtered per subsystem.
package logging
