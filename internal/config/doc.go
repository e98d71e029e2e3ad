// Package config loads, normalizes, and validates Cadenza configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and converts the [match] section into the
// matching engine's Settings. Always obtain settings through this package so
// downstream code receives sanitized paths, parsed recommendation ceilings,
// and clear validation errors.
package config
