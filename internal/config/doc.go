// Package config loads, normalizes, and validates tagpivot configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files from the XDG config location or a
// project-local tagpivot.toml. The Config type centralizes every knob the
// CLI needs.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical mode and format values, and clear validation
// errors.
package config
