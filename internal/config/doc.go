// Package config loads, normalizes, and validates stockboard configuration.
//
// Configuration lives in a TOML file (default ~/.config/stockboard/config.toml)
// and can be overridden per-field through STOCKBOARD_* environment variables.
// The [board] section defines the stage order, the archive stage, the
// restoration target, and the staleness threshold; these are data, not code,
// and every other package treats them as such.
package config
