// Package preflight provides readiness checks for the filesystem paths and
// services the daemon depends on.
//
// The daemon runs RunAll once at startup and refuses to come up when a
// required check fails; the CLI status command reuses the individual check
// functions to display health.
package preflight
