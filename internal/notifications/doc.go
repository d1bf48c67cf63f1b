// Package notifications delivers board events via pluggable notifiers.
//
// The default implementation publishes to ntfy using the topic configured in
// config.toml and gracefully degrades to a no-op when notifications are
// disabled. The Service interface is a superset of the advisory hooks the
// board engine calls, so command surfaces can also send test notifications
// without duplicating HTTP glue.
//
// Extend this package if you need alternative transports; board code depends
// only on the simple Service interface.
package notifications
