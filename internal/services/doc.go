// Package services carries cross-cutting command plumbing: context
// annotation for correlation, and the sentinel error markers used to classify
// failures without coupling callers to concrete error values.
package services
