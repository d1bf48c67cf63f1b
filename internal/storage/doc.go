// Package storage persists board state in SQLite. The board holds the live
// state in memory; this package only has to write mutations down and replay
// them faithfully on startup.
package storage
