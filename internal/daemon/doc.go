// Package daemon assembles the long-running board process: storage, the
// in-memory board, notifications, and single-instance locking. The IPC server
// in package ipc is its only control surface.
package daemon
