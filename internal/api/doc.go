// Package api defines the transport-friendly DTOs shared by the CLI and the
// daemon, plus the BoardService that adapts board operations onto them.
//
// Keeping conversions in one place means the IPC surface and any future HTTP
// surface encode stocks and transition logs identically.
package api
