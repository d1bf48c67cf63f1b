// Package ipc exposes daemon control over JSON-RPC on a Unix domain socket.
//
// The CLI is the only intended client. Requests and responses reuse the api
// package DTOs so the wire format stays in one place.
package ipc
