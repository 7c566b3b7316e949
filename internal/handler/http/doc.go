// Package http implements the HTTP transport layer of go-pass-vault.
//
// It exposes route wiring, request handlers and middleware for the REST API.
// Request tracing, access logging, CORS, request timeouts and the gate chain
// (token verification and the master-password check) are handled in this
// package before requests are delegated to the service layer.
package http
