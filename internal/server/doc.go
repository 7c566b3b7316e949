// Package server runs the HTTP API and the optional gRPC health listener.
//
// Both transports start together and stop together: a termination signal,
// a cancelled context or the failure of either listener shuts every
// transport down, waiting up to ten seconds for in-flight requests.
package server
