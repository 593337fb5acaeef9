// Package server provides the HTTP surface of the service: a Gin engine
// behind an h2c-capable http.Server, the standard middleware stack
// (recovery, request IDs, CORS, body-size limits, request logging) and the
// audio processing endpoints.
package server
