// Package middleware contains the HTTP middleware specific to this API:
// bearer-token authentication and per-request trace IDs.
package middleware
