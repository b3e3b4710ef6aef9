// Package shared holds the HTTP helpers used by both the handlers and the
// middleware: context keys, JSON request decoding and JSON responses.
package shared
