// Package api handles incoming HTTP requests for the user and blog routes. It
// decodes requests, calls the services and writes JSON responses; status codes
// and client-facing messages are decided here and nowhere else.
package api
