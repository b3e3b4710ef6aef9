// Package service contains the application use cases. It orchestrates domain
// objects and the store interfaces, and owns transaction boundaries.
//
// Services return store and domain sentinel errors wrapped with context, so
// the API layer can map them to status codes with errors.Is.
package service
