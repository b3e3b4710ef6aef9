// Package mocks provides test doubles for the service and auth interfaces.
//
// MockJWTService uses function fields; the service mocks are built on
// testify's mock.Mock.
package mocks
