// Package store defines interfaces for data persistence operations.
// The interfaces keep handlers and services independent of the database;
// internal/platform/postgres implements them with GORM.
package store
