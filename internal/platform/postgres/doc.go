// Package postgres implements the store interfaces with GORM over a pgx
// connection pool. It owns the row models, the mapping of database errors to
// store sentinels, and a slog adapter for GORM's logger.
package postgres
