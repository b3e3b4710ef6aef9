// Package migrations embeds the SQL migrations that own the PostgreSQL schema.
// They are applied by cmd/migrate, never by the server.
package migrations

import "embed"

// FS holds every *.sql migration file.
//
//go:embed *.sql
var FS embed.FS

// Dir is the directory within FS that holds the migrations.
const Dir = "."

// TableName is the table goose records applied versions in.
const TableName = "schema_migrations"
