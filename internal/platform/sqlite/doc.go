// Package sqlite implements the store interfaces on a local SQLite
// database, with the schema managed by embedded goose migrations.
package sqlite
