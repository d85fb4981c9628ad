// Package db holds the embedded database schema.
package db

import _ "embed"

// Schema is the DDL for all tables and indexes, executed at startup.
//
//go:embed schema.sql
var Schema string
