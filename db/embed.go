// Package db embeds the SQL schema for the PostgreSQL backend.
package db

import _ "embed"

// Schema contains the DDL for the catalog_items and orders tables.
//
//go:embed migrations/001_schema.sql
var Schema string
