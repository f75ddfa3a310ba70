package database

import (
	"context"
	_ "embed"
	"fmt"
)

//go:embed schema.sql
var schemaSQL string

// Schema returns the bundled bootstrap schema
func Schema() string {
	return schemaSQL
}

// ApplySchema creates any missing tables and indexes. Every statement is
// idempotent, so it is safe to run on each deploy.
func (db *PostgresDB) ApplySchema(ctx context.Context) error {
	if _, err := db.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
