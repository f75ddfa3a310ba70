// Package repository contains data access implementations for the client intake API.
//
// Repositories provide persistence operations for domain entities,
// abstracting the underlying data stores (PostgreSQL, Redis).
//
// # Architecture
//
// Repository interfaces are defined at the service layer (consumer-defined
// interfaces). This package contains the concrete implementations.
//
// # Data Stores
//
//   - postgres: clients, payment details and document rows through pgx;
//     users through sqlx
//   - redis: revoked token identifiers with a TTL matching token expiry
//
// Postgres repositories join a transaction carried in the context when one
// is present, so a service can span several repositories atomically.
//
// # Thread Safety
//
// All repository implementations are safe for concurrent use.
// Connection pools are managed at the database layer.
package repository
