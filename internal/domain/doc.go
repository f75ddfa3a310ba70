// Package domain contains the core business entities for the client intake backend.
//
// This package defines:
//   - Entity types (Client, PaymentDetails, Document, User)
//   - The closed set of named client list filters
//   - Input types for service operations, with validation tags
//
// Domain types are persistence-agnostic. JSON field names follow the column
// names of the tables they are stored in.
//
// # Naming Conventions
//
// Types ending in "Input" are used for create/update operations.
// Types ending in "Filter" are used for query operations.
package domain
