// Package service contains the business logic layer for the client intake API.
//
// Services coordinate between handlers and repositories: they validate input,
// compose repository calls into one transaction where an operation spans
// several rows, and keep document rows and blobs in step.
//
// Services depend on repository interfaces defined in this package.
//
// # Blob consistency
//
// Rows are the source of truth. Blob unlinks that follow a committed delete
// are best-effort; failures are logged and never returned to the caller.
//
// # Thread Safety
//
// All services are safe for concurrent use from multiple goroutines.
package service
