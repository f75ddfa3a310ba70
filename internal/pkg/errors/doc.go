// Package errors provides application error types for the client intake API.
//
// # Error Types
//
//   - NotFound: Resource does not exist (404)
//   - Validation: Invalid input data (400)
//   - Unauthorized: Missing, malformed or expired credential (401)
//   - Forbidden: Credential present but invalid (403)
//   - Persistence: Datastore failure, including constraint violations (500)
//   - Storage: Blob write, read or unlink failure (500)
//   - Internal: Unexpected server error (500)
//
// # Usage
//
//	return apperrors.NotFound("client")
//	return apperrors.Persistence("failed to create client", err)
//
// Check error types through any amount of %w wrapping:
//
//	if apperrors.IsNotFound(err) {
//	    // Handle not found
//	}
package errors
