// Package handler contains the HTTP request handlers of the client intake API.
//
// Handlers parse path parameters, JSON bodies and multipart uploads, call the
// service layer and map its errors onto status codes:
//
//   - NotFound: 404
//   - Validation, BadRequest: 400
//   - Unauthorized: 401
//   - Forbidden: 403
//   - Conflict: 409
//   - Persistence, Storage, anything else: 500
//
// Error bodies have the shape {"error": <status text>, "message": <detail>}.
// Server-side failures are logged and reported to Sentry; their detail is not
// sent to the caller.
//
// All handlers are safe for concurrent use.
package handler
