// Package middleware provides the HTTP middleware for the Pageturners API.
//
// Request processing middleware:
//
//   - RequestID: unique id per request, echoed in X-Request-ID
//   - Logger: structured request logging via slog
//   - Recovery: panic recovery with a problem+json 500
//   - CORS: origin allow-listing and preflight handling
//
// Access middleware:
//
//   - Identity: reads the X-User-ID header resolved by the gateway
//   - AdminKey: bcrypt-checked shared key for operational endpoints
//
// Context values set by middleware are read through the helper
// functions GetUserID and GetRequestID.
package middleware
