// Package handler contains the HTTP layer of the Pageturners API.
//
// Handlers decode requests, delegate to the services and render the
// result. All error translation goes through MapServiceError so status
// codes stay consistent across endpoints; responses follow RFC 9457
// problem details on failure and a data envelope on success.
package handler
