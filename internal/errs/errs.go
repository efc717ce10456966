// Package errs defines the API error shape.
//
// Every failure that reaches a client is an HTTPError: a stable code, a
// message, the status, and optionally field-level errors for forms or an
// action hint (like a redirect) the storefront can act on.
package errs
