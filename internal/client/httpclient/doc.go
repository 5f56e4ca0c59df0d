// Package httpclient is the single authenticated REST client every API
// module delegates to.
//
// # Request pipeline
//
// For each Request the Client:
//  1. reads the session token from its CredentialProvider and sets
//     "Authorization: Bearer <token>", or removes the header when no usable
//     token exists ("null" and "undefined" count as no token);
//  2. encodes the Body: JSON bodies keep the configured
//     "Content-Type: application/json"; Multipart bodies drop every
//     Content-Type the caller or the defaults supplied and use the one the
//     multipart encoder computes (with its boundary);
//  3. dispatches the request and returns the buffered Response.
//
// The client keeps no per-request state, caches nothing and never retries.
// Retry and replay belong to callers (see the offline and services packages).
//
// # Errors
//
// Every failure is an *Error: transport failures (StatusCode 0), non-2xx
// statuses (with the server's message, uninterpreted), and encode/decode
// failures. Use errors.As, IsTransport and StatusCode to branch.
package httpclient
