// Package client talks to the cocreate HTTP API.
//
// HTTPClient decodes the {success, message, ...} envelope, attaches the
// bearer token and maps failures onto sentinel errors: ErrUnavailable when
// the server cannot be reached and ErrUnauthorized for 401 responses. Other
// failures are returned as *APIError carrying the server's message.
package client
