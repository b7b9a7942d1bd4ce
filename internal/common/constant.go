package common

// AuthorizationHeaderName is the HTTP header (and gRPC metadata key, lower-cased)
// carrying the bearer token.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix precedes the token inside the authorization header.
const BearerPrefix = "Bearer "
