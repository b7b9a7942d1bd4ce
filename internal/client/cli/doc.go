// Package cli implements the cocreate command-line client on top of cobra.
//
// Commands talk to the server's HTTP API; the bearer token from register or
// login is kept in a local SQLite session store so later invocations are
// authenticated without prompting.
package cli
