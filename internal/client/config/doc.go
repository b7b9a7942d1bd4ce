// Package config loads runtime configuration for the cocreate CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables COCREATE_SERVER_URL, COCREATE_SESSION_DB and
//     COCREATE_TIMEOUT, read with viper.
//  3. Persistent command-line flags (--server, --session-db, --timeout),
//     bound by the cli package.
//
// An empty SessionDB means "session.db" inside the ".cocreate" directory
// under the working directory.
package config
