// Package config manages application configuration for the PageTurners API.
//
// The config package loads and validates configuration from environment
// variables. All configuration is centralized here to provide a single
// source of truth.
//
// # Configuration Loading
//
//	cfg := config.Load()
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Configuration Groups
//
// Configuration is organized into logical groups:
//
//   - ServerConfig: HTTP server settings (port, timeouts, CORS origins)
//   - DatabaseConfig: SurrealDB connection settings
//   - SweepConfig: event status sweep interval
//   - AdminConfig: bcrypt hash guarding the admin surface
//
// # Environment Variables
//
// Key environment variables:
//
//	SERVER_PORT           - HTTP server port (default: 8080)
//	SERVER_ENV            - development or production
//	CORS_ALLOWED_ORIGINS  - comma-separated origin list
//	SERVER_MAX_HEADER_BYTES - request header cap (default: 1 MiB)
//	DB_HOST, DB_PORT      - SurrealDB endpoint
//	DB_NAMESPACE          - namespace (default: pageturners)
//	DB_DATABASE           - database name (default: main)
//	DB_USER, DB_PASSWORD  - credentials
//	SWEEP_INTERVAL        - event sweep period (default: 1h, min: 1m)
//	ADMIN_KEY_HASH        - bcrypt hash of the admin key; required in
//	                        production, admin routes are disabled without it
//
// Sensible defaults are provided for development; Validate reports every
// problem at once rather than stopping at the first.
package config
