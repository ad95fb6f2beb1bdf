// Package config loads and validates configuration for the MAHOSTAV API.
//
// Values come from environment variables. A .env file is read first when
// present; variables already set in the environment take precedence.
//
//	cfg, err := config.Load()
//	if err == nil {
//	    err = cfg.Validate()
//	}
//
// # Environment Variables
//
//	SERVER_PORT, SERVER_ENV, CORS_ALLOWED_ORIGINS
//	SERVER_READ_TIMEOUT, SERVER_WRITE_TIMEOUT, SERVER_SHUTDOWN_TIMEOUT
//	DB_HOST, DB_PORT, DB_NAMESPACE, DB_DATABASE, DB_USER, DB_PASSWORD
//	JWT_PRIVATE_KEY_PATH, JWT_PUBLIC_KEY_PATH, JWT_EXPIRATION_MINS, JWT_ISSUER
//	RATE_LIMIT_RATE, RATE_LIMIT_WINDOW, RATE_LIMIT_BURST
//	IDEMPOTENCY_TTL
//	SWEEPER_ENABLED, SWEEPER_INTERVAL, SWEEPER_ORPHAN_GRACE,
//	SWEEPER_TOKEN_CLEANUP_INTERVAL
//
// Validate reports every problem at once using errors.Join.
package config
