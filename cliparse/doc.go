// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Server Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

  - Port: Server listen port (default: 3318)
  - DatabaseURL: PostgreSQL connection string or SQLite DSN (required)
  - DatabaseType: "sqlite" (default) or "postgres"
  - AdminKeySalt: Secret for admin key HMAC (required)
  - IdentitySalt: Secret shared with the identity provider (required)

# Client Configuration

ParseClientFlags configures the pollvote terminal client:

	-s         POLL_SERVER_URL  (default http://localhost:3318)
	-poll      POLL_ID          (required)
	-identity  IDENTITY_TOKEN   (optional; anonymous when empty)
	-log       POLLVOTE_LOG     (optional log file)

# CLI Flags

	-p              Server port
	-d              Database URL
	-t              Database type
	-admin-salt     Admin key salt
	-identity-salt  Identity token salt
	-env            Dotenv file (default .env)

# Environment Variables

Flags fall back to environment variables:

	PORT           → -p
	DATABASE_URL   → -d
	DATABASE_TYPE  → -t
	ADMIN_KEY_SALT → -admin-salt
	IDENTITY_SALT  → -identity-salt

CLI flags take precedence over environment variables. Before the fallback
runs, the dotenv file named by -env is loaded with godotenv; it never
overrides variables that are already set, and a missing file is ignored.
*/
package cliparse
