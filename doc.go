// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the quickpoll API server.

quickpoll runs single-choice polls: a respondent picks one option, may
leave a comment when the poll allows it, and either signs in with an
identity token or types a display name.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=file:quickpoll.db go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..."

Values from a .env file (see -env) fill in anything not already set.

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite DSN or PostgreSQL connection string
  - ADMIN_KEY_SALT (-admin-salt): Secret for admin key HMAC
  - IDENTITY_SALT (-identity-salt): Secret shared with the identity provider

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite (default) or postgres

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (polls, responses, results, identity)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers, identity lookup
  - models: Request/response types
  - auth: IDs, admin keys, identity tokens
  - db: Connections and schema creation
  - cliparse: Configuration parsing

The terminal client lives in cmd/pollvote and is built from pollflow
(form state, validation, submission), client (HTTP gateway) and shell
(Bubble Tea screens).

See package documentation for each component.
*/
package main
