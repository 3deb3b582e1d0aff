// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database connections and schema creation.

# Connections

Open picks the driver from the configured database type:

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)

  - "postgres": github.com/lib/pq
  - "sqlite": modernc.org/sqlite (pure Go); foreign keys are enabled
    through the DSN and the pool is limited to one connection

Queries throughout the service use $n placeholders, which both drivers accept.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - poll: question, visibility, comment flag, expiry
  - poll_option: options per poll, ordered by position
  - poll_response: one row per submitted answer

# Relationships

	poll 1──* poll_option
	poll 1──* poll_response
	poll_option 1──* poll_response

All foreign keys use ON DELETE CASCADE.

# Respondents

poll_response.respondent_kind is 'identity' or 'anonymous'. A CHECK
constraint keeps respondent_id present exactly for identity rows, and
UNIQUE (poll_id, respondent_id) allows one response per identity while
anonymous rows (NULL respondent_id) are unconstrained.

# Errors

IsUniqueViolation recognizes uniqueness failures from both drivers:

	if db.IsUniqueViolation(err) {
		// already responded
	}
*/
package db
