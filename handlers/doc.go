// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the quickpoll API.

# Handler Types

Each handler is a struct with database and config dependencies:

  - PollHandler: Poll administration (create, options, close)
  - ResponseHandler: Poll taking (read poll and options, submit)
  - ResultsHandler: Tallies and comments for the poll owner
  - IdentityHandler: Resolves identity tokens

Handlers are created via constructor functions that accept *sql.DB and Config:

	pollHandler := handlers.NewPollHandler(db, cfg)

# Poll Administration

	POST /polls              → CreatePoll (returns admin_key)
	POST /polls/{id}/options → AddOption (until the first response)
	POST /polls/{id}/close   → ClosePoll (sets expires_at to now)
	GET  /polls/{id}/results → GetResults

Admin operations require the X-Admin-Key header.

# Poll Taking

	GET  /polls/{id}             → GetPoll
	GET  /polls/{id}/options     → GetOptions
	POST /polls/{id}/responses   → SubmitResponse
	GET  /polls/{id}/my-response → GetMyResponse

X-Identity-Token is optional. With it, the response is stored under the
identity (once per poll) and its name; without it, user_name is required
and the client IP is stored hashed. Private polls answer 404 to callers
without an identity. Comments are kept only for polls that allow them.
*/
package handlers
