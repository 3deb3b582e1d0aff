// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the quickpoll API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg)

# Endpoints

Health and identity:

	GET /health
	GET /identity - Resolve X-Identity-Token

Poll management (admin, requires X-Admin-Key):

	POST /polls              - Create poll
	GET  /polls/{id}/admin   - Poll details and options
	POST /polls/{id}/options - Add option (before the first response)
	POST /polls/{id}/close   - Stop accepting responses
	GET  /polls/{id}/results - Tally and comments

Poll taking (X-Identity-Token optional, required for private polls):

	GET  /polls/{id}             - Poll
	GET  /polls/{id}/options     - Options in display order
	POST /polls/{id}/responses   - Submit a response
	GET  /polls/{id}/my-response - Whether the identity already answered

All handlers receive the database connection and configuration.
*/
package router
