// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - CreatePollRequest: title, description, is_public, allow_comments, expires_at, created_by
  - AddOptionRequest: text
  - SubmitResponseRequest: option_id, comment (optional), user_name (optional)

# Response Types

Types for JSON responses:

  - CreatePollResponse: poll_id, admin_key
  - AddOptionResponse: option_id
  - SubmitResponseResponse: response_id, message
  - MyResponseResponse: has_responded
  - ClosePollResponse: expires_at
  - ResultsResponse: per-option tallies and comments
  - ErrorResponse: error, message

# Domain Types

  - Poll: question metadata; Expired reports whether it still accepts responses
  - PollOption: selectable option, ordered by Position
  - PollResponse: a stored answer
  - Identity: authenticated user {id, name}
  - Respondent: tagged author of a response (identity or anonymous)

# Respondent Kinds

	RespondentIdentity  = "identity"
	RespondentAnonymous = "anonymous"

Only identity respondents carry an ID; build them with IdentifiedRespondent
and AnonymousRespondent rather than filling the struct by hand.
*/
package models
