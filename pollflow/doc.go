// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package pollflow implements the poll-taking flow of a single respondent:
load the poll, edit a draft answer, validate it and submit it once.

# Session

A Session holds everything one flow instance knows: the loaded poll and
options, the draft, the optional identity, and the in-flight flag. It is
safe for concurrent use. Mutators never fail; after a successful
submission (and while one is in flight) they are ignored.

	s := pollflow.NewSession(identity)
	s.SetSelectedOption("o1")
	s.SetComment("see you there")
	state := s.Snapshot()

# Validation

Validate and CanSubmit are pure functions over a Check. A draft is
submittable when a poll is loaded and not expired, the respondent has not
voted yet, no submission is in flight, an option of the poll is selected,
and, without an identity, a display name is given.

# Controller

The Controller drives a Session against a Gateway:

	c := pollflow.NewController(gw, s)
	if err := c.Load(ctx, pollID); err != nil { ... }
	err := c.Submit(ctx)

Phases move Loading → NotFound | Loaded, then Loaded → Submitting →
Voted | Loaded. Voted and NotFound are terminal. A second Submit while
one is in flight returns ErrAlreadyInProgress without touching the
gateway. A failed write returns a *GatewayError and leaves the form
editable for a retry.

The payload carries the comment only when the poll allows comments, and
the typed display name only when there is no identity.

Close abandons the session; results arriving afterwards are dropped.
*/
package pollflow
