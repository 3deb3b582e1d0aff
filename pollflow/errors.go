// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package pollflow

import "errors"

var (
	ErrNotFound          = errors.New("poll not found")
	ErrAlreadyInProgress = errors.New("submission already in progress")
	ErrSessionClosed     = errors.New("session closed")
)

// Validation failure reasons
const (
	ReasonNoPoll        = "poll not loaded"
	ReasonExpired       = "poll has expired"
	ReasonAlreadyVoted  = "already voted"
	ReasonSubmitting    = "submission in progress"
	ReasonNoOption      = "no option selected"
	ReasonUnknownOption = "option is not part of this poll"
	ReasonNoUserName    = "display name required"
)

// ValidationError means the draft is not submittable. The gateway was not called.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "cannot submit: " + e.Reason
}

// GatewayError wraps a failed gateway call
type GatewayError struct {
	Op  string
	Err error
}

func (e *GatewayError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

// Cause is the message shown to the respondent
func (e *GatewayError) Cause() string {
	return e.Err.Error()
}
