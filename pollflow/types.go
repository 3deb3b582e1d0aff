// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package pollflow

import (
	"context"

	"github.com/danielhkuo/quickpoll/models"
)

// Phase is the position of a session in the poll-taking state machine
type Phase int

const (
	PhaseLoading Phase = iota
	PhaseNotFound
	PhaseLoaded
	PhaseSubmitting
	PhaseVoted
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseNotFound:
		return "not_found"
	case PhaseLoaded:
		return "loaded"
	case PhaseSubmitting:
		return "submitting"
	case PhaseVoted:
		return "voted"
	default:
		return "unknown"
	}
}

// Draft is the answer being composed. OptionID is empty until chosen.
type Draft struct {
	OptionID string
	Comment  string
	UserName string
}

// State is a point-in-time copy of a Session
type State struct {
	Phase    Phase
	PollID   string
	Poll     *models.Poll
	Options  []models.PollOption
	Draft    Draft
	Identity *models.Identity

	HasVoted   bool
	Submitting bool

	// AlreadyResponded is set when the identity had answered this poll
	// before the session started
	AlreadyResponded bool

	// Err is the last surfaced error: the load failure in PhaseNotFound,
	// or a *GatewayError after a failed submission
	Err error
}

// Payload is what the gateway receives on submission. Comment and
// UserName are nil when they must not be sent.
type Payload struct {
	PollID   string
	OptionID string
	Comment  *string
	UserName *string
}

// Gateway is the poll data service
type Gateway interface {
	// GetPoll returns ErrNotFound when the poll does not exist or is not
	// visible to the caller
	GetPoll(ctx context.Context, pollID string) (*models.Poll, error)
	GetOptions(ctx context.Context, pollID string) ([]models.PollOption, error)
	SubmitResponse(ctx context.Context, p Payload) error
}

// ResponseChecker is implemented by gateways that can tell whether the
// current identity already answered a poll
type ResponseChecker interface {
	HasResponded(ctx context.Context, pollID string) (bool, error)
}
