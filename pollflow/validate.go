// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package pollflow

import (
	"strings"
	"time"

	"github.com/danielhkuo/quickpoll/models"
)

// Check is everything submittability depends on
type Check struct {
	Poll       *models.Poll
	Options    []models.PollOption
	Draft      Draft
	Identity   *models.Identity
	HasVoted   bool
	Submitting bool
	Now        time.Time
}

// Validate returns a *ValidationError naming the first reason the draft
// cannot be submitted, or nil
func Validate(c Check) error {
	switch {
	case c.Poll == nil:
		return &ValidationError{Reason: ReasonNoPoll}
	case c.HasVoted:
		return &ValidationError{Reason: ReasonAlreadyVoted}
	case c.Submitting:
		return &ValidationError{Reason: ReasonSubmitting}
	case c.Poll.Expired(c.Now):
		return &ValidationError{Reason: ReasonExpired}
	case c.Draft.OptionID == "":
		return &ValidationError{Reason: ReasonNoOption}
	case !hasOption(c.Options, c.Draft.OptionID):
		return &ValidationError{Reason: ReasonUnknownOption}
	case c.Identity == nil && strings.TrimSpace(c.Draft.UserName) == "":
		return &ValidationError{Reason: ReasonNoUserName}
	}
	return nil
}

// CanSubmit reports whether Validate accepts the check
func CanSubmit(c Check) bool {
	return Validate(c) == nil
}

func hasOption(options []models.PollOption, id string) bool {
	for _, o := range options {
		if o.ID == id {
			return true
		}
	}
	return false
}

// buildPayload assumes the draft passed Validate
func buildPayload(poll models.Poll, d Draft, identity *models.Identity) Payload {
	p := Payload{PollID: poll.ID, OptionID: d.OptionID}

	if poll.AllowComments {
		if c := strings.TrimSpace(d.Comment); c != "" {
			p.Comment = &c
		}
	}

	// An identity answers under its own name
	if identity == nil {
		name := strings.TrimSpace(d.UserName)
		p.UserName = &name
	}

	return p
}
