// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package pollflow

import (
	"context"
	"errors"
	"log/slog"
)

// Controller runs the load and submit steps of a Session against a Gateway
type Controller struct {
	gw      Gateway
	session *Session
}

func NewController(gw Gateway, session *Session) *Controller {
	return &Controller{gw: gw, session: session}
}

func (c *Controller) Session() *Session {
	return c.session
}

// Load fetches the poll and its options. A missing poll ends the flow in
// PhaseNotFound with ErrNotFound; any other gateway failure ends it there
// too, as a *GatewayError.
func (c *Controller) Load(ctx context.Context, pollID string) error {
	if err := c.session.beginLoad(pollID); err != nil {
		return err
	}

	poll, err := c.gw.GetPoll(ctx, pollID)
	if err != nil {
		return c.session.failLoad(loadError("load poll", err))
	}

	options, err := c.gw.GetOptions(ctx, pollID)
	if err != nil {
		return c.session.failLoad(loadError("load options", err))
	}

	responded := false
	if checker, ok := c.gw.(ResponseChecker); ok && c.session.hasIdentity() {
		responded, err = checker.HasResponded(ctx, pollID)
		if err != nil {
			// The server still rejects a duplicate on submit
			slog.Warn("failed to check previous response", "poll_id", pollID, "error", err)
			responded = false
		}
	}

	slog.Info("poll loaded", "poll_id", pollID, "options", len(options), "already_responded", responded)
	return c.session.finishLoad(poll, options, responded)
}

// Submit validates the draft and writes it through the gateway once
func (c *Controller) Submit(ctx context.Context) error {
	payload, err := c.session.beginSubmit()
	if err != nil {
		return err
	}

	err = c.gw.SubmitResponse(ctx, payload)
	if err != nil {
		slog.Warn("failed to submit response", "poll_id", payload.PollID, "error", err)
	} else {
		slog.Info("response submitted", "poll_id", payload.PollID, "option_id", payload.OptionID)
	}

	return c.session.finishSubmit(err)
}

func loadError(op string, err error) error {
	if errors.Is(err, ErrNotFound) {
		return ErrNotFound
	}
	return &GatewayError{Op: op, Err: err}
}
