// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package pollflow

import (
	"errors"
	"sync"
	"time"

	"github.com/danielhkuo/quickpoll/models"
)

// Session holds the state of one poll-taking flow
type Session struct {
	mu  sync.Mutex
	now func() time.Time

	identity *models.Identity
	phase    Phase
	pollID   string
	poll     *models.Poll
	options  []models.PollOption
	draft    Draft

	hasVoted         bool
	submitting       bool
	alreadyResponded bool
	closed           bool
	err              error
}

type SessionOption func(*Session)

// WithClock replaces time.Now for expiry checks
func WithClock(now func() time.Time) SessionOption {
	return func(s *Session) {
		s.now = now
	}
}

// NewSession starts a flow in PhaseLoading. identity may be nil.
func NewSession(identity *models.Identity, opts ...SessionOption) *Session {
	s := &Session{now: time.Now, phase: PhaseLoading}
	if identity != nil {
		id := *identity
		s.identity = &id
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Session) SetSelectedOption(optionID string) {
	s.mutate(func(d *Draft) { d.OptionID = optionID })
}

func (s *Session) SetComment(text string) {
	s.mutate(func(d *Draft) { d.Comment = text })
}

func (s *Session) SetUserName(text string) {
	s.mutate(func(d *Draft) { d.UserName = text })
}

// mutate applies f unless the draft is frozen
func (s *Session) mutate(f func(*Draft)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.phase == PhaseVoted || s.phase == PhaseSubmitting {
		return
	}
	f(&s.draft)
}

// DismissError clears a surfaced submission error. Load failures stay.
func (s *Session) DismissError() {
	s.mu.Lock()
	defer s.mu.Unlock()

	var gwErr *GatewayError
	if s.phase == PhaseLoaded && errors.As(s.err, &gwErr) {
		s.err = nil
	}
}

// Snapshot returns a copy of the current state
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := State{
		Phase:            s.phase,
		PollID:           s.pollID,
		Draft:            s.draft,
		HasVoted:         s.hasVoted,
		Submitting:       s.submitting,
		AlreadyResponded: s.alreadyResponded,
		Err:              s.err,
	}
	if s.poll != nil {
		p := *s.poll
		st.Poll = &p
	}
	if s.options != nil {
		st.Options = append([]models.PollOption(nil), s.options...)
	}
	if s.identity != nil {
		id := *s.identity
		st.Identity = &id
	}
	return st
}

// CanSubmit reports whether Submit would reach the gateway right now
func (s *Session) CanSubmit() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return CanSubmit(s.checkLocked())
}

// Close abandons the session. Pending loads and submissions resolve into
// nothing.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
}

func (s *Session) checkLocked() Check {
	return Check{
		Poll:       s.poll,
		Options:    s.options,
		Draft:      s.draft,
		Identity:   s.identity,
		HasVoted:   s.hasVoted,
		Submitting: s.submitting,
		Now:        s.now(),
	}
}

func (s *Session) hasIdentity() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.identity != nil
}

func (s *Session) beginLoad(pollID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSessionClosed
	}
	if s.phase != PhaseLoading || s.pollID != "" {
		return errors.New("session already loaded")
	}
	s.pollID = pollID
	return nil
}

func (s *Session) finishLoad(poll *models.Poll, options []models.PollOption, responded bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSessionClosed
	}

	s.poll = poll
	s.options = options
	if responded {
		s.alreadyResponded = true
		s.hasVoted = true
		s.phase = PhaseVoted
		return nil
	}
	s.phase = PhaseLoaded
	return nil
}

func (s *Session) failLoad(err error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSessionClosed
	}
	s.phase = PhaseNotFound
	s.err = err
	return err
}

// beginSubmit is the check-and-set of the in-flight flag
func (s *Session) beginSubmit() (Payload, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return Payload{}, ErrSessionClosed
	}
	if s.submitting {
		return Payload{}, ErrAlreadyInProgress
	}
	if err := Validate(s.checkLocked()); err != nil {
		return Payload{}, err
	}

	s.submitting = true
	s.phase = PhaseSubmitting
	s.err = nil
	return buildPayload(*s.poll, s.draft, s.identity), nil
}

func (s *Session) finishSubmit(err error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.submitting = false
	if s.closed {
		return ErrSessionClosed
	}

	if err != nil {
		s.phase = PhaseLoaded
		s.err = &GatewayError{Op: "submit response", Err: err}
		return s.err
	}

	s.hasVoted = true
	s.phase = PhaseVoted
	return nil
}
