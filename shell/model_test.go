// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package shell

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"

	"github.com/danielhkuo/quickpoll/models"
	"github.com/danielhkuo/quickpoll/pollflow"
)

var fixedNow = time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

type stubGateway struct {
	mu        sync.Mutex
	poll      *models.Poll
	options   []models.PollOption
	responded bool
	submitErr error
	payloads  []pollflow.Payload
}

func (g *stubGateway) GetPoll(ctx context.Context, pollID string) (*models.Poll, error) {
	if g.poll == nil || g.poll.ID != pollID {
		return nil, pollflow.ErrNotFound
	}
	p := *g.poll
	return &p, nil
}

func (g *stubGateway) GetOptions(ctx context.Context, pollID string) ([]models.PollOption, error) {
	return append([]models.PollOption(nil), g.options...), nil
}

func (g *stubGateway) SubmitResponse(ctx context.Context, p pollflow.Payload) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.payloads = append(g.payloads, p)
	return g.submitErr
}

func (g *stubGateway) HasResponded(ctx context.Context, pollID string) (bool, error) {
	return g.responded, nil
}

func (g *stubGateway) setSubmitErr(err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.submitErr = err
}

func (g *stubGateway) submitted() []pollflow.Payload {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]pollflow.Payload(nil), g.payloads...)
}

func lunchPoll(allowComments bool) *stubGateway {
	desc := "Pick a place"
	expires := fixedNow.Add(3 * time.Hour)
	return &stubGateway{
		poll: &models.Poll{
			ID:            "p1",
			Title:         "Lunch?",
			Description:   &desc,
			IsPublic:      true,
			AllowComments: allowComments,
			ExpiresAt:     &expires,
			CreatedBy:     "Dana",
			CreatedAt:     fixedNow.Add(-time.Hour),
		},
		options: []models.PollOption{
			{ID: "o1", PollID: "p1", Text: "Yes", Position: 0},
			{ID: "o2", PollID: "p1", Text: "No", Position: 1},
		},
	}
}

func newTestModel(t *testing.T, gw *stubGateway, identity *models.Identity) *Model {
	t.Helper()

	clock := func() time.Time { return fixedNow }
	s := pollflow.NewSession(identity, pollflow.WithClock(clock))
	m := New(pollflow.NewController(gw, s), "p1", WithClock(clock))
	runCommands(t, m, m.Init())
	return m
}

// runCommands feeds command results back into the model until none remain
func runCommands(t *testing.T, m *Model, cmd tea.Cmd) {
	t.Helper()
	for cmd != nil {
		msg := cmd()
		if msg == nil {
			return
		}
		if _, ok := msg.(tea.QuitMsg); ok {
			return
		}
		next, nextCmd := m.Update(msg)
		if next != m {
			t.Fatalf("Update returned a different model %T", next)
		}
		cmd = nextCmd
	}
}

func press(t *testing.T, m *Model, keys ...tea.KeyMsg) {
	t.Helper()
	for _, k := range keys {
		_, cmd := m.Update(k)
		runCommands(t, m, cmd)
	}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keySpace = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	keySend  = tea.KeyMsg{Type: tea.KeyCtrlS}
)

func assertContains(t *testing.T, view string, want ...string) {
	t.Helper()
	for _, w := range want {
		if !strings.Contains(view, w) {
			t.Errorf("view missing %q:\n%s", w, view)
		}
	}
}

func TestScreenFor(t *testing.T) {
	tests := []struct {
		name string
		st   pollflow.State
		want Screen
	}{
		{"loading", pollflow.State{Phase: pollflow.PhaseLoading}, ScreenLoading},
		{"not found", pollflow.State{Phase: pollflow.PhaseNotFound}, ScreenNotFound},
		{"loaded", pollflow.State{Phase: pollflow.PhaseLoaded}, ScreenForm},
		{"submitting", pollflow.State{Phase: pollflow.PhaseSubmitting, Submitting: true}, ScreenForm},
		{"voted now", pollflow.State{Phase: pollflow.PhaseVoted, HasVoted: true}, ScreenSuccess},
		{"voted before", pollflow.State{Phase: pollflow.PhaseVoted, HasVoted: true, AlreadyResponded: true}, ScreenAlreadyVoted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ScreenFor(tt.st); got != tt.want {
				t.Errorf("ScreenFor() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestModel_LoadingScreen(t *testing.T) {
	gw := lunchPoll(false)
	m := New(pollflow.NewController(gw, pollflow.NewSession(nil)), "p1")

	if got := m.Screen(); got != ScreenLoading {
		t.Fatalf("Screen() = %v before load, want loading", got)
	}
	assertContains(t, m.View(), "Loading poll")
}

func TestModel_RendersForm(t *testing.T) {
	m := newTestModel(t, lunchPoll(true), nil)

	if got := m.Screen(); got != ScreenForm {
		t.Fatalf("Screen() = %v, want form", got)
	}
	assertContains(t, m.View(),
		"Lunch?",
		"Pick a place",
		"Closes 3 hours from now",
		"1. Yes",
		"2. No",
		"Comment (optional)",
		"Your name",
		pollflow.ReasonNoOption,
	)
}

func TestModel_AnonymousSubmission(t *testing.T) {
	gw := lunchPoll(true)
	m := newTestModel(t, gw, nil)

	press(t, m, runes("2"), keyTab, runes("after noon"), keyTab, runes("Bo"))

	want := pollflow.Draft{OptionID: "o2", Comment: "after noon", UserName: "Bo"}
	if diff := cmp.Diff(want, m.session.Snapshot().Draft); diff != "" {
		t.Fatalf("Draft mismatch (-want +got):\n%s", diff)
	}

	press(t, m, keySend)

	if got := m.Screen(); got != ScreenSuccess {
		t.Fatalf("Screen() = %v, want success", got)
	}
	comment, name := "after noon", "Bo"
	wantPayloads := []pollflow.Payload{{PollID: "p1", OptionID: "o2", Comment: &comment, UserName: &name}}
	if diff := cmp.Diff(wantPayloads, gw.submitted()); diff != "" {
		t.Errorf("payloads mismatch (-want +got):\n%s", diff)
	}
	assertContains(t, m.View(), "Thanks! Your response was recorded.", "You chose: No")
}

func TestModel_SubmitDisabledWithoutName(t *testing.T) {
	gw := lunchPoll(true)
	m := newTestModel(t, gw, nil)

	press(t, m, runes("1"))
	_, cmd := m.Update(keySend)
	if cmd != nil {
		t.Error("Submit returned a command without a display name")
	}
	if n := len(gw.submitted()); n != 0 {
		t.Errorf("gateway called %d times, want 0", n)
	}
	assertContains(t, m.View(), pollflow.ReasonNoUserName)
}

func TestModel_IdentityHidesNameField(t *testing.T) {
	gw := lunchPoll(false)
	m := newTestModel(t, gw, &models.Identity{ID: "u1", Name: "Ana"})

	view := m.View()
	assertContains(t, view, "Answering as Ana")
	for _, hidden := range []string{"Your name", "Comment (optional)"} {
		if strings.Contains(view, hidden) {
			t.Errorf("view shows %q:\n%s", hidden, view)
		}
	}

	// Options then straight to the submit control
	press(t, m, keySpace, keyTab, keyEnter)

	if got := m.Screen(); got != ScreenSuccess {
		t.Fatalf("Screen() = %v, want success", got)
	}
	want := []pollflow.Payload{{PollID: "p1", OptionID: "o1"}}
	if diff := cmp.Diff(want, gw.submitted()); diff != "" {
		t.Errorf("payloads mismatch (-want +got):\n%s", diff)
	}
}

func TestModel_CursorMovesSelection(t *testing.T) {
	m := newTestModel(t, lunchPoll(false), &models.Identity{ID: "u1", Name: "Ana"})

	press(t, m, keyDown, keySpace)
	if got := m.session.Snapshot().Draft.OptionID; got != "o2" {
		t.Errorf("OptionID = %q, want o2", got)
	}

	press(t, m, keyDown, keyEnter)
	if got := m.session.Snapshot().Draft.OptionID; got != "o1" {
		t.Errorf("OptionID = %q after wrap, want o1", got)
	}
}

func TestModel_SubmitOnlyOnce(t *testing.T) {
	gw := lunchPoll(false)
	m := newTestModel(t, gw, &models.Identity{ID: "u1", Name: "Ana"})
	press(t, m, runes("1"))

	first := m.Submit()
	if first == nil {
		t.Fatal("first Submit returned nil")
	}
	if second := m.Submit(); second != nil {
		t.Error("second Submit returned a command while the first is running")
	}
	assertContains(t, m.View(), "Submitting...")

	runCommands(t, m, first)
	if n := len(gw.submitted()); n != 1 {
		t.Errorf("gateway called %d times, want 1", n)
	}
	if m.Submit() != nil {
		t.Error("Submit after voting returned a command")
	}
}

func TestModel_GatewayErrorDismissAndRetry(t *testing.T) {
	gw := lunchPoll(false)
	gw.setSubmitErr(errors.New("Poll has expired"))
	m := newTestModel(t, gw, &models.Identity{ID: "u1", Name: "Ana"})

	press(t, m, runes("1"), keySend)
	if got := m.Screen(); got != ScreenForm {
		t.Fatalf("Screen() = %v after failure, want form", got)
	}
	assertContains(t, m.View(), "Could not submit: Poll has expired")

	_, cmd := m.Update(keyEsc)
	if cmd != nil {
		t.Error("esc with an error showing should only dismiss it")
	}
	if strings.Contains(m.View(), "Could not submit") {
		t.Error("error still shown after dismiss")
	}

	gw.setSubmitErr(nil)
	press(t, m, keyEnter)
	if got := m.Screen(); got != ScreenSuccess {
		t.Fatalf("Screen() = %v after retry, want success", got)
	}
	if n := len(gw.submitted()); n != 2 {
		t.Errorf("gateway called %d times, want 2", n)
	}
}

func TestModel_ExpiredPoll(t *testing.T) {
	gw := lunchPoll(false)
	past := fixedNow.Add(-time.Minute)
	gw.poll.ExpiresAt = &past
	m := newTestModel(t, gw, &models.Identity{ID: "u1", Name: "Ana"})

	press(t, m, runes("1"))
	assertContains(t, m.View(), "This poll has closed", pollflow.ReasonExpired)
	if m.Submit() != nil {
		t.Error("Submit returned a command for an expired poll")
	}
}

func TestModel_NotFound(t *testing.T) {
	gw := &stubGateway{}
	m := newTestModel(t, gw, nil)

	if got := m.Screen(); got != ScreenNotFound {
		t.Fatalf("Screen() = %v, want not found", got)
	}
	assertContains(t, m.View(), "Poll not found")

	_, cmd := m.Update(keyEnter)
	if cmd == nil {
		t.Fatal("enter on not-found screen returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("enter on not-found screen did not quit")
	}
	if m.View() != "" {
		t.Errorf("View() after quit = %q, want empty", m.View())
	}
}

func TestModel_AlreadyVoted(t *testing.T) {
	gw := lunchPoll(false)
	gw.responded = true
	m := newTestModel(t, gw, &models.Identity{ID: "u1", Name: "Ana"})

	if got := m.Screen(); got != ScreenAlreadyVoted {
		t.Fatalf("Screen() = %v, want already voted", got)
	}
	assertContains(t, m.View(), "Lunch?", "You have already responded to this poll.")
}

func TestModel_EscLeavesAndClosesSession(t *testing.T) {
	m := newTestModel(t, lunchPoll(false), nil)

	_, cmd := m.Update(keyEsc)
	if cmd == nil {
		t.Fatal("esc returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("esc did not quit")
	}

	m.SelectOption("o1")
	if got := m.session.Snapshot().Draft.OptionID; got != "" {
		t.Errorf("session accepted input after leaving: OptionID = %q", got)
	}
}
