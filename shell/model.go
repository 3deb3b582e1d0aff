// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package shell

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/quickpoll/pollflow"
)

type field int

const (
	fieldOptions field = iota
	fieldComment
	fieldName
	fieldSubmit
)

type loadedMsg struct{ err error }

type submittedMsg struct{ err error }

// Model renders a pollflow session and turns key presses into intents.
// The session is the only source of truth for the draft; the text inputs
// are resynced from it after every message.
type Model struct {
	ctx     context.Context
	ctrl    *pollflow.Controller
	session *pollflow.Session
	pollID  string
	now     func() time.Time
	styles  Styles

	comment textinput.Model
	name    textinput.Model

	focus    field
	cursor   int
	inFlight bool
	width    int
	quitting bool
}

type Option func(*Model)

// WithContext sets the context gateway calls run under
func WithContext(ctx context.Context) Option {
	return func(m *Model) {
		m.ctx = ctx
	}
}

// WithClock replaces time.Now for the expiry line
func WithClock(now func() time.Time) Option {
	return func(m *Model) {
		m.now = now
	}
}

func WithStyles(s Styles) Option {
	return func(m *Model) {
		m.styles = s
	}
}

func New(ctrl *pollflow.Controller, pollID string, opts ...Option) *Model {
	m := &Model{
		ctx:     context.Background(),
		ctrl:    ctrl,
		session: ctrl.Session(),
		pollID:  pollID,
		now:     time.Now,
		styles:  DefaultStyles(),
		comment: newInput("Anything to add?", 500),
		name:    newInput("Your name", 100),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func newInput(placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "│ "
	ti.CharLimit = limit
	ti.Width = 60
	ti.Cursor.SetMode(cursor.CursorStatic)
	return ti
}

// Screen is the screen the current state maps to
func (m *Model) Screen() Screen {
	return ScreenFor(m.session.Snapshot())
}

func (m *Model) Init() tea.Cmd {
	return m.load()
}

func (m *Model) load() tea.Cmd {
	return func() tea.Msg {
		return loadedMsg{err: m.ctrl.Load(m.ctx, m.pollID)}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		inputWidth := max(20, msg.Width-10)
		m.comment.Width = inputWidth
		m.name.Width = inputWidth
		return m, nil

	case loadedMsg:
		if msg.err != nil && !errors.Is(msg.err, pollflow.ErrSessionClosed) {
			slog.Info("poll load ended", "poll_id", m.pollID, "error", msg.err)
		}
		m.setFocus(fieldOptions)
		return m, nil

	case submittedMsg:
		m.inFlight = false
		var gwErr *pollflow.GatewayError
		if errors.As(msg.err, &gwErr) {
			m.setFocus(fieldSubmit)
		}
		m.sync()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		return m, m.GoHome()
	}
	if m.inFlight {
		return m, nil
	}

	st := m.session.Snapshot()
	if ScreenFor(st) != ScreenForm {
		switch key {
		case "enter", "esc", "q":
			return m, m.GoHome()
		}
		return m, nil
	}

	switch key {
	case "esc":
		var gwErr *pollflow.GatewayError
		if errors.As(st.Err, &gwErr) {
			m.DismissError()
			return m, nil
		}
		return m, m.GoHome()
	case "tab":
		m.cycleFocus(st, 1)
		return m, nil
	case "shift+tab":
		m.cycleFocus(st, -1)
		return m, nil
	case "ctrl+s":
		return m, m.Submit()
	}

	switch m.focus {
	case fieldOptions:
		m.handleOptionKey(st, key)
		return m, nil
	case fieldSubmit:
		if key == "enter" || key == " " {
			return m, m.Submit()
		}
		return m, nil
	}

	if key == "enter" {
		m.cycleFocus(st, 1)
		return m, nil
	}
	return m, m.updateInput(msg)
}

func (m *Model) handleOptionKey(st pollflow.State, key string) {
	n := len(st.Options)
	if n == 0 {
		return
	}

	switch key {
	case "up", "k":
		m.cursor = (m.cursor - 1 + n) % n
	case "down", "j":
		m.cursor = (m.cursor + 1) % n
	case " ", "enter":
		m.SelectOption(st.Options[m.cursor].ID)
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			if i := int(key[0] - '1'); i < n {
				m.cursor = i
				m.SelectOption(st.Options[i].ID)
			}
		}
	}
}

func (m *Model) updateInput(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	switch m.focus {
	case fieldComment:
		m.comment, cmd = m.comment.Update(msg)
		m.ChangeComment(m.comment.Value())
	case fieldName:
		m.name, cmd = m.name.Update(msg)
		m.ChangeUserName(m.name.Value())
	}
	m.sync()
	return cmd
}

// SelectOption records the chosen option
func (m *Model) SelectOption(optionID string) {
	m.session.SetSelectedOption(optionID)
}

func (m *Model) ChangeComment(text string) {
	m.session.SetComment(text)
}

func (m *Model) ChangeUserName(text string) {
	m.session.SetUserName(text)
}

// Submit starts a submission when the draft allows one. A second press
// while one is running does nothing.
func (m *Model) Submit() tea.Cmd {
	if m.inFlight || !m.session.CanSubmit() {
		return nil
	}
	m.inFlight = true

	return func() tea.Msg {
		return submittedMsg{err: m.ctrl.Submit(m.ctx)}
	}
}

// GoHome abandons the flow and exits
func (m *Model) GoHome() tea.Cmd {
	m.session.Close()
	m.quitting = true
	return tea.Quit
}

func (m *Model) DismissError() {
	m.session.DismissError()
}

// sync copies the draft back into the text inputs
func (m *Model) sync() {
	d := m.session.Snapshot().Draft
	if m.comment.Value() != d.Comment {
		m.comment.SetValue(d.Comment)
	}
	if m.name.Value() != d.UserName {
		m.name.SetValue(d.UserName)
	}
}

// fields lists the focusable fields for the loaded poll
func fields(st pollflow.State) []field {
	out := []field{fieldOptions}
	if st.Poll != nil && st.Poll.AllowComments {
		out = append(out, fieldComment)
	}
	if st.Identity == nil {
		out = append(out, fieldName)
	}
	return append(out, fieldSubmit)
}

func (m *Model) cycleFocus(st pollflow.State, step int) {
	fs := fields(st)
	i := 0
	for j, f := range fs {
		if f == m.focus {
			i = j
			break
		}
	}
	m.setFocus(fs[(i+step+len(fs))%len(fs)])
}

func (m *Model) setFocus(f field) {
	m.focus = f
	m.comment.Blur()
	m.name.Blur()

	switch f {
	case fieldComment:
		m.comment.Focus()
	case fieldName:
		m.name.Focus()
	case fieldOptions:
		st := m.session.Snapshot()
		for i, o := range st.Options {
			if o.ID == st.Draft.OptionID {
				m.cursor = i
			}
		}
	}
}

func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	st := m.session.Snapshot()
	var body string
	switch ScreenFor(st) {
	case ScreenLoading:
		body = m.styles.Muted.Render("Loading poll...")
	case ScreenNotFound:
		body = m.viewNotFound(st)
	case ScreenAlreadyVoted:
		body = m.viewDone(st, "You have already responded to this poll.")
	case ScreenSuccess:
		body = m.viewDone(st, "Thanks! Your response was recorded.")
	default:
		body = m.viewForm(st)
	}

	frame := m.styles.Frame
	if m.width > 0 {
		frame = frame.Width(m.width)
	}
	return frame.Render(body)
}

func (m *Model) viewNotFound(st pollflow.State) string {
	var b strings.Builder
	b.WriteString(m.styles.Error.Render("Poll not found"))
	b.WriteString("\n")

	var gwErr *pollflow.GatewayError
	if errors.As(st.Err, &gwErr) {
		b.WriteString(m.styles.Muted.Render("Could not load the poll: " + gwErr.Cause()))
	} else {
		b.WriteString(m.styles.Muted.Render("It may have been removed, or the link is wrong."))
	}
	b.WriteString(m.styles.Help.Render("\nenter to exit"))
	return b.String()
}

func (m *Model) viewDone(st pollflow.State, message string) string {
	var b strings.Builder
	if st.Poll != nil {
		b.WriteString(m.styles.Title.Render(st.Poll.Title))
		b.WriteString("\n\n")
	}
	b.WriteString(m.styles.Success.Render(message))
	if !st.AlreadyResponded {
		for _, o := range st.Options {
			if o.ID == st.Draft.OptionID {
				b.WriteString("\n")
				b.WriteString(m.styles.Muted.Render("You chose: " + o.Text))
			}
		}
	}
	b.WriteString(m.styles.Help.Render("\nenter to exit"))
	return b.String()
}

func (m *Model) viewForm(st pollflow.State) string {
	var b strings.Builder
	now := m.now()

	b.WriteString(m.styles.Title.Render(st.Poll.Title))
	b.WriteString("\n")
	if st.Poll.Description != nil && *st.Poll.Description != "" {
		b.WriteString(m.styles.Description.Render(*st.Poll.Description))
		b.WriteString("\n")
	}
	if exp := st.Poll.ExpiresAt; exp != nil {
		if st.Poll.Expired(now) {
			b.WriteString(m.styles.Error.Render("This poll has closed"))
		} else {
			b.WriteString(m.styles.Muted.Render("Closes " + humanize.RelTime(*exp, now, "ago", "from now")))
		}
		b.WriteString("\n")
	}
	if st.Identity != nil {
		b.WriteString(m.styles.Muted.Render("Answering as " + st.Identity.Name))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	for i, o := range st.Options {
		pointer := "  "
		if m.focus == fieldOptions && i == m.cursor {
			pointer = m.styles.Cursor.Render("> ")
		}
		line := fmt.Sprintf("( ) %d. %s", i+1, o.Text)
		if o.ID == st.Draft.OptionID {
			line = m.styles.Selected.Render(fmt.Sprintf("(•) %d. %s", i+1, o.Text))
		}
		b.WriteString(pointer + line + "\n")
	}

	if st.Poll.AllowComments {
		b.WriteString("\n" + m.styles.Label.Render("Comment (optional)") + "\n")
		b.WriteString(m.comment.View() + "\n")
	}
	if st.Identity == nil {
		b.WriteString("\n" + m.styles.Label.Render("Your name") + "\n")
		b.WriteString(m.name.View() + "\n")
	}

	b.WriteString("\n")
	b.WriteString(m.viewSubmit(st, now))

	var gwErr *pollflow.GatewayError
	if errors.As(st.Err, &gwErr) {
		b.WriteString("\n")
		b.WriteString(m.styles.Error.Render("Could not submit: " + gwErr.Cause()))
		b.WriteString(m.styles.Muted.Render("  (esc to dismiss)"))
	}

	b.WriteString(m.styles.Help.Render("\ntab next field · ↑/↓ move · space select · ctrl+s submit · esc leave"))
	return b.String()
}

func (m *Model) viewSubmit(st pollflow.State, now time.Time) string {
	if m.inFlight || st.Submitting {
		return m.styles.ButtonDisabled.Render("Submitting...")
	}

	err := pollflow.Validate(pollflow.Check{
		Poll:       st.Poll,
		Options:    st.Options,
		Draft:      st.Draft,
		Identity:   st.Identity,
		HasVoted:   st.HasVoted,
		Submitting: st.Submitting,
		Now:        now,
	})
	var verr *pollflow.ValidationError
	if errors.As(err, &verr) {
		return m.styles.ButtonDisabled.Render("Submit") + "  " + m.styles.Muted.Render(verr.Reason)
	}

	if m.focus == fieldSubmit {
		return m.styles.ButtonFocused.Render("Submit")
	}
	return m.styles.Button.Render("Submit")
}
