// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package shell

import "github.com/danielhkuo/quickpoll/pollflow"

// Screen is what the terminal shows for a given state
type Screen int

const (
	ScreenLoading Screen = iota
	ScreenNotFound
	ScreenAlreadyVoted
	ScreenForm
	ScreenSuccess
)

func (s Screen) String() string {
	switch s {
	case ScreenLoading:
		return "loading"
	case ScreenNotFound:
		return "not_found"
	case ScreenAlreadyVoted:
		return "already_voted"
	case ScreenForm:
		return "form"
	case ScreenSuccess:
		return "success"
	default:
		return "unknown"
	}
}

// ScreenFor picks exactly one screen from a state snapshot
func ScreenFor(st pollflow.State) Screen {
	switch st.Phase {
	case pollflow.PhaseLoading:
		return ScreenLoading
	case pollflow.PhaseNotFound:
		return ScreenNotFound
	case pollflow.PhaseVoted:
		if st.AlreadyResponded {
			return ScreenAlreadyVoted
		}
		return ScreenSuccess
	default:
		return ScreenForm
	}
}
