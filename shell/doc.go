// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package shell is the terminal front-end of the poll-taking flow.

Model is a Bubble Tea model over a pollflow.Controller. It renders
whatever the session holds and forwards key presses as intents:

	SelectOption    1-9, or ↑/↓ then space on the option list
	ChangeComment   typing in the comment field (polls that allow comments)
	ChangeUserName  typing in the name field (anonymous respondents)
	Submit          ctrl+s anywhere, or enter on the submit control
	DismissError    esc while a submission error is showing
	GoHome          esc otherwise, or ctrl+c; closes the session and quits

Load and submit run as tea.Cmds and come back as messages, so the event
loop never blocks on the network.

ScreenFor maps a state snapshot to exactly one of the loading, not-found,
already-voted, form and success screens.
*/
package shell
