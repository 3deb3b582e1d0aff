// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Command pollvote answers one poll from the terminal.
//
//	pollvote -poll <id> [-server http://localhost:3318] [-token <identity token>] [-log pollvote.log]
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/danielhkuo/quickpoll/client"
	"github.com/danielhkuo/quickpoll/cliparse"
	"github.com/danielhkuo/quickpoll/pollflow"
	"github.com/danielhkuo/quickpoll/shell"
)

func main() {
	cfg, err := cliparse.ParseClientFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing flags: %v\n", err)
		os.Exit(1)
	}

	// The TUI owns the terminal, so logs go to a file or nowhere
	logOut := io.Discard
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logOut = f
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(logOut, nil)))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gw := client.New(cfg.ServerURL, client.WithIdentityToken(cfg.IdentityToken))
	identity, err := gw.Identity(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error resolving identity: %v\n", err)
		os.Exit(1)
	}

	session := pollflow.NewSession(identity)
	defer session.Close()

	model := shell.New(pollflow.NewController(gw, session), cfg.PollID, shell.WithContext(ctx))
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		slog.Error("terminal client stopped", "error", err)
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}

	if st := session.Snapshot(); st.Phase == pollflow.PhaseVoted && !st.AlreadyResponded {
		fmt.Println("Response recorded.")
	}
}
