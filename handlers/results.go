// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/quickpoll/auth"
	"github.com/danielhkuo/quickpoll/cliparse"
	"github.com/danielhkuo/quickpoll/middleware"
	"github.com/danielhkuo/quickpoll/models"
)

type ResultsHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewResultsHandler(db *sql.DB, cfg cliparse.Config) *ResultsHandler {
	return &ResultsHandler{db: db, cfg: cfg}
}

// GetResults handles GET /polls/:id/results
// Admin only. Tallies are live; there is no sealed phase.
func (h *ResultsHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll_id is required")
		return
	}

	adminKey := r.Header.Get(middleware.HeaderAdminKey)
	if err := auth.ValidateAdminKey(pollID, adminKey, h.cfg.AdminKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return
	}

	if _, err := queryPoll(h.db, pollID); err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
		return
	} else if err != nil {
		slog.Error("failed to query poll", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	tallies, total, err := h.tally(pollID)
	if err != nil {
		slog.Error("failed to tally responses", "error", err, "poll_id", pollID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	comments, err := h.comments(pollID)
	if err != nil {
		slog.Error("failed to load comments", "error", err, "poll_id", pollID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ResultsResponse{
		PollID:         pollID,
		TotalResponses: total,
		Options:        tallies,
		Comments:       comments,
	})
}

// tally counts responses per option in display order. Options without
// responses are included with a zero count.
func (h *ResultsHandler) tally(pollID string) ([]models.OptionTally, int, error) {
	rows, err := h.db.Query(`
		SELECT o.id, o.text, COUNT(r.id)
		FROM poll_option o
		LEFT JOIN poll_response r ON r.option_id = o.id
		WHERE o.poll_id = $1
		GROUP BY o.id, o.text, o.position
		ORDER BY o.position, o.id
	`, pollID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query tallies: %w", err)
	}
	defer rows.Close()

	tallies := []models.OptionTally{}
	total := 0
	for rows.Next() {
		var t models.OptionTally
		if err := rows.Scan(&t.OptionID, &t.Text, &t.Count); err != nil {
			return nil, 0, fmt.Errorf("failed to scan tally: %w", err)
		}
		total += t.Count
		tallies = append(tallies, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	if total > 0 {
		for i := range tallies {
			tallies[i].Share = float64(tallies[i].Count) / float64(total)
		}
	}

	return tallies, total, nil
}

// comments returns stored comments oldest first
func (h *ResultsHandler) comments(pollID string) ([]models.CommentEntry, error) {
	rows, err := h.db.Query(`
		SELECT respondent_name, comment, submitted_at
		FROM poll_response
		WHERE poll_id = $1 AND comment IS NOT NULL
		ORDER BY submitted_at, id
	`, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to query comments: %w", err)
	}
	defer rows.Close()

	comments := []models.CommentEntry{}
	for rows.Next() {
		var c models.CommentEntry
		if err := rows.Scan(&c.RespondentName, &c.Comment, &c.SubmittedAt); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, c)
	}

	return comments, rows.Err()
}
