// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"fmt"

	"github.com/danielhkuo/quickpoll/models"
)

// queryPoll loads a poll by ID. Returns sql.ErrNoRows when it does not exist.
func queryPoll(db *sql.DB, pollID string) (models.Poll, error) {
	var poll models.Poll
	err := db.QueryRow(`
		SELECT id, title, description, is_public, allow_comments,
		       expires_at, created_by, created_at
		FROM poll
		WHERE id = $1
	`, pollID).Scan(
		&poll.ID, &poll.Title, &poll.Description, &poll.IsPublic,
		&poll.AllowComments, &poll.ExpiresAt, &poll.CreatedBy, &poll.CreatedAt,
	)
	return poll, err
}

// queryOptions returns the options of a poll in display order
func queryOptions(db *sql.DB, pollID string) ([]models.PollOption, error) {
	rows, err := db.Query(`
		SELECT id, poll_id, text, position
		FROM poll_option
		WHERE poll_id = $1
		ORDER BY position, id
	`, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to query options: %w", err)
	}
	defer rows.Close()

	options := []models.PollOption{}
	for rows.Next() {
		var opt models.PollOption
		if err := rows.Scan(&opt.ID, &opt.PollID, &opt.Text, &opt.Position); err != nil {
			return nil, fmt.Errorf("failed to scan option: %w", err)
		}
		options = append(options, opt)
	}
	return options, rows.Err()
}

// countResponses returns the number of responses submitted to a poll
func countResponses(db *sql.DB, pollID string) (int, error) {
	var n int
	err := db.QueryRow(`SELECT COUNT(*) FROM poll_response WHERE poll_id = $1`, pollID).Scan(&n)
	return n, err
}

// visibleTo reports whether a caller may see the poll. Private polls are
// only shown to identified callers.
func visibleTo(poll models.Poll, identity *models.Identity) bool {
	return poll.IsPublic || identity != nil
}
