// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/danielhkuo/quickpoll/auth"
	"github.com/danielhkuo/quickpoll/cliparse"
	"github.com/danielhkuo/quickpoll/middleware"
	"github.com/danielhkuo/quickpoll/models"
)

type PollHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewPollHandler(db *sql.DB, cfg cliparse.Config) *PollHandler {
	return &PollHandler{db: db, cfg: cfg}
}

// CreatePoll handles POST /polls
func (h *PollHandler) CreatePoll(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// Validate input
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "title is required")
		return
	}
	req.CreatedBy = strings.TrimSpace(req.CreatedBy)
	if req.CreatedBy == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "created_by is required")
		return
	}

	now := time.Now()
	if req.ExpiresAt != nil && !req.ExpiresAt.After(now) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "expires_at must be in the future")
		return
	}

	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}

	pollID, err := auth.GenerateID()
	if err != nil {
		slog.Error("failed to generate poll ID", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create poll")
		return
	}

	adminKey := auth.GenerateAdminKey(pollID, h.cfg.AdminKeySalt)

	_, err = h.db.Exec(`
		INSERT INTO poll (id, title, description, is_public, allow_comments, expires_at, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, pollID, req.Title, req.Description, isPublic, req.AllowComments, req.ExpiresAt, req.CreatedBy, now)

	if err != nil {
		slog.Error("failed to insert poll", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create poll")
		return
	}

	slog.Info("poll created", "poll_id", pollID, "created_by", req.CreatedBy)

	middleware.JSONResponse(w, http.StatusCreated, models.CreatePollResponse{
		PollID:   pollID,
		AdminKey: adminKey,
	})
}

// AddOption handles POST /polls/:id/options
// Options are frozen once the first response arrives
func (h *PollHandler) AddOption(w http.ResponseWriter, r *http.Request) {
	pollID, ok := h.authorize(w, r)
	if !ok {
		return
	}

	var req models.AddOptionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	req.Text = strings.TrimSpace(req.Text)
	if req.Text == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "text is required")
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

	responses, err := countResponses(h.db, pollID)
	if err != nil {
		slog.Error("failed to count responses", "error", err, "poll_id", pollID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if responses > 0 {
		middleware.ErrorResponse(w, http.StatusConflict, "Cannot add options after responses exist")
		return
	}

	optionID, err := auth.GenerateID()
	if err != nil {
		slog.Error("failed to generate option ID", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create option")
		return
	}

	// Append after the current last option
	_, err = h.db.Exec(`
		INSERT INTO poll_option (id, poll_id, text, position)
		VALUES ($1, $2, $3, (SELECT COUNT(*) FROM poll_option WHERE poll_id = $2))
	`, optionID, pollID, req.Text)

	if err != nil {
		slog.Error("failed to insert option", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create option")
		return
	}

	slog.Info("option added", "poll_id", pollID, "option_id", optionID)

	middleware.JSONResponse(w, http.StatusCreated, models.AddOptionResponse{
		OptionID: optionID,
	})
}

// GetPollAdmin handles GET /polls/:id/admin
// Returns poll details for admin access regardless of visibility or expiry
func (h *PollHandler) GetPollAdmin(w http.ResponseWriter, r *http.Request) {
	pollID, ok := h.authorize(w, r)
	if !ok {
		return
	}

	poll, err := queryPoll(h.db, pollID)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
		return
	}
	if err != nil {
		slog.Error("failed to query poll", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	options, err := queryOptions(h.db, poll.ID)
	if err != nil {
		slog.Error("failed to load options", "error", err, "poll_id", poll.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.PollWithOptions{
		Poll:    poll,
		Options: options,
	})
}

// ClosePoll handles POST /polls/:id/close
// Closing moves expires_at to now; responses are refused from then on
func (h *PollHandler) ClosePoll(w http.ResponseWriter, r *http.Request) {
	pollID, ok := h.authorize(w, r)
	if !ok {
		return
	}

	poll, err := queryPoll(h.db, pollID)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
		return
	}
	if err != nil {
		slog.Error("failed to query poll", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	now := time.Now()
	if poll.Expired(now) {
		middleware.ErrorResponse(w, http.StatusConflict, "Poll is already closed")
		return
	}

	_, err = h.db.Exec(`UPDATE poll SET expires_at = $1 WHERE id = $2`, now, pollID)
	if err != nil {
		slog.Error("failed to close poll", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to close poll")
		return
	}

	slog.Info("poll closed", "poll_id", pollID)

	middleware.JSONResponse(w, http.StatusOK, models.ClosePollResponse{
		ExpiresAt: now,
	})
}

// authorize checks the X-Admin-Key header against the path's poll ID
func (h *PollHandler) authorize(w http.ResponseWriter, r *http.Request) (string, bool) {
	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll_id is required")
		return "", false
	}

	adminKey := r.Header.Get(middleware.HeaderAdminKey)
	if err := auth.ValidateAdminKey(pollID, adminKey, h.cfg.AdminKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return "", false
	}

	return pollID, true
}
