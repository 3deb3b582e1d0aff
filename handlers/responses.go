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
	"github.com/danielhkuo/quickpoll/db"
	"github.com/danielhkuo/quickpoll/middleware"
	"github.com/danielhkuo/quickpoll/models"
)

type ResponseHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewResponseHandler(db *sql.DB, cfg cliparse.Config) *ResponseHandler {
	return &ResponseHandler{db: db, cfg: cfg}
}

// GetPoll handles GET /polls/:id
func (h *ResponseHandler) GetPoll(w http.ResponseWriter, r *http.Request) {
	poll, _, ok := h.visiblePoll(w, r)
	if !ok {
		return
	}

	middleware.JSONResponse(w, http.StatusOK, poll)
}

// GetOptions handles GET /polls/:id/options
func (h *ResponseHandler) GetOptions(w http.ResponseWriter, r *http.Request) {
	poll, _, ok := h.visiblePoll(w, r)
	if !ok {
		return
	}

	options, err := queryOptions(h.db, poll.ID)
	if err != nil {
		slog.Error("failed to load options", "error", err, "poll_id", poll.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, options)
}

// SubmitResponse handles POST /polls/:id/responses
// Identified respondents answer once per poll; anonymous respondents
// must supply a display name.
func (h *ResponseHandler) SubmitResponse(w http.ResponseWriter, r *http.Request) {
	poll, identity, ok := h.visiblePoll(w, r)
	if !ok {
		return
	}

	var req models.SubmitResponseRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.OptionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "option_id is required")
		return
	}

	now := time.Now()
	if poll.Expired(now) {
		middleware.ErrorResponse(w, http.StatusConflict, "Poll has expired")
		return
	}

	var exists bool
	err := h.db.QueryRow(`
		SELECT EXISTS (SELECT 1 FROM poll_option WHERE id = $1 AND poll_id = $2)
	`, req.OptionID, poll.ID).Scan(&exists)
	if err != nil {
		slog.Error("failed to query option", "error", err, "poll_id", poll.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if !exists {
		middleware.ErrorResponse(w, http.StatusBadRequest, "option_id does not belong to this poll")
		return
	}

	// The identity's name wins over anything typed
	var who models.Respondent
	var ipHash *string
	if identity != nil {
		who = models.IdentifiedRespondent(*identity)
	} else {
		if req.UserName == nil || strings.TrimSpace(*req.UserName) == "" {
			middleware.ErrorResponse(w, http.StatusBadRequest, "user_name is required")
			return
		}
		who = models.AnonymousRespondent(*req.UserName)
		hash := auth.HashIP(middleware.GetClientIP(r), h.cfg.AdminKeySalt)
		ipHash = &hash
	}

	// Comments are dropped unless the poll accepts them
	var comment *string
	if poll.AllowComments && req.Comment != nil {
		if c := strings.TrimSpace(*req.Comment); c != "" {
			comment = &c
		}
	}

	responseID, err := auth.GenerateID()
	if err != nil {
		slog.Error("failed to generate response ID", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to submit response")
		return
	}

	_, err = h.db.Exec(`
		INSERT INTO poll_response (id, poll_id, option_id, comment, respondent_kind, respondent_id, respondent_name, ip_hash, submitted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, responseID, poll.ID, req.OptionID, comment, who.Kind, who.ID, who.Name, ipHash, now)

	if err != nil {
		if db.IsUniqueViolation(err) {
			middleware.ErrorResponse(w, http.StatusConflict, "You have already responded to this poll")
			return
		}
		slog.Error("failed to insert response", "error", err, "poll_id", poll.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to submit response")
		return
	}

	slog.Info("response submitted", "poll_id", poll.ID, "response_id", responseID, "respondent_kind", who.Kind)

	middleware.JSONResponse(w, http.StatusCreated, models.SubmitResponseResponse{
		ResponseID: responseID,
		Message:    "Response recorded",
	})
}

// GetMyResponse handles GET /polls/:id/my-response
func (h *ResponseHandler) GetMyResponse(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.RequireIdentity(r, h.cfg.IdentitySalt)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Valid identity token required")
		return
	}

	poll, _, ok := h.visiblePoll(w, r)
	if !ok {
		return
	}

	var responded bool
	err = h.db.QueryRow(`
		SELECT EXISTS (SELECT 1 FROM poll_response WHERE poll_id = $1 AND respondent_id = $2)
	`, poll.ID, identity.ID).Scan(&responded)
	if err != nil {
		slog.Error("failed to query response", "error", err, "poll_id", poll.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.MyResponseResponse{
		HasResponded: responded,
	})
}

// visiblePoll resolves the caller's identity and the path's poll, writing
// the error response itself when either fails. Private polls look missing
// to anonymous callers.
func (h *ResponseHandler) visiblePoll(w http.ResponseWriter, r *http.Request) (models.Poll, *models.Identity, bool) {
	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll_id is required")
		return models.Poll{}, nil, false
	}

	identity, err := middleware.RequestIdentity(r, h.cfg.IdentitySalt)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid identity token")
		return models.Poll{}, nil, false
	}

	poll, err := queryPoll(h.db, pollID)
	if err == sql.ErrNoRows || (err == nil && !visibleTo(poll, identity)) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
		return models.Poll{}, nil, false
	}
	if err != nil {
		slog.Error("failed to query poll", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return models.Poll{}, nil, false
	}

	return poll, identity, true
}
