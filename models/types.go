// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"strings"
	"time"
)

// Respondent kinds. A response either belongs to an authenticated identity
// or to an anonymous respondent who typed a display name.
const (
	RespondentIdentity  = "identity"
	RespondentAnonymous = "anonymous"
)

// Request types

type CreatePollRequest struct {
	Title         string     `json:"title"`
	Description   *string    `json:"description,omitempty"`
	IsPublic      *bool      `json:"is_public,omitempty"` // defaults to true
	AllowComments bool       `json:"allow_comments"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
	CreatedBy     string     `json:"created_by"`
}

type AddOptionRequest struct {
	Text string `json:"text"`
}

// Comment and UserName are omitted from the wire when not sent.
type SubmitResponseRequest struct {
	OptionID string  `json:"option_id"`
	Comment  *string `json:"comment,omitempty"`
	UserName *string `json:"user_name,omitempty"`
}

// Response types

type CreatePollResponse struct {
	PollID   string `json:"poll_id"`
	AdminKey string `json:"admin_key"`
}

type AddOptionResponse struct {
	OptionID string `json:"option_id"`
}

type SubmitResponseResponse struct {
	ResponseID string `json:"response_id"`
	Message    string `json:"message"`
}

type MyResponseResponse struct {
	HasResponded bool `json:"has_responded"`
}

type ClosePollResponse struct {
	ExpiresAt time.Time `json:"expires_at"`
}

// Domain types

type Poll struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Description   *string    `json:"description,omitempty"`
	IsPublic      bool       `json:"is_public"`
	AllowComments bool       `json:"allow_comments"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
	CreatedBy     string     `json:"created_by"`
	CreatedAt     time.Time  `json:"created_at"`
}

// Expired reports whether the poll stopped accepting responses at or before now.
func (p Poll) Expired(now time.Time) bool {
	return p.ExpiresAt != nil && !now.Before(*p.ExpiresAt)
}

type PollOption struct {
	ID       string `json:"id"`
	PollID   string `json:"poll_id"`
	Text     string `json:"text"`
	Position int    `json:"position"`
}

type PollWithOptions struct {
	Poll    Poll         `json:"poll"`
	Options []PollOption `json:"options"`
}

// Identity is an authenticated user supplied by the external identity provider.
type Identity struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Respondent is the stored author of a response. ID is set only for
// RespondentIdentity.
type Respondent struct {
	Kind string
	ID   *string
	Name string
}

// IdentifiedRespondent builds the respondent for an authenticated identity.
func IdentifiedRespondent(id Identity) Respondent {
	return Respondent{Kind: RespondentIdentity, ID: &id.ID, Name: id.Name}
}

// AnonymousRespondent builds the respondent for a typed display name.
func AnonymousRespondent(name string) Respondent {
	return Respondent{Kind: RespondentAnonymous, Name: strings.TrimSpace(name)}
}

type PollResponse struct {
	ID          string     `json:"id"`
	PollID      string     `json:"poll_id"`
	OptionID    string     `json:"option_id"`
	Comment     *string    `json:"comment,omitempty"`
	Respondent  Respondent `json:"-"`
	IPHash      *string    `json:"-"` // Never expose in JSON
	SubmittedAt time.Time  `json:"submitted_at"`
}

// Results types

type OptionTally struct {
	OptionID string  `json:"option_id"`
	Text     string  `json:"text"`
	Count    int     `json:"count"`
	Share    float64 `json:"share"` // 0.0 to 1.0
}

type CommentEntry struct {
	RespondentName string    `json:"respondent_name"`
	Comment        string    `json:"comment"`
	SubmittedAt    time.Time `json:"submitted_at"`
}

type ResultsResponse struct {
	PollID         string         `json:"poll_id"`
	TotalResponses int            `json:"total_responses"`
	Options        []OptionTally  `json:"options"`
	Comments       []CommentEntry `json:"comments"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
