// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/quickpoll/auth"
	"github.com/danielhkuo/quickpoll/cliparse"
	"github.com/danielhkuo/quickpoll/db"
	"github.com/danielhkuo/quickpoll/models"
)

// SetupTestDB opens a private in-memory SQLite database with the full schema.
// The database is closed when the test ends.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	conn, err := db.Open(cliparse.DatabaseSQLite, dsn)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         cliparse.DefaultPort,
		DatabaseType: cliparse.DatabaseSQLite,
		DatabaseURL:  "file::memory:",
		AdminKeySalt: "test-admin-salt",
		IdentitySalt: "test-identity-salt",
	}
}

// PollOpts tweaks the poll created by CreateTestPoll. The zero value is a
// public poll without comments or expiry.
type PollOpts struct {
	Title         string
	Description   *string
	Private       bool
	AllowComments bool
	ExpiresAt     *time.Time
}

// CreateTestPoll creates a poll in the database and returns its ID and admin key
func CreateTestPoll(t *testing.T, conn *sql.DB, cfg cliparse.Config, opts PollOpts) (pollID, adminKey string) {
	t.Helper()

	pollID, _ = auth.GenerateID()
	adminKey = auth.GenerateAdminKey(pollID, cfg.AdminKeySalt)

	title := opts.Title
	if title == "" {
		title = "Test Poll"
	}

	_, err := conn.Exec(`
		INSERT INTO poll (id, title, description, is_public, allow_comments, expires_at, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, 'TestUser', $7)
	`, pollID, title, opts.Description, !opts.Private, opts.AllowComments, opts.ExpiresAt, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test poll: %v", err)
	}

	return pollID, adminKey
}

// AddTestOption appends an option to a poll and returns the option ID
func AddTestOption(t *testing.T, conn *sql.DB, pollID, text string) string {
	t.Helper()

	var position int
	if err := conn.QueryRow(`SELECT COUNT(*) FROM poll_option WHERE poll_id = $1`, pollID).Scan(&position); err != nil {
		t.Fatalf("Failed to count options: %v", err)
	}

	optionID, _ := auth.GenerateID()
	_, err := conn.Exec(`
		INSERT INTO poll_option (id, poll_id, text, position)
		VALUES ($1, $2, $3, $4)
	`, optionID, pollID, text, position)
	if err != nil {
		t.Fatalf("Failed to create test option: %v", err)
	}

	return optionID
}

// CreateTestResponse stores a response for the given respondent and returns its ID
func CreateTestResponse(t *testing.T, conn *sql.DB, pollID, optionID string, who models.Respondent, comment *string) string {
	t.Helper()

	responseID, _ := auth.GenerateID()
	_, err := conn.Exec(`
		INSERT INTO poll_response (id, poll_id, option_id, comment, respondent_kind, respondent_id, respondent_name, submitted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, responseID, pollID, optionID, comment, who.Kind, who.ID, who.Name, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test response: %v", err)
	}

	return responseID
}

// IdentityToken signs a token for the given identity with the config's salt
func IdentityToken(t *testing.T, cfg cliparse.Config, id, name string) string {
	t.Helper()

	token, err := auth.IssueIdentityToken(models.Identity{ID: id, Name: name}, cfg.IdentitySalt)
	if err != nil {
		t.Fatalf("Failed to issue identity token: %v", err)
	}
	return token
}

// AdminKey returns the admin key the config would issue for pollID
func AdminKey(cfg cliparse.Config, pollID string) string {
	return auth.GenerateAdminKey(pollID, cfg.AdminKeySalt)
}

// StrPtr returns a pointer to s
func StrPtr(s string) *string {
	return &s
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
