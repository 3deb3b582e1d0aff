// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/danielhkuo/quickpoll/models"
)

var (
	ErrInvalidAdminKey = errors.New("invalid admin key")
	ErrInvalidToken    = errors.New("invalid token format")
	ErrBadSignature    = errors.New("identity token signature mismatch")
)

// GenerateID creates a random UUIDv4 string
func GenerateID() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("failed to generate random ID: %w", err)
	}
	return id.String(), nil
}

// GenerateAdminKey creates an HMAC-based admin key for a poll
// This is deterministic and verifiable
func GenerateAdminKey(pollID, salt string) string {
	return sign([]byte(pollID), salt)
}

// ValidateAdminKey checks if the provided admin key is valid for the poll
func ValidateAdminKey(pollID, adminKey, salt string) error {
	expected := GenerateAdminKey(pollID, salt)
	if !hmac.Equal([]byte(adminKey), []byte(expected)) {
		return ErrInvalidAdminKey
	}
	return nil
}

// IssueIdentityToken signs an identity as "<payload>.<signature>", both
// URL-safe base64 without padding. The identity provider and the gateway
// share the salt.
func IssueIdentityToken(id models.Identity, salt string) (string, error) {
	if id.ID == "" || strings.TrimSpace(id.Name) == "" {
		return "", errors.New("identity requires id and name")
	}
	raw, err := json.Marshal(id)
	if err != nil {
		return "", fmt.Errorf("failed to encode identity: %w", err)
	}
	payload := encode(raw)
	return payload + "." + sign([]byte(payload), salt), nil
}

// ParseIdentityToken verifies a token produced by IssueIdentityToken and
// returns the identity it carries
func ParseIdentityToken(token, salt string) (models.Identity, error) {
	payload, sig, ok := strings.Cut(token, ".")
	if !ok || payload == "" || sig == "" {
		return models.Identity{}, ErrInvalidToken
	}

	expected := sign([]byte(payload), salt)
	if !hmac.Equal([]byte(sig), []byte(expected)) {
		return models.Identity{}, ErrBadSignature
	}

	raw, err := base64.URLEncoding.WithPadding(base64.NoPadding).DecodeString(payload)
	if err != nil {
		return models.Identity{}, ErrInvalidToken
	}

	var id models.Identity
	if err := json.Unmarshal(raw, &id); err != nil {
		return models.Identity{}, ErrInvalidToken
	}
	if id.ID == "" || strings.TrimSpace(id.Name) == "" {
		return models.Identity{}, ErrInvalidToken
	}
	return id, nil
}

// HashIP creates a one-way hash of an IP address for privacy
// Includes salt to prevent rainbow table attacks
func HashIP(ip, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(ip))
	sum := h.Sum(nil)
	// Return first 16 hex chars (64 bits) - enough for deduplication
	return hex.EncodeToString(sum[:8])
}

func sign(data []byte, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write(data)
	return encode(h.Sum(nil))
}

func encode(b []byte) string {
	// URL-safe base64 and trim padding for cleaner keys
	return strings.TrimRight(base64.URLEncoding.EncodeToString(b), "=")
}
