// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/danielhkuo/quickpoll/models"
)

func TestGenerateID(t *testing.T) {
	id, err := GenerateID()
	if err != nil {
		t.Fatalf("GenerateID() error = %v", err)
	}

	parsed, err := uuid.Parse(id)
	if err != nil {
		t.Fatalf("GenerateID() returned non-UUID %q: %v", id, err)
	}
	if parsed.Version() != 4 {
		t.Errorf("GenerateID() version = %d, want 4", parsed.Version())
	}

	// Test randomness - two IDs should be different
	id2, _ := GenerateID()
	if id == id2 {
		t.Error("GenerateID() produced duplicate IDs (extremely unlikely)")
	}
}

func TestGenerateAdminKey(t *testing.T) {
	tests := []struct {
		name   string
		pollID string
		salt   string
	}{
		{"standard", "poll123", "secret-salt"},
		{"empty poll id", "", "salt"},
		{"empty salt", "poll456", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := GenerateAdminKey(tt.pollID, tt.salt)

			if key == "" {
				t.Error("GenerateAdminKey() returned empty string")
			}

			// Should be deterministic
			if key != GenerateAdminKey(tt.pollID, tt.salt) {
				t.Error("GenerateAdminKey() is not deterministic")
			}

			if tt.pollID != "" && tt.salt != "" {
				if key == GenerateAdminKey(tt.pollID+"x", tt.salt) {
					t.Error("GenerateAdminKey() produced same key for different poll IDs")
				}
			}

			// Should be URL-safe (no padding)
			if strings.Contains(key, "=") {
				t.Error("GenerateAdminKey() contains padding characters")
			}
		})
	}
}

func TestValidateAdminKey(t *testing.T) {
	pollID := "test-poll-123"
	salt := "test-salt"
	validKey := GenerateAdminKey(pollID, salt)

	tests := []struct {
		name     string
		pollID   string
		adminKey string
		salt     string
		wantErr  bool
	}{
		{"valid key", pollID, validKey, salt, false},
		{"wrong key", pollID, "wrong-key", salt, true},
		{"wrong poll id", "different-poll", validKey, salt, true},
		{"wrong salt", pollID, validKey, "different-salt", true},
		{"empty key", pollID, "", salt, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAdminKey(tt.pollID, tt.adminKey, tt.salt)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateAdminKey() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && err != ErrInvalidAdminKey {
				t.Errorf("ValidateAdminKey() error = %v, want %v", err, ErrInvalidAdminKey)
			}
		})
	}
}

func TestIdentityTokenRoundTrip(t *testing.T) {
	salt := "identity-salt"
	want := models.Identity{ID: "u1", Name: "Ana"}

	token, err := IssueIdentityToken(want, salt)
	if err != nil {
		t.Fatalf("IssueIdentityToken() error = %v", err)
	}
	if strings.Contains(token, "=") {
		t.Error("identity token contains padding characters")
	}

	got, err := ParseIdentityToken(token, salt)
	if err != nil {
		t.Fatalf("ParseIdentityToken() error = %v", err)
	}
	if got != want {
		t.Errorf("ParseIdentityToken() = %+v, want %+v", got, want)
	}
}

func TestIssueIdentityTokenRejectsIncompleteIdentity(t *testing.T) {
	for _, id := range []models.Identity{{ID: "", Name: "Ana"}, {ID: "u1", Name: "  "}} {
		if _, err := IssueIdentityToken(id, "salt"); err == nil {
			t.Errorf("expected error for identity %+v", id)
		}
	}
}

func TestParseIdentityTokenFailures(t *testing.T) {
	salt := "identity-salt"
	valid, _ := IssueIdentityToken(models.Identity{ID: "u1", Name: "Ana"}, salt)
	payload, _, _ := strings.Cut(valid, ".")
	forged, _ := IssueIdentityToken(models.Identity{ID: "admin", Name: "Root"}, "other-salt")
	forgedPayload, _, _ := strings.Cut(forged, ".")
	_, validSig, _ := strings.Cut(valid, ".")

	tests := []struct {
		name    string
		token   string
		salt    string
		wantErr error
	}{
		{"empty", "", salt, ErrInvalidToken},
		{"no separator", "abc", salt, ErrInvalidToken},
		{"missing signature", payload + ".", salt, ErrInvalidToken},
		{"wrong salt", valid, "other", ErrBadSignature},
		{"swapped payload", forgedPayload + "." + validSig, salt, ErrBadSignature},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseIdentityToken(tt.token, tt.salt)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ParseIdentityToken() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestHashIP(t *testing.T) {
	tests := []struct {
		name string
		ip   string
		salt string
	}{
		{"ipv4", "192.168.1.1", "salt"},
		{"ipv6", "2001:db8::1", "salt"},
		{"empty ip", "", "salt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash := HashIP(tt.ip, tt.salt)

			// Should be 16 hex characters (8 bytes * 2)
			if len(hash) != 16 {
				t.Errorf("HashIP() length = %d, want 16", len(hash))
			}

			for _, c := range hash {
				if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')) {
					t.Errorf("HashIP() contains invalid hex char: %c", c)
				}
			}

			if hash != HashIP(tt.ip, tt.salt) {
				t.Error("HashIP() is not deterministic")
			}
		})
	}

	if HashIP("192.168.1.1", "salt") == HashIP("192.168.1.2", "salt") {
		t.Error("HashIP() produced same hash for different IPs")
	}
	if HashIP("192.168.1.1", "salt1") == HashIP("192.168.1.1", "salt2") {
		t.Error("HashIP() produced same hash for different salts")
	}
}

// Benchmark tests
func BenchmarkGenerateID(b *testing.B) {
	for i := 0; i < b.N; i++ {
		GenerateID()
	}
}

func BenchmarkParseIdentityToken(b *testing.B) {
	token, _ := IssueIdentityToken(models.Identity{ID: "u1", Name: "Ana"}, "salt")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ParseIdentityToken(token, "salt")
	}
}
