package models

import (
	"testing"
	"time"
)

func TestPollExpired(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Minute)
	future := now.Add(time.Minute)

	tests := []struct {
		name      string
		expiresAt *time.Time
		want      bool
	}{
		{"no expiry", nil, false},
		{"expires later", &future, false},
		{"expired earlier", &past, true},
		{"expires exactly now", &now, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Poll{ID: "p1", ExpiresAt: tt.expiresAt}
			if got := p.Expired(now); got != tt.want {
				t.Errorf("Expired() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRespondentVariants(t *testing.T) {
	r := IdentifiedRespondent(Identity{ID: "u1", Name: "Ana"})
	if r.Kind != RespondentIdentity || r.ID == nil || *r.ID != "u1" || r.Name != "Ana" {
		t.Errorf("unexpected identified respondent: %+v", r)
	}

	a := AnonymousRespondent("  Bruno  ")
	if a.Kind != RespondentAnonymous || a.ID != nil {
		t.Errorf("anonymous respondent must not carry an ID: %+v", a)
	}
	if a.Name != "Bruno" {
		t.Errorf("expected trimmed name 'Bruno', got %q", a.Name)
	}
}
