package domain

import (
	"strings"
	"testing"
	"time"
)

func TestAnonymousReserver(t *testing.T) {
	tests := []struct {
		name      string
		reserver  AnonymousReserver
		wantName  string
		wantEmail string
	}{
		{
			name:      "full identity",
			reserver:  AnonymousReserver{ID: "abc", Name: "Grandma", Email: "g@example.com"},
			wantName:  "Grandma",
			wantEmail: "g@example.com",
		},
		{
			name:     "missing name falls back to Anonymous",
			reserver: AnonymousReserver{ID: "abc"},
			wantName: AnonymousReserverName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.reserver.DisplayName(); got != tt.wantName {
				t.Errorf("DisplayName() = %q, want %q", got, tt.wantName)
			}
			if got := tt.reserver.ContactEmail(); got != tt.wantEmail {
				t.Errorf("ContactEmail() = %q, want %q", got, tt.wantEmail)
			}
			if got := tt.reserver.ReserverID(); got != tt.reserver.ID {
				t.Errorf("ReserverID() = %q, want %q", got, tt.reserver.ID)
			}
		})
	}
}

func TestUserReserver(t *testing.T) {
	u := &User{ID: 42, Email: "bob@example.com", DisplayName: "Bob"}
	r := UserReserver{User: u}

	if got := r.ReserverID(); got != "user:42" {
		t.Errorf("ReserverID() = %q, want %q", got, "user:42")
	}
	if got := r.DisplayName(); got != "Bob" {
		t.Errorf("DisplayName() = %q, want %q", got, "Bob")
	}

	// Display name falls back to email.
	u.DisplayName = ""
	if got := r.DisplayName(); got != "bob@example.com" {
		t.Errorf("DisplayName() = %q, want email fallback", got)
	}
}

func TestMintReserverID(t *testing.T) {
	now := time.UnixMilli(1700000000000)

	id := MintReserverID(now)
	if !strings.HasPrefix(id, "1700000000000-") {
		t.Errorf("MintReserverID() = %q, want unix-millis prefix", id)
	}

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := MintReserverID(now)
		if seen[id] {
			t.Fatalf("MintReserverID() produced duplicate %q", id)
		}
		seen[id] = true
	}
}

func TestWish_ReservedByViewer(t *testing.T) {
	holder := "1700000000000-deadbeef"
	reserved := &Wish{ReservedBy: &holder}

	tests := []struct {
		name     string
		wish     *Wish
		viewerID string
		want     bool
	}{
		{"matching viewer", reserved, holder, true},
		{"different viewer", reserved, "other", false},
		{"empty viewer never matches", reserved, "", false},
		{"unreserved wish", &Wish{}, holder, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.wish.ReservedByViewer(tt.viewerID); got != tt.want {
				t.Errorf("ReservedByViewer(%q) = %v, want %v", tt.viewerID, got, tt.want)
			}
		})
	}
}

func TestWish_Status(t *testing.T) {
	w := &Wish{}
	if w.Status() != WishAvailable {
		t.Errorf("Status() = %q, want available", w.Status())
	}

	holder := "someone"
	w.ReservedBy = &holder
	if w.Status() != WishReserved {
		t.Errorf("Status() = %q, want reserved", w.Status())
	}
}

func TestMintShareToken(t *testing.T) {
	a := MintShareToken()
	b := MintShareToken()
	if len(a) != 32 {
		t.Errorf("token length = %d, want 32 hex chars", len(a))
	}
	if a == b {
		t.Error("two minted tokens collided")
	}
}
