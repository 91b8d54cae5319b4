package domain

import (
	"testing"
	"time"
)

func TestSession_BearerPrefersAccessToken(t *testing.T) {
	s := Session{Token: "legacy", AccessToken: "access"}
	if s.Bearer() != "access" {
		t.Fatalf("expected access token, got %q", s.Bearer())
	}
	s.AccessToken = ""
	if s.Bearer() != "legacy" {
		t.Fatalf("expected legacy token, got %q", s.Bearer())
	}
	if (Session{}).Empty() != true {
		t.Fatalf("expected zero session to be empty")
	}
}

func TestSession_Expired(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	if (Session{AccessToken: "x"}).Expired(now) {
		t.Fatalf("unknown expiry must not be expired")
	}
	if !(Session{ExpiresAt: now}).Expired(now) {
		t.Fatalf("expected expiry at exactly now")
	}
	if (Session{ExpiresAt: now.Add(time.Minute)}).Expired(now) {
		t.Fatalf("expected future expiry to be valid")
	}
}

func TestSession_UserLabel(t *testing.T) {
	s := Session{User: Record{"email": "ceo@bigmann.example", "full_name": "John Spivey"}}
	if s.UserLabel() != "John Spivey" {
		t.Fatalf("unexpected label %q", s.UserLabel())
	}
}
