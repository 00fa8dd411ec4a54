package auth

import (
	"testing"
	"time"

	"github.com/inkpost/inkpost-go/internal/crypto"
)

const testSecret = "test-secret"

func issueTestToken(t *testing.T, userID, username string, expiry time.Duration) string {
	t.Helper()
	token, err := crypto.IssueToken(userID, username, testSecret, expiry)
	if err != nil {
		t.Fatalf("IssueToken() unexpected error: %v", err)
	}
	return token
}

func TestIdentifyValidToken(t *testing.T) {
	g := NewGuard(testSecret)
	token := issueTestToken(t, "user-1", "alice", time.Hour)

	ident := g.Identify(token)
	if ident.IsAnonymous() {
		t.Fatal("Identify() returned Anonymous for a valid token")
	}
	if ident.UserID != "user-1" {
		t.Errorf("Identify() UserID = %q, want %q", ident.UserID, "user-1")
	}
	if ident.Username != "alice" {
		t.Errorf("Identify() Username = %q, want %q", ident.Username, "alice")
	}
}

func TestIdentifyAbsentToken(t *testing.T) {
	g := NewGuard(testSecret)

	if !g.Identify("").IsAnonymous() {
		t.Error("Identify(\"\") should be Anonymous")
	}
}

func TestIdentifyInvalidToken(t *testing.T) {
	g := NewGuard(testSecret)

	if !g.Identify("garbage-token").IsAnonymous() {
		t.Error("Identify() should be Anonymous for a malformed token")
	}
}

func TestIdentifyWrongSecret(t *testing.T) {
	g := NewGuard("other-secret")
	token := issueTestToken(t, "user-1", "alice", time.Hour)

	if !g.Identify(token).IsAnonymous() {
		t.Error("Identify() should be Anonymous for a token signed with another secret")
	}
}

func TestIdentifyExpiredToken(t *testing.T) {
	g := NewGuard(testSecret)
	token := issueTestToken(t, "user-1", "alice", -time.Minute)

	if !g.Identify(token).IsAnonymous() {
		t.Error("Identify() should be Anonymous for an expired token")
	}
}

func TestAuthorizeMutation(t *testing.T) {
	g := NewGuard(testSecret)
	alice := Identity{UserID: "user-1", Username: "alice"}
	bob := Identity{UserID: "user-2", Username: "bob"}

	tests := []struct {
		name    string
		ident   Identity
		ownerID string
		want    bool
	}{
		{"owner", alice, "user-1", true},
		{"wrong owner", bob, "user-1", false},
		{"anonymous", Identity{}, "user-1", false},
		{"anonymous with empty owner", Identity{}, "", false},
		{"owner id mismatch despite username", Identity{UserID: "user-3", Username: "alice"}, "user-1", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := g.AuthorizeMutation(tt.ident, tt.ownerID); got != tt.want {
				t.Errorf("AuthorizeMutation(%+v, %q) = %v, want %v", tt.ident, tt.ownerID, got, tt.want)
			}
		})
	}
}
