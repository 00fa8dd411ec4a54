// Package auth derives a caller identity from a presented session token
// and decides whether that identity may mutate a given resource.
package auth

import "github.com/inkpost/inkpost-go/internal/crypto"

// Identity is the verified (user id, username) pair carried by a valid
// session token. The zero value is Anonymous.
type Identity struct {
	UserID   string
	Username string
}

// IsAnonymous reports whether the identity carries no verified user.
func (id Identity) IsAnonymous() bool {
	return id.UserID == ""
}

// Guard resolves tokens into identities and gates resource mutation on
// ownership.
type Guard struct {
	secret string
}

// NewGuard creates a Guard verifying tokens against the given signing secret.
func NewGuard(secret string) *Guard {
	return &Guard{secret: secret}
}

// Identify resolves a presented token into an Identity. An absent,
// malformed, tampered or expired token yields Anonymous — never an error,
// since anonymous read access is allowed.
func (g *Guard) Identify(token string) Identity {
	if token == "" {
		return Identity{}
	}

	claims, err := crypto.VerifyToken(token, g.secret)
	if err != nil {
		return Identity{}
	}

	return Identity{UserID: claims.UserID, Username: claims.Username}
}

// AuthorizeMutation reports whether the identity may mutate a resource
// owned by ownerID: only a non-anonymous caller whose user id equals the
// owner id. Callers must surface a false result as one generic
// authorization failure, without distinguishing "not logged in" from
// "wrong owner".
func (g *Guard) AuthorizeMutation(id Identity, ownerID string) bool {
	return !id.IsAnonymous() && id.UserID == ownerID
}
