package crypto

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrTokenInvalid covers malformed, tampered, unsigned and
	// wrong-secret tokens. No claim data is ever returned with it.
	ErrTokenInvalid = errors.New("invalid token")
	// ErrTokenExpired is returned for a well-formed, correctly signed
	// token whose expiry has passed.
	ErrTokenExpired = errors.New("token expired")
)

// Claims is the signed identity assertion carried by a session token.
// Tokens are self-contained: the server never looks them up in storage,
// it only verifies the signature.
type Claims struct {
	jwt.RegisteredClaims
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}

// IssueToken creates a signed token binding the user's id and username
// at the current time. The secret is process-wide, injected at startup
// and never rotated during a process lifetime.
func IssueToken(userID, username, secret string, expiry time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "inkpost",
			Audience:  jwt.ClaimStrings{"inkpost-api"},
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID:   userID,
		Username: username,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// VerifyToken parses and validates a token string, returning the claims
// if the signature checks out and the token has not expired.
func VerifyToken(tokenString, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return []byte(secret), nil
	}, jwt.WithIssuer("inkpost"), jwt.WithAudience("inkpost-api"))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}
