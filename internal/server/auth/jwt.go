// Package auth resolves bearer credentials into user identities. Tokens are
// HS256 JWTs minted by the external identity provider; this package only
// verifies them — there are no retries, the caller must re-authenticate on
// failure.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"gripgate/internal/common"
)

// Claims carries the registered claims plus the user identifier. The Subject
// claim is the canonical location, but tokens from older provider versions
// put the id in UserID, so both are accepted.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id,omitempty"`
}

// GenerateToken mints a signed token for userID. Used by tests and tooling;
// production tokens come from the identity provider.
func GenerateToken(userID string, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
	})

	return token.SignedString(secretKey)
}

// VerifyToken validates the token signature and expiry and returns the user
// identifier. Expired, malformed, and wrongly signed tokens all map to
// common.ErrInvalidToken.
func VerifyToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, common.ErrInvalidToken
		}
		return secretKey, nil
	})
	if err != nil {
		return "", common.ErrInvalidToken
	}

	if !token.Valid {
		return "", common.ErrInvalidToken
	}

	userID := claims.Subject
	if userID == "" {
		userID = claims.UserID
	}
	if userID == "" {
		return "", common.ErrInvalidToken
	}

	return userID, nil
}
