package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/rentd-dev/rentd/internal/models"
)

// Claims represents the bearer token claims issued by the backend.
// The subject holds the account email and the roles claim holds the
// role names granted to it.
type Claims struct {
	Roles []string `json:"roles"`
	jwt.RegisteredClaims
}

// DecodeIdentity reconstructs the session identity from a bearer
// token without a network round trip. The signature is NOT verified:
// the server is the authority on the token, the client only reads the
// claims to restore its own view of who is logged in. An expired or
// malformed token is rejected.
func DecodeIdentity(token string) (models.Identity, error) {
	var claims Claims
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return models.Identity{}, fmt.Errorf("failed to parse token: %w", err)
	}

	if claims.Subject == "" {
		return models.Identity{}, fmt.Errorf("token has no subject")
	}
	if len(claims.Roles) == 0 {
		return models.Identity{}, fmt.Errorf("token has no roles")
	}
	if claims.ExpiresAt != nil && claims.ExpiresAt.Before(time.Now()) {
		return models.Identity{}, fmt.Errorf("token expired at %s", claims.ExpiresAt.Time)
	}

	roles := make([]models.Role, len(claims.Roles))
	for i, r := range claims.Roles {
		roles[i] = models.Role(r)
	}

	return models.Identity{Email: claims.Subject, Roles: roles}, nil
}
