package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentd-dev/rentd/internal/models"
)

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func TestDecodeIdentity(t *testing.T) {
	token := signToken(t, jwt.MapClaims{
		"sub":   "a@b.com",
		"roles": []string{"ROLE_USER", "ROLE_ADMIN"},
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	identity, err := DecodeIdentity(token)

	require.NoError(t, err)
	assert.Equal(t, "a@b.com", identity.Email)
	assert.Equal(t, []models.Role{models.RoleUser, models.RoleAdmin}, identity.Roles)
}

func TestDecodeIdentity_UnknownRolePassesThrough(t *testing.T) {
	token := signToken(t, jwt.MapClaims{
		"sub":   "a@b.com",
		"roles": []string{"ROLE_FLEET_MANAGER"},
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	identity, err := DecodeIdentity(token)

	require.NoError(t, err)
	require.Len(t, identity.Roles, 1)
	assert.Equal(t, models.Role("ROLE_FLEET_MANAGER"), identity.Roles[0])
	assert.Equal(t, "ROLE_FLEET_MANAGER", identity.Roles[0].Label())
}

func TestDecodeIdentity_NoExpiryIsAccepted(t *testing.T) {
	token := signToken(t, jwt.MapClaims{
		"sub":   "a@b.com",
		"roles": []string{"ROLE_USER"},
	})

	_, err := DecodeIdentity(token)
	assert.NoError(t, err)
}

func TestDecodeIdentity_Rejections(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{
			name:  "garbage",
			token: "not-a-token",
		},
		{
			name:  "empty",
			token: "",
		},
		{
			name: "expired",
			token: signTokenHelper(jwt.MapClaims{
				"sub":   "a@b.com",
				"roles": []string{"ROLE_USER"},
				"exp":   time.Now().Add(-time.Minute).Unix(),
			}),
		},
		{
			name: "no subject",
			token: signTokenHelper(jwt.MapClaims{
				"roles": []string{"ROLE_USER"},
			}),
		},
		{
			name: "no roles",
			token: signTokenHelper(jwt.MapClaims{
				"sub": "a@b.com",
			}),
		},
		{
			name: "empty roles",
			token: signTokenHelper(jwt.MapClaims{
				"sub":   "a@b.com",
				"roles": []string{},
			}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeIdentity(tt.token)
			assert.Error(t, err)
		})
	}
}

// signTokenHelper is signToken without *testing.T for use in table
// literals
func signTokenHelper(claims jwt.MapClaims) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, _ := token.SignedString([]byte("test-secret"))
	return signed
}
