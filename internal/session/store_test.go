package session

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentd-dev/rentd/internal/models"
)

// mockTokenStore is a simple in-memory credential store for testing
type mockTokenStore struct {
	tokens map[string]string
}

func newMockTokenStore() *mockTokenStore {
	return &mockTokenStore{tokens: make(map[string]string)}
}

func (m *mockTokenStore) SaveToken(server, token string) error {
	m.tokens[server] = token
	return nil
}

func (m *mockTokenStore) LoadToken(server string) (string, error) {
	token, exists := m.tokens[server]
	if !exists {
		return "", errors.New("not authenticated")
	}
	return token, nil
}

func (m *mockTokenStore) DeleteToken(server string) error {
	delete(m.tokens, server)
	return nil
}

// signToken builds a bearer token the way the backend does, so
// Restore has realistic claims to decode
func signToken(t *testing.T, email string, roles []string, expiresAt time.Time) string {
	t.Helper()

	claims := jwt.MapClaims{
		"sub":   email,
		"roles": roles,
		"exp":   expiresAt.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func TestStore_SetUserRoundTrip(t *testing.T) {
	store := New("rental.example.com", newMockTokenStore())

	identity := models.Identity{
		Email: "a@b.com",
		Roles: []models.Role{models.RoleUser},
	}
	store.SetUser(identity)

	got := store.User()
	require.NotNil(t, got)
	assert.Equal(t, identity, *got)
	assert.True(t, store.LoggedIn())
	assert.False(t, store.IsAdmin())
	assert.True(t, store.HasRole(models.RoleUser))
}

func TestStore_IsAdmin(t *testing.T) {
	store := New("rental.example.com", newMockTokenStore())

	assert.False(t, store.IsAdmin(), "empty session must not be admin")

	store.SetUser(models.Identity{
		Email: "admin@b.com",
		Roles: []models.Role{models.RoleUser, models.RoleAdmin},
	})
	assert.True(t, store.IsAdmin())

	store.SetUser(models.Identity{
		Email: "user@b.com",
		Roles: []models.Role{models.RoleUser},
	})
	assert.False(t, store.IsAdmin(), "re-login must replace the role set")
}

func TestStore_LogoutIdempotent(t *testing.T) {
	store := New("rental.example.com", newMockTokenStore())

	// Logout on an empty session is a no-op
	store.Logout()
	assert.Nil(t, store.User())

	store.SetUser(models.Identity{Email: "a@b.com", Roles: []models.Role{models.RoleUser}})
	store.Logout()
	assert.Nil(t, store.User())
	assert.False(t, store.LoggedIn())
	assert.False(t, store.HasRole(models.RoleUser))

	store.Logout()
	assert.Nil(t, store.User())
}

func TestStore_EpochTracksIdentityChanges(t *testing.T) {
	store := New("rental.example.com", newMockTokenStore())

	before := store.Epoch()
	store.Logout() // no-op, must not bump
	assert.Equal(t, before, store.Epoch())

	store.SetUser(models.Identity{Email: "a@b.com", Roles: []models.Role{models.RoleUser}})
	afterLogin := store.Epoch()
	assert.NotEqual(t, before, afterLogin)

	store.Logout()
	assert.NotEqual(t, afterLogin, store.Epoch())
}

func TestStore_UserReturnsSnapshot(t *testing.T) {
	store := New("rental.example.com", newMockTokenStore())
	store.SetUser(models.Identity{Email: "a@b.com", Roles: []models.Role{models.RoleUser}})

	snapshot := store.User()
	snapshot.Email = "mutated@b.com"

	got := store.User()
	assert.Equal(t, "a@b.com", got.Email, "mutating a snapshot must not affect the store")
}

func TestStore_RestoreFromValidCredential(t *testing.T) {
	tokens := newMockTokenStore()
	token := signToken(t, "a@b.com", []string{"ROLE_USER", "ROLE_ADMIN"}, time.Now().Add(time.Hour))
	require.NoError(t, tokens.SaveToken("rental.example.com", token))

	store := New("rental.example.com", tokens)
	store.Restore()

	user := store.User()
	require.NotNil(t, user)
	assert.Equal(t, "a@b.com", user.Email)
	assert.True(t, store.IsAdmin())
}

func TestStore_RestoreMissingCredential(t *testing.T) {
	store := New("rental.example.com", newMockTokenStore())
	store.Restore()

	assert.Nil(t, store.User())
	assert.False(t, store.LoggedIn())
}

func TestStore_RestoreCorruptCredential(t *testing.T) {
	corrupt := []string{
		"not-a-token",
		"a.b",
		"!!!.###.%%%",
		"eyJhbGciOiJIUzI1NiJ9.garbage.sig",
		"",
	}

	for _, token := range corrupt {
		tokens := newMockTokenStore()
		_ = tokens.SaveToken("rental.example.com", token)

		store := New("rental.example.com", tokens)
		store.Restore() // must not panic

		assert.Nil(t, store.User(), "corrupt token %q must leave the session empty", token)
	}
}

func TestStore_RestoreExpiredCredential(t *testing.T) {
	tokens := newMockTokenStore()
	token := signToken(t, "a@b.com", []string{"ROLE_USER"}, time.Now().Add(-time.Hour))
	require.NoError(t, tokens.SaveToken("rental.example.com", token))

	store := New("rental.example.com", tokens)
	store.Restore()

	assert.Nil(t, store.User())
}

func TestStore_RestoreRunsOnce(t *testing.T) {
	tokens := newMockTokenStore()
	store := New("rental.example.com", tokens)

	store.Restore() // nothing stored yet, stays logged out

	// A credential appearing later must not be picked up by a second
	// Restore; only explicit SetUser changes the session afterwards.
	token := signToken(t, "a@b.com", []string{"ROLE_USER"}, time.Now().Add(time.Hour))
	require.NoError(t, tokens.SaveToken("rental.example.com", token))

	store.Restore()
	assert.Nil(t, store.User())
}
