package service

import (
	"testing"
	"time"

	"skillsphere_backend/internal/config"
	"skillsphere_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuthService(userRepo *mockUserRepo) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		cfg: &config.Config{
			JWT: config.JWTConfig{
				Secret:     "test-secret-at-least-32-characters-long",
				ExpireTime: time.Hour,
			},
		},
	}
}

func TestRegister(t *testing.T) {
	userRepo := newMockUserRepo()
	svc := newAuthService(userRepo)

	user, token, err := svc.Register("ada", "correct horse battery", "Ada", "ada@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "ada", user.Username)

	// Stored hash verifies, plaintext is never kept.
	assert.NotEqual(t, "correct horse battery", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("correct horse battery")))

	claims, err := util.ParseJWT(token, "test-secret-at-least-32-characters-long")
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "ada", claims.Username)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	userRepo := newMockUserRepo()
	svc := newAuthService(userRepo)

	_, _, err := svc.Register("ada", "pw1", "Ada", "ada@example.com")
	require.NoError(t, err)

	_, _, err = svc.Register("ada", "pw2", "Other Ada", "other@example.com")
	assert.ErrorIs(t, err, util.ErrUsernameRegistered)
}

func TestLogin(t *testing.T) {
	userRepo := newMockUserRepo()
	svc := newAuthService(userRepo)

	_, _, err := svc.Register("ada", "correct horse battery", "Ada", "ada@example.com")
	require.NoError(t, err)

	user, token, err := svc.Login("ada", "correct horse battery")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "ada", user.Username)
}

func TestLoginWrongPassword(t *testing.T) {
	userRepo := newMockUserRepo()
	svc := newAuthService(userRepo)

	_, _, err := svc.Register("ada", "correct horse battery", "Ada", "ada@example.com")
	require.NoError(t, err)

	_, _, err = svc.Login("ada", "wrong")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)
}

func TestLoginUnknownUsername(t *testing.T) {
	svc := newAuthService(newMockUserRepo())

	_, _, err := svc.Login("nobody", "pw")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)
}
