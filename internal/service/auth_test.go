package service_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goaltrack/goaltrack/internal/auth"
	"github.com/goaltrack/goaltrack/internal/repository"
	"github.com/goaltrack/goaltrack/internal/service"
	"github.com/goaltrack/goaltrack/internal/testutil"
)

const testAppURL = "http://localhost:5000"

func newAuthService(t *testing.T) *service.AuthService {
	t.Helper()

	db := testutil.NewDB(t)
	return service.NewAuthService(
		repository.NewUserRepository(db),
		repository.NewResetTokenRepository(db),
		repository.NewRevokedTokenRepository(db),
		service.NewEmailService("", "noreply@example.com", "Goal Tracker", true),
		auth.NewTokenIssuer("test-secret", time.Hour),
		testAppURL,
		time.Hour,
	)
}

// rawTokenFromLink strips the reset URL prefix, leaving the raw token the
// user would paste back.
func rawTokenFromLink(t *testing.T, link string) string {
	t.Helper()

	prefix := testAppURL + "/users/resetpassword/"
	require.True(t, strings.HasPrefix(link, prefix))
	return strings.TrimPrefix(link, prefix)
}

func TestAuthService_SignupAndLogin(t *testing.T) {
	svc := newAuthService(t)

	user, token1, err := svc.Signup("Ann", "ann@x.com", "secret1")
	require.NoError(t, err)
	require.NotEmpty(t, token1)
	assert.Equal(t, "ann@x.com", user.Email)
	assert.NotEqual(t, "secret1", user.PasswordHash)

	// Login issues a fresh token; both resolve to the same subject.
	loggedIn, token2, err := svc.Login("ann@x.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)

	u1, _, err := svc.Authenticate(token1)
	require.NoError(t, err)
	u2, _, err := svc.Authenticate(token2)
	require.NoError(t, err)
	assert.Equal(t, u1.ID, u2.ID)
}

func TestAuthService_SignupDuplicateEmail(t *testing.T) {
	svc := newAuthService(t)

	_, _, err := svc.Signup("Ann", "ann@x.com", "secret1")
	require.NoError(t, err)

	_, _, err = svc.Signup("Other Ann", "ann@x.com", "secret2")
	assert.ErrorIs(t, err, service.ErrEmailAlreadyExists)
}

func TestAuthService_LoginFailures(t *testing.T) {
	svc := newAuthService(t)

	_, _, err := svc.Signup("Ann", "ann@x.com", "secret1")
	require.NoError(t, err)

	_, _, err = svc.Login("nobody@x.com", "secret1")
	assert.ErrorIs(t, err, service.ErrUserNotFound)

	_, _, err = svc.Login("ann@x.com", "wrong")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestAuthService_Authenticate(t *testing.T) {
	svc := newAuthService(t)

	_, token, err := svc.Signup("Ann", "ann@x.com", "secret1")
	require.NoError(t, err)

	user, claims, err := svc.Authenticate(token)
	require.NoError(t, err)
	assert.Equal(t, "ann@x.com", user.Email)
	assert.Equal(t, user.ID, claims.UserID)

	_, _, err = svc.Authenticate("garbage")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestAuthService_LogoutRevokesToken(t *testing.T) {
	svc := newAuthService(t)

	_, token, err := svc.Signup("Ann", "ann@x.com", "secret1")
	require.NoError(t, err)

	user, claims, err := svc.Authenticate(token)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(user.ID, claims))

	// The token is still signed and unexpired, but the denylist rejects it.
	_, _, err = svc.Authenticate(token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestAuthService_ForgotAndResetPassword(t *testing.T) {
	svc := newAuthService(t)

	_, _, err := svc.Signup("Ann", "ann@x.com", "secret1")
	require.NoError(t, err)

	link, err := svc.ForgotPassword("ann@x.com")
	require.NoError(t, err)
	rawToken := rawTokenFromLink(t, link)
	require.NotEmpty(t, rawToken)

	require.NoError(t, svc.ResetPassword(rawToken, "newpass1"))

	_, _, err = svc.Login("ann@x.com", "secret1")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)

	_, _, err = svc.Login("ann@x.com", "newpass1")
	assert.NoError(t, err)

	// Single use: the same raw token cannot reset twice.
	err = svc.ResetPassword(rawToken, "another1")
	assert.ErrorIs(t, err, repository.ErrResetTokenNotFound)
}

func TestAuthService_ForgotPasswordUnknownEmail(t *testing.T) {
	svc := newAuthService(t)

	_, err := svc.ForgotPassword("nobody@x.com")
	assert.ErrorIs(t, err, service.ErrUserNotFound)
}

func TestAuthService_SecondResetTokenInvalidatesFirst(t *testing.T) {
	svc := newAuthService(t)

	_, _, err := svc.Signup("Ann", "ann@x.com", "secret1")
	require.NoError(t, err)

	firstLink, err := svc.ForgotPassword("ann@x.com")
	require.NoError(t, err)
	secondLink, err := svc.ForgotPassword("ann@x.com")
	require.NoError(t, err)

	err = svc.ResetPassword(rawTokenFromLink(t, firstLink), "newpass1")
	assert.ErrorIs(t, err, repository.ErrResetTokenNotFound)

	err = svc.ResetPassword(rawTokenFromLink(t, secondLink), "newpass1")
	assert.NoError(t, err)
}

func TestAuthService_ResetPasswordBadToken(t *testing.T) {
	svc := newAuthService(t)

	err := svc.ResetPassword("never-issued", "newpass1")
	assert.ErrorIs(t, err, repository.ErrResetTokenNotFound)
}

func TestAuthService_UpdatePassword(t *testing.T) {
	svc := newAuthService(t)

	user, _, err := svc.Signup("Ann", "ann@x.com", "secret1")
	require.NoError(t, err)

	err = svc.UpdatePassword(user.ID, "wrong", "newpass1")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)

	require.NoError(t, svc.UpdatePassword(user.ID, "secret1", "newpass1"))

	_, _, err = svc.Login("ann@x.com", "newpass1")
	assert.NoError(t, err)
}
