package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenIssuer_IssueAndVerify(t *testing.T) {
	t.Parallel()

	issuer := NewTokenIssuer("test-secret", time.Hour)

	token, err := issuer.Issue("user-123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.NotEmpty(t, claims.JTI)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt, time.Minute)
}

func TestTokenIssuer_TwoTokensSameSubject(t *testing.T) {
	t.Parallel()

	issuer := NewTokenIssuer("test-secret", time.Hour)

	t1, err := issuer.Issue("user-123")
	require.NoError(t, err)
	t2, err := issuer.Issue("user-123")
	require.NoError(t, err)

	c1, err := issuer.Verify(t1)
	require.NoError(t, err)
	c2, err := issuer.Verify(t2)
	require.NoError(t, err)

	assert.Equal(t, c1.UserID, c2.UserID)
	assert.NotEqual(t, c1.JTI, c2.JTI)
}

func TestTokenIssuer_Verify_Invalid(t *testing.T) {
	t.Parallel()

	issuer := NewTokenIssuer("test-secret", time.Hour)

	expired, err := NewTokenIssuer("test-secret", -time.Minute).Issue("user-123")
	require.NoError(t, err)

	wrongSecret, err := NewTokenIssuer("other-secret", time.Hour).Issue("user-123")
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "malformed", token: "not.a.jwt"},
		{name: "empty", token: ""},
		{name: "expired", token: expired},
		{name: "signature mismatch", token: wrongSecret},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			claims, err := issuer.Verify(tt.token)
			assert.Nil(t, claims)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}
