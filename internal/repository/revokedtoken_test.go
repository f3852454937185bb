package repository_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goaltrack/goaltrack/internal/model"
	"github.com/goaltrack/goaltrack/internal/repository"
	"github.com/goaltrack/goaltrack/internal/testutil"
)

func TestRevokedTokenRepository_Revoke(t *testing.T) {
	db := testutil.NewDB(t)
	users := repository.NewUserRepository(db)
	repo := repository.NewRevokedTokenRepository(db)

	ann := newUser("ann@x.com")
	require.NoError(t, users.Create(ann))

	revoked, err := repo.IsRevoked("jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	entry := &model.RevokedToken{
		JTI:       "jti-1",
		UserID:    ann.ID,
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, repo.Revoke(entry))

	revoked, err = repo.IsRevoked("jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	// Revoking the same token twice is a no-op, not an error.
	require.NoError(t, repo.Revoke(entry))
}

func TestRevokedTokenRepository_PurgesExpiredEntries(t *testing.T) {
	db := testutil.NewDB(t)
	users := repository.NewUserRepository(db)
	repo := repository.NewRevokedTokenRepository(db)

	ann := newUser("ann@x.com")
	require.NoError(t, users.Create(ann))

	require.NoError(t, repo.Revoke(&model.RevokedToken{
		JTI:       "jti-dead",
		UserID:    ann.ID,
		ExpiresAt: time.Now().Add(-time.Minute),
	}))

	// The next insert sweeps entries whose tokens have already expired.
	require.NoError(t, repo.Revoke(&model.RevokedToken{
		JTI:       "jti-live",
		UserID:    ann.ID,
		ExpiresAt: time.Now().Add(time.Hour),
	}))

	revoked, err := repo.IsRevoked("jti-dead")
	require.NoError(t, err)
	assert.False(t, revoked)

	revoked, err = repo.IsRevoked("jti-live")
	require.NoError(t, err)
	assert.True(t, revoked)
}
