package model

import (
	"time"
)

// ResetToken is a single-use password-recovery credential. Only the SHA-256
// digest of the raw value is persisted; the raw value exists once, in the
// reset link handed back to the requester.
type ResetToken struct {
	ID          string    `db:"id"`
	UserID      string    `db:"user_id"`
	TokenDigest string    `db:"token_digest"`
	ExpiresAt   time.Time `db:"expires_at"`
	CreatedAt   time.Time `db:"created_at"`
}

func (t *ResetToken) IsExpired() bool {
	return time.Now().After(t.ExpiresAt)
}

// RevokedToken is a denylist entry for a bearer token's jti, written on
// logout. Rows are dead weight once the token itself has expired and are
// purged lazily.
type RevokedToken struct {
	JTI       string    `db:"jti"`
	UserID    string    `db:"user_id"`
	ExpiresAt time.Time `db:"expires_at"`
	CreatedAt time.Time `db:"created_at"`
}
