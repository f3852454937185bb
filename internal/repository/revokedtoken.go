package repository

import (
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/goaltrack/goaltrack/internal/model"
)

// RevokedTokenRepository is the denylist behind logout. A bearer token stays
// cryptographically valid until its expiry, so revocation has to be a
// server-side lookup keyed by the token's jti.
type RevokedTokenRepository interface {
	Revoke(token *model.RevokedToken) error
	IsRevoked(jti string) (bool, error)
}

type revokedTokenRepository struct {
	db *sqlx.DB
}

func NewRevokedTokenRepository(db *sqlx.DB) RevokedTokenRepository {
	return &revokedTokenRepository{db: db}
}

func (r *revokedTokenRepository) Revoke(token *model.RevokedToken) error {
	if token.CreatedAt.IsZero() {
		token.CreatedAt = time.Now()
	}

	// Piggyback cleanup: entries for tokens that have expired on their own
	// can never match a live token again.
	_, _ = r.db.Exec(`DELETE FROM revoked_tokens WHERE expires_at < $1`, time.Now())

	// ON CONFLICT makes a double logout with the same token a no-op.
	query := `
		INSERT INTO revoked_tokens (jti, user_id, expires_at, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (jti) DO NOTHING
	`
	_, err := r.db.Exec(query, token.JTI, token.UserID, token.ExpiresAt, token.CreatedAt)
	return err
}

func (r *revokedTokenRepository) IsRevoked(jti string) (bool, error) {
	var count int
	query := `SELECT COUNT(*) FROM revoked_tokens WHERE jti = $1`

	err := r.db.QueryRow(query, jti).Scan(&count)
	if err != nil {
		return false, err
	}

	return count > 0, nil
}
