package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/goaltrack/goaltrack/internal/model"
)

var (
	ErrResetTokenNotFound = errors.New("reset token not found")
	ErrResetTokenExpired  = errors.New("reset token has expired")
)

type ResetTokenRepository interface {
	Create(token *model.ResetToken) error
	Consume(digest string) (*model.ResetToken, error)
	DeleteByUser(userID string) error
	CleanupExpired(olderThan time.Duration) (int64, error)
}

type resetTokenRepository struct {
	db *sqlx.DB
}

func NewResetTokenRepository(db *sqlx.DB) ResetTokenRepository {
	return &resetTokenRepository{db: db}
}

func (r *resetTokenRepository) Create(token *model.ResetToken) error {
	if token.ID == "" {
		token.ID = uuid.New().String()
	}
	if token.CreatedAt.IsZero() {
		token.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO reset_tokens (id, user_id, token_digest, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.Exec(query,
		token.ID,
		token.UserID,
		token.TokenDigest,
		token.ExpiresAt,
		token.CreatedAt,
	)
	return err
}

// Consume looks a token up by digest and deletes it, enforcing single use.
// An unknown digest is ErrResetTokenNotFound; a known but stale one is
// ErrResetTokenExpired. The delete is guarded by rows-affected, so if two
// requests race on the same token only the first one wins and the loser
// sees ErrResetTokenNotFound.
func (r *resetTokenRepository) Consume(digest string) (*model.ResetToken, error) {
	var t model.ResetToken
	query := `SELECT * FROM reset_tokens WHERE token_digest = $1`

	err := r.db.Get(&t, query, digest)
	if err == sql.ErrNoRows {
		return nil, ErrResetTokenNotFound
	}
	if err != nil {
		return nil, err
	}

	if t.IsExpired() {
		// Expired tokens are dead either way, drop the row while we are here.
		_, _ = r.db.Exec(`DELETE FROM reset_tokens WHERE id = $1`, t.ID)
		return nil, ErrResetTokenExpired
	}

	result, err := r.db.Exec(`DELETE FROM reset_tokens WHERE id = $1`, t.ID)
	if err != nil {
		return nil, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}

	if rows == 0 {
		return nil, ErrResetTokenNotFound
	}

	return &t, nil
}

// DeleteByUser removes any live token for the user. Paired with Create this
// keeps at most one live reset token per user; the two statements are not
// atomic across concurrent requests, which at worst leaves two valid tokens
// until one is consumed or expires.
func (r *resetTokenRepository) DeleteByUser(userID string) error {
	query := `DELETE FROM reset_tokens WHERE user_id = $1`
	_, err := r.db.Exec(query, userID)
	return err
}

// CleanupExpired removes tokens past their expiry by more than olderThan.
// Expiry is otherwise checked lazily at consume time; call this from a cron
// job only if table growth ever matters.
func (r *resetTokenRepository) CleanupExpired(olderThan time.Duration) (int64, error) {
	cutoff := time.Now().Add(-olderThan)
	query := `DELETE FROM reset_tokens WHERE expires_at < $1`

	result, err := r.db.Exec(query, cutoff)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}
