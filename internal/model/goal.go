package model

import (
	"time"
)

type Goal struct {
	ID          string    `db:"id" json:"_id"`
	UserID      string    `db:"user_id" json:"user"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	Completed   bool      `db:"completed" json:"completed"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}
