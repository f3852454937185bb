package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/goaltrack/goaltrack/internal/model"
)

var ErrGoalNotFound = errors.New("goal not found")

// GoalRepository looks goals up by ID alone. Ownership is asserted by the
// service after the load, so a caller poking at someone else's goal gets a
// forbidden answer instead of a misleading not-found.
type GoalRepository interface {
	Create(goal *model.Goal) error
	ByID(goalID string) (*model.Goal, error)
	ByUser(userID string) ([]*model.Goal, error)
	Update(goal *model.Goal) error
	Delete(goalID string) error
}

type goalRepository struct {
	db *sqlx.DB
}

func NewGoalRepository(db *sqlx.DB) GoalRepository {
	return &goalRepository{db: db}
}

func (r *goalRepository) Create(goal *model.Goal) error {
	query := `INSERT INTO goals (id, user_id, name, description, completed, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.Exec(query,
		goal.ID,
		goal.UserID,
		goal.Name,
		goal.Description,
		goal.Completed,
		goal.CreatedAt,
		goal.UpdatedAt,
	)

	return err
}

func (r *goalRepository) ByID(goalID string) (*model.Goal, error) {
	goal := &model.Goal{}
	query := `SELECT * FROM goals WHERE id = $1`

	err := r.db.Get(goal, query, goalID)
	if err == sql.ErrNoRows {
		return nil, ErrGoalNotFound
	}

	return goal, err
}

func (r *goalRepository) ByUser(userID string) ([]*model.Goal, error) {
	goals := []*model.Goal{}
	query := `SELECT * FROM goals WHERE user_id = $1 ORDER BY created_at ASC`

	err := r.db.Select(&goals, query, userID)
	if err != nil {
		return nil, err
	}

	return goals, nil
}

func (r *goalRepository) Update(goal *model.Goal) error {
	query := `UPDATE goals
	          SET name = $1, description = $2, completed = $3, updated_at = $4
	          WHERE id = $5`

	result, err := r.db.Exec(query,
		goal.Name,
		goal.Description,
		goal.Completed,
		goal.UpdatedAt,
		goal.ID,
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrGoalNotFound
	}

	return nil
}

func (r *goalRepository) Delete(goalID string) error {
	query := `DELETE FROM goals WHERE id = $1`

	result, err := r.db.Exec(query, goalID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrGoalNotFound
	}

	return nil
}
