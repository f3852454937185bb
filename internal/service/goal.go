package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/goaltrack/goaltrack/internal/auth"
	"github.com/goaltrack/goaltrack/internal/model"
	"github.com/goaltrack/goaltrack/internal/repository"
)

type GoalService struct {
	repo repository.GoalRepository
}

func NewGoalService(repo repository.GoalRepository) *GoalService {
	return &GoalService{repo: repo}
}

func (s *GoalService) Goals(userID string) ([]*model.Goal, error) {
	return s.repo.ByUser(userID)
}

func (s *GoalService) Create(userID, name, description string) (*model.Goal, error) {
	now := time.Now()
	goal := &model.Goal{
		ID:          uuid.New().String(),
		UserID:      userID,
		Name:        name,
		Description: description,
		Completed:   false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := s.repo.Create(goal)
	if err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}

	return goal, nil
}

// Update mutates a goal after confirming it exists and belongs to the
// caller. The ownership check runs on the loaded record, immediately before
// the write, so a missing goal is NotFound and a foreign one is Forbidden.
func (s *GoalService) Update(callerID, goalID, name, description string, completed bool) (*model.Goal, error) {
	goal, err := s.repo.ByID(goalID)
	if err != nil {
		return nil, err
	}

	err = auth.AssertOwner(goal.UserID, callerID)
	if err != nil {
		return nil, err
	}

	goal.Name = name
	goal.Description = description
	goal.Completed = completed
	goal.UpdatedAt = time.Now()

	err = s.repo.Update(goal)
	if err != nil {
		return nil, err
	}

	return goal, nil
}

// Delete removes a goal, same resolve-then-assert sequence as Update.
func (s *GoalService) Delete(callerID, goalID string) error {
	goal, err := s.repo.ByID(goalID)
	if err != nil {
		return err
	}

	err = auth.AssertOwner(goal.UserID, callerID)
	if err != nil {
		return err
	}

	return s.repo.Delete(goal.ID)
}
