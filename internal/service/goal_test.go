package service_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goaltrack/goaltrack/internal/auth"
	"github.com/goaltrack/goaltrack/internal/model"
	"github.com/goaltrack/goaltrack/internal/repository"
	"github.com/goaltrack/goaltrack/internal/service"
	"github.com/goaltrack/goaltrack/internal/testutil"
)

func newGoalFixture(t *testing.T) (*service.GoalService, *model.User, *model.User) {
	t.Helper()

	db := testutil.NewDB(t)
	users := repository.NewUserRepository(db)

	ann := &model.User{
		ID:           "ann-id",
		Name:         "Ann",
		Email:        "ann@x.com",
		PasswordHash: "hash",
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	bob := &model.User{
		ID:           "bob-id",
		Name:         "Bob",
		Email:        "bob@x.com",
		PasswordHash: "hash",
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	require.NoError(t, users.Create(ann))
	require.NoError(t, users.Create(bob))

	return service.NewGoalService(repository.NewGoalRepository(db)), ann, bob
}

func TestGoalService_CreateAndList(t *testing.T) {
	svc, ann, bob := newGoalFixture(t)

	goal, err := svc.Create(ann.ID, "run", "5k")
	require.NoError(t, err)
	assert.Equal(t, ann.ID, goal.UserID)
	assert.False(t, goal.Completed)

	annGoals, err := svc.Goals(ann.ID)
	require.NoError(t, err)
	assert.Len(t, annGoals, 1)

	bobGoals, err := svc.Goals(bob.ID)
	require.NoError(t, err)
	assert.Empty(t, bobGoals)
}

func TestGoalService_UpdateOwnership(t *testing.T) {
	svc, ann, bob := newGoalFixture(t)

	goal, err := svc.Create(ann.ID, "run", "5k")
	require.NoError(t, err)

	// A different authenticated user is forbidden, not not-found.
	_, err = svc.Update(bob.ID, goal.ID, "run", "10k", true)
	assert.ErrorIs(t, err, auth.ErrForbidden)

	updated, err := svc.Update(ann.ID, goal.ID, "run", "10k", true)
	require.NoError(t, err)
	assert.Equal(t, "10k", updated.Description)
	assert.True(t, updated.Completed)

	_, err = svc.Update(ann.ID, "missing", "run", "10k", true)
	assert.ErrorIs(t, err, repository.ErrGoalNotFound)
}

func TestGoalService_DeleteOwnership(t *testing.T) {
	svc, ann, bob := newGoalFixture(t)

	goal, err := svc.Create(ann.ID, "run", "5k")
	require.NoError(t, err)

	err = svc.Delete(bob.ID, goal.ID)
	assert.ErrorIs(t, err, auth.ErrForbidden)

	require.NoError(t, svc.Delete(ann.ID, goal.ID))

	err = svc.Delete(ann.ID, goal.ID)
	assert.ErrorIs(t, err, repository.ErrGoalNotFound)
}
