package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/goaltrack/goaltrack/internal/auth"
	"github.com/goaltrack/goaltrack/internal/ctxkeys"
	"github.com/goaltrack/goaltrack/internal/repository"
	"github.com/goaltrack/goaltrack/internal/service"
)

type GoalHandler struct {
	goalService *service.GoalService
}

func NewGoalHandler(goalService *service.GoalService) *GoalHandler {
	return &GoalHandler{goalService: goalService}
}

// List handles GET /goals
func (h *GoalHandler) List(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	goals, err := h.goalService.Goals(user.ID)
	if err != nil {
		slog.Error("failed to list goals", "error", err, "user_id", user.ID)
		respondError(w, http.StatusInternalServerError, "failed to load goals")
		return
	}

	respondJSON(w, http.StatusOK, goals)
}

type goalRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Completed   *bool  `json:"completed"`
}

// Create handles POST /goals
func (h *GoalHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req goalRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if req.Name == "" || req.Description == "" {
		respondError(w, http.StatusBadRequest, "please fill in all fields")
		return
	}

	goal, err := h.goalService.Create(user.ID, req.Name, req.Description)
	if err != nil {
		slog.Error("failed to create goal", "error", err, "user_id", user.ID)
		respondError(w, http.StatusInternalServerError, "failed to create goal")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"data":    goal,
		"message": "goal created",
	})
}

// Update handles PUT /goals/{id}
func (h *GoalHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	goalID := r.PathValue("id")

	var req goalRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if req.Name == "" || req.Description == "" || req.Completed == nil {
		respondError(w, http.StatusBadRequest, "please fill in all fields")
		return
	}

	goal, err := h.goalService.Update(user.ID, goalID, req.Name, req.Description, *req.Completed)
	if err != nil {
		h.writeGoalError(w, err, user.ID, goalID, "update")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    goal,
		"message": "goal updated",
	})
}

// Delete handles DELETE /goals/{id}
func (h *GoalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	goalID := r.PathValue("id")

	err := h.goalService.Delete(user.ID, goalID)
	if err != nil {
		h.writeGoalError(w, err, user.ID, goalID, "delete")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "goal deleted",
	})
}

func (h *GoalHandler) writeGoalError(w http.ResponseWriter, err error, userID, goalID, op string) {
	if errors.Is(err, repository.ErrGoalNotFound) {
		respondError(w, http.StatusNotFound, "goal not found")
		return
	}
	if errors.Is(err, auth.ErrForbidden) {
		respondError(w, http.StatusForbidden, "access denied")
		return
	}
	slog.Error("goal "+op+" failed", "error", err, "user_id", userID, "goal_id", goalID)
	respondError(w, http.StatusInternalServerError, "failed to "+op+" goal")
}
