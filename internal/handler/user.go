package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/goaltrack/goaltrack/internal/ctxkeys"
	"github.com/goaltrack/goaltrack/internal/repository"
	"github.com/goaltrack/goaltrack/internal/service"
	"github.com/goaltrack/goaltrack/internal/validation"
)

type UserHandler struct {
	authService *service.AuthService
}

func NewUserHandler(authService *service.AuthService) *UserHandler {
	return &UserHandler{authService: authService}
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup handles POST /users/signup
func (h *UserHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if req.Name == "" || req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "please fill in all fields")
		return
	}

	err := validation.ValidateName(req.Name)
	if err == nil {
		err = validation.ValidateEmail(req.Email)
	}
	if err == nil {
		err = validation.ValidatePassword(req.Password)
	}
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, token, err := h.authService.Signup(req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrEmailAlreadyExists) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		slog.Error("signup failed", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to create user")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"_id":   user.ID,
		"name":  user.Name,
		"email": user.Email,
		"token": token,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /users/login
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "please fill in all fields")
		return
	}

	user, token, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondError(w, http.StatusUnauthorized, err.Error())
			return
		}
		slog.Error("login failed", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to log in")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"_id":   user.ID,
		"name":  user.Name,
		"email": user.Email,
		"token": token,
	})
}

// Me handles GET /users/me
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	respondJSON(w, http.StatusOK, map[string]any{
		"_id":   user.ID,
		"name":  user.Name,
		"email": user.Email,
	})
}

// Logout handles GET /users/logout. The presented token is added to the
// revocation list; it will fail verification from here on even though its
// signature and expiry are still intact.
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	claims := ctxkeys.Claims(r.Context())

	err := h.authService.Logout(user.ID, claims)
	if err != nil {
		slog.Error("logout failed", "error", err, "user_id", user.ID)
		respondError(w, http.StatusInternalServerError, "failed to log out")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "logout successful",
	})
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

// ForgotPassword handles POST /users/forgotpassword
func (h *UserHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if req.Email == "" {
		respondError(w, http.StatusBadRequest, "please fill in all fields")
		return
	}

	resetLink, err := h.authService.ForgotPassword(req.Email)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			respondError(w, http.StatusNotFound, err.Error())
			return
		}
		slog.Error("forgot password failed", "error", err)
		respondError(w, http.StatusInternalServerError, "email could not be sent")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    "email sent",
		"link":    resetLink,
	})
}

type resetPasswordRequest struct {
	Password string `json:"password"`
}

// ResetPassword handles POST /users/resetpassword/{token}
func (h *UserHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	rawToken := r.PathValue("token")

	var req resetPasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	err := validation.ValidatePassword(req.Password)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	err = h.authService.ResetPassword(rawToken, req.Password)
	if err != nil {
		if errors.Is(err, repository.ErrResetTokenNotFound) {
			respondError(w, http.StatusBadRequest, "invalid token")
			return
		}
		if errors.Is(err, repository.ErrResetTokenExpired) {
			respondError(w, http.StatusBadRequest, "reset token expired")
			return
		}
		slog.Error("reset password failed", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to reset password")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "password reset successful",
	})
}

type updatePasswordRequest struct {
	OldPassword string `json:"oldpassword"`
	NewPassword string `json:"newpassword"`
}

// UpdatePassword handles POST /users/updatepassword
func (h *UserHandler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req updatePasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if req.OldPassword == "" || req.NewPassword == "" {
		respondError(w, http.StatusBadRequest, "please fill in all fields")
		return
	}

	err := validation.ValidatePassword(req.NewPassword)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	err = h.authService.UpdatePassword(user.ID, req.OldPassword, req.NewPassword)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondError(w, http.StatusUnauthorized, "old password is incorrect")
			return
		}
		slog.Error("update password failed", "error", err, "user_id", user.ID)
		respondError(w, http.StatusInternalServerError, "failed to update password")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "password updated",
	})
}
