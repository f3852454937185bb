package routes

import (
	"net/http"

	"github.com/goaltrack/goaltrack/internal/app"
	"github.com/goaltrack/goaltrack/internal/handler"
	"github.com/goaltrack/goaltrack/internal/middleware"
)

func SetupRoutes(a *app.App) http.Handler {
	// Handlers
	user := handler.NewUserHandler(a.AuthService)
	goal := handler.NewGoalHandler(a.GoalService)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", handler.Health)

	// Auth actions (rate limited, no bearer token)
	rateLimiter := middleware.RateLimitAuth()
	requireAuth := middleware.RequireAuth(a.AuthService)

	mux.HandleFunc("POST /users/signup", rateLimiter(user.Signup))
	mux.HandleFunc("POST /users/login", rateLimiter(user.Login))
	mux.HandleFunc("POST /users/forgotpassword", rateLimiter(user.ForgotPassword))
	mux.HandleFunc("POST /users/resetpassword/{token}", rateLimiter(user.ResetPassword))

	// Account (bearer token required)
	mux.HandleFunc("GET /users/me", requireAuth(user.Me))
	mux.HandleFunc("GET /users/logout", requireAuth(user.Logout))
	mux.HandleFunc("POST /users/updatepassword", requireAuth(user.UpdatePassword))

	// Goals (bearer token required)
	mux.HandleFunc("GET /goals", requireAuth(goal.List))
	mux.HandleFunc("POST /goals", requireAuth(goal.Create))
	mux.HandleFunc("PUT /goals/{id}", requireAuth(goal.Update))
	mux.HandleFunc("DELETE /goals/{id}", requireAuth(goal.Delete))

	return middleware.Chain(mux,
		middleware.RequestLogging,
	)
}
