package app

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/goaltrack/goaltrack/internal/auth"
	"github.com/goaltrack/goaltrack/internal/config"
	"github.com/goaltrack/goaltrack/internal/db"
	"github.com/goaltrack/goaltrack/internal/repository"
	"github.com/goaltrack/goaltrack/internal/service"
)

type App struct {
	Cfg          *config.Config
	DB           *sqlx.DB
	AuthService  *service.AuthService
	GoalService  *service.GoalService
	EmailService *service.EmailService
}

func New(cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %v", err)
	}

	// Run database migrations
	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %v", err)
	}

	// Repositories
	userRepository := repository.NewUserRepository(database)
	goalRepository := repository.NewGoalRepository(database)
	resetTokenRepository := repository.NewResetTokenRepository(database)
	revokedTokenRepository := repository.NewRevokedTokenRepository(database)

	// Services
	emailService := service.NewEmailService(
		cfg.ResendAPIKey,
		cfg.EmailFrom,
		cfg.AppName,
		cfg.IsDevelopment(),
	)
	tokenIssuer := auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTExpiry)
	authService := service.NewAuthService(
		userRepository,
		resetTokenRepository,
		revokedTokenRepository,
		emailService,
		tokenIssuer,
		cfg.AppURL,
		cfg.ResetTokenExpiry,
	)
	goalService := service.NewGoalService(goalRepository)

	return &App{
		Cfg:          cfg,
		DB:           database,
		AuthService:  authService,
		GoalService:  goalService,
		EmailService: emailService,
	}, nil
}

func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
