package service

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/goaltrack/goaltrack/internal/auth"
	"github.com/goaltrack/goaltrack/internal/model"
	"github.com/goaltrack/goaltrack/internal/repository"
)

var (
	ErrInvalidCredentials = errors.New("password is incorrect")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrUserNotFound       = errors.New("user with this email does not exist")
)

type AuthService struct {
	userRepository       repository.UserRepository
	resetTokenRepository repository.ResetTokenRepository
	revokedRepository    repository.RevokedTokenRepository
	emailService         *EmailService
	tokenIssuer          *auth.TokenIssuer
	appURL               string
	resetTokenExpiry     time.Duration
}

func NewAuthService(
	userRepository repository.UserRepository,
	resetTokenRepository repository.ResetTokenRepository,
	revokedRepository repository.RevokedTokenRepository,
	emailService *EmailService,
	tokenIssuer *auth.TokenIssuer,
	appURL string,
	resetTokenExpiry time.Duration,
) *AuthService {
	return &AuthService{
		userRepository:       userRepository,
		resetTokenRepository: resetTokenRepository,
		revokedRepository:    revokedRepository,
		emailService:         emailService,
		tokenIssuer:          tokenIssuer,
		appURL:               appURL,
		resetTokenExpiry:     resetTokenExpiry,
	}
}

// Signup creates a user from name/email/password and issues a bearer token
// for the fresh account.
func (s *AuthService) Signup(name, email, password string) (*model.User, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	hashedPassword, err := auth.HashPassword(password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := &model.User{
		ID:           uuid.New().String(),
		Name:         strings.TrimSpace(name),
		Email:        email,
		PasswordHash: hashedPassword,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = s.userRepository.Create(user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, "", fmt.Errorf("%s: %w", email, ErrEmailAlreadyExists)
		}
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.tokenIssuer.Issue(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	slog.Info("user signed up", "user_id", user.ID, "email", user.Email)
	return user, token, nil
}

// Login checks credentials and issues a bearer token. An unknown email and a
// wrong password are reported as distinct failures.
func (s *AuthService) Login(email, password string) (*model.User, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := s.userRepository.ByEmail(email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, "", ErrUserNotFound
		}
		return nil, "", fmt.Errorf("failed to get user: %w", err)
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokenIssuer.Issue(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	slog.Info("user logged in", "user_id", user.ID)
	return user, token, nil
}

// Authenticate verifies a bearer token, rejects revoked ones, and resolves
// the subject to a live user record.
func (s *AuthService) Authenticate(tokenString string) (*model.User, *auth.Claims, error) {
	claims, err := s.tokenIssuer.Verify(tokenString)
	if err != nil {
		return nil, nil, err
	}

	if claims.JTI != "" {
		revoked, err := s.revokedRepository.IsRevoked(claims.JTI)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to check revocation: %w", err)
		}
		if revoked {
			return nil, nil, auth.ErrInvalidToken
		}
	}

	user, err := s.userRepository.ByID(claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, nil, auth.ErrInvalidToken
		}
		return nil, nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, claims, nil
}

// Logout revokes the presented token by jti. Tokens without a jti (from
// before the denylist existed) cannot be revoked and simply age out.
func (s *AuthService) Logout(userID string, claims *auth.Claims) error {
	if claims == nil || claims.JTI == "" {
		return nil
	}

	err := s.revokedRepository.Revoke(&model.RevokedToken{
		JTI:       claims.JTI,
		UserID:    userID,
		ExpiresAt: claims.ExpiresAt,
	})
	if err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}

	slog.Info("user logged out", "user_id", userID)
	return nil
}

// ForgotPassword issues a reset token for the account and mails the reset
// link. The raw token value is embedded in the link and never stored; only
// its SHA-256 digest is persisted. Issuing a new token invalidates any
// previous one for the same user.
func (s *AuthService) ForgotPassword(email string) (string, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := s.userRepository.ByEmail(email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", ErrUserNotFound
		}
		return "", fmt.Errorf("failed to get user: %w", err)
	}

	err = s.resetTokenRepository.DeleteByUser(user.ID)
	if err != nil {
		return "", fmt.Errorf("failed to delete old reset tokens: %w", err)
	}

	rawToken, err := generateResetToken()
	if err != nil {
		return "", fmt.Errorf("failed to generate reset token: %w", err)
	}

	err = s.resetTokenRepository.Create(&model.ResetToken{
		UserID:      user.ID,
		TokenDigest: digestResetToken(rawToken),
		ExpiresAt:   time.Now().Add(s.resetTokenExpiry),
	})
	if err != nil {
		return "", fmt.Errorf("failed to create reset token: %w", err)
	}

	resetLink := fmt.Sprintf("%s/users/resetpassword/%s", s.appURL, rawToken)

	// The token is already persisted; a mail failure surfaces to the caller
	// but does not roll it back.
	err = s.emailService.SendResetPasswordEmail(user.Email, resetLink, user.Name)
	if err != nil {
		return "", fmt.Errorf("email could not be sent: %w", err)
	}

	slog.Info("reset link issued", "user_id", user.ID)
	return resetLink, nil
}

// ResetPassword consumes a reset token and sets the password supplied by
// the requester.
func (s *AuthService) ResetPassword(rawToken, newPassword string) error {
	token, err := s.resetTokenRepository.Consume(digestResetToken(rawToken))
	if err != nil {
		return err
	}

	user, err := s.userRepository.ByID(token.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return repository.ErrResetTokenNotFound
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	hashedPassword, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user.PasswordHash = hashedPassword
	user.UpdatedAt = time.Now()
	err = s.userRepository.Update(user)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	slog.Info("password reset", "user_id", user.ID)
	return nil
}

// UpdatePassword replaces the password after re-checking the old one against
// the freshly loaded record.
func (s *AuthService) UpdatePassword(userID, oldPassword, newPassword string) error {
	user, err := s.userRepository.ByID(userID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}

	if !auth.CheckPassword(oldPassword, user.PasswordHash) {
		return ErrInvalidCredentials
	}

	hashedPassword, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user.PasswordHash = hashedPassword
	user.UpdatedAt = time.Now()
	err = s.userRepository.Update(user)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	slog.Info("password updated", "user_id", user.ID)
	return nil
}

func generateResetToken() (string, error) {
	bytes := make([]byte, 32)
	_, err := rand.Read(bytes)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

func digestResetToken(rawToken string) string {
	sum := sha256.Sum256([]byte(rawToken))
	return hex.EncodeToString(sum[:])
}
