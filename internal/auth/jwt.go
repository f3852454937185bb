package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken covers every way a bearer token can fail verification:
// malformed, bad signature, or past its expiry. Callers only need to know
// the token proves nothing.
var ErrInvalidToken = errors.New("invalid token")

// Claims are the verified contents of a bearer token: the subject user ID,
// the token's own ID (for revocation), and its expiry.
type Claims struct {
	UserID    string
	JTI       string
	ExpiresAt time.Time
}

// TokenIssuer signs and verifies bearer tokens with a process-wide HMAC
// secret. It is stateless; the secret is set once at startup.
type TokenIssuer struct {
	secret []byte
	expiry time.Duration
}

func NewTokenIssuer(secret string, expiry time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), expiry: expiry}
}

// Issue signs a token asserting the given user identity until the
// configured expiry. Each token carries a fresh jti so it can be revoked
// individually.
func (i *TokenIssuer) Issue(userID string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"jti":     uuid.New().String(),
		"exp":     now.Add(i.expiry).Unix(),
		"iat":     now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(i.secret)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// Verify checks signature and expiry and returns the asserted claims.
// Any failure maps to ErrInvalidToken.
func (i *TokenIssuer) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return i.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	userID, ok := mapClaims["user_id"].(string)
	if !ok || userID == "" {
		return nil, ErrInvalidToken
	}

	jti, _ := mapClaims["jti"].(string)

	exp, err := mapClaims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil, ErrInvalidToken
	}

	return &Claims{
		UserID:    userID,
		JTI:       jti,
		ExpiresAt: exp.Time,
	}, nil
}
