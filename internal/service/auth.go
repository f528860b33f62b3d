package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/aidar/rat-api/internal/domain"
)

// AuthService проверяет JWT токены и извлекает из них claim идентичности.
// Токены выпускает внешний провайдер с общим секретом
type AuthService struct {
	jwtSecret string
	jwtExpiry time.Duration
}

// NewAuthService creates a new AuthService
func NewAuthService(jwtSecret string, jwtExpiry time.Duration) *AuthService {
	return &AuthService{
		jwtSecret: jwtSecret,
		jwtExpiry: jwtExpiry,
	}
}

// IssueToken signs a token whose subject is the external user id.
// Used by tooling and tests that play the identity provider role
func (s *AuthService) IssueToken(externalUserID string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   externalUserID,
		ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtExpiry)),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// ValidateToken validates a JWT token and returns the identity claim (subject).
// An empty subject is not an error: the caller is then treated as unidentified
func (s *AuthService) ValidateToken(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		// Verify signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})

	if err != nil {
		return "", domain.ErrInvalidToken
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid {
		return "", domain.ErrInvalidToken
	}

	return strings.TrimSpace(claims.Subject), nil
}
