package auth

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

// Claims represents the session token claims
type Claims struct {
	UserID     uint   `json:"user_id"`
	Username   string `json:"username"`
	Name       string `json:"name"`
	Role       string `json:"role"`
	AuthSource string `json:"auth_source"`
	jwt.RegisteredClaims
}

// getJWTSecret returns the JWT secret from environment or a default for development
func getJWTSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		// Default for development only - should be set in production
		secret = "riskledger-dev-secret-change-in-production"
	}
	return []byte(secret)
}

// SessionTTL returns the session token validity duration, from
// RISKLEDGER_SESSION_TTL (Go duration syntax) or 24h by default.
func SessionTTL() time.Duration {
	if raw := os.Getenv("RISKLEDGER_SESSION_TTL"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			return d
		}
	}
	return 24 * time.Hour
}

// GenerateToken creates a new session token for a user
func GenerateToken(userID uint, username, name, role, authSource string) (string, error) {
	claims := &Claims{
		UserID:     userID,
		Username:   username,
		Name:       name,
		Role:       role,
		AuthSource: authSource,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(SessionTTL())),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "riskledger",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(getJWTSecret())
}

// ValidateToken validates a session token and returns the claims
func ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return getJWTSecret(), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
