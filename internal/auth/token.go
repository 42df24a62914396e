package auth

import (
	"errors"
	"time"

	"yuanfen_backend/internal/config"

	"github.com/golang-jwt/jwt/v5"
)

// Authentication is an external concern: this package only resolves a bearer
// credential to a userID (and mints tokens for tooling and tests). There is no
// registration or login flow in this service.

var ErrInvalidToken = errors.New("invalid or expired token")

// RoleScheduler marks machine credentials minted for the external expiry
// scheduler. Ordinary user tokens carry no role.
const RoleScheduler = "scheduler"

type Claims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// GenerateToken mints a signed token for the given user.
func GenerateToken(userID string) (string, error) {
	return GenerateTokenWithRole(userID, "")
}

// GenerateTokenWithRole mints a token carrying a service role, for
// machine-to-machine callers like the expiry scheduler.
func GenerateTokenWithRole(userID, role string) (string, error) {
	cfg := config.GetConfig()

	ttl := time.Duration(cfg.JWT.TTL) * time.Minute
	claims := &Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWT.Secret))
}

// ParseToken validates a bearer token and returns its claims.
func ParseToken(tokenStr string) (*Claims, error) {
	cfg := config.GetConfig()

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(cfg.JWT.Secret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.UserID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
