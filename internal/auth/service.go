// File: internal/auth/service.go
package auth

import (
	"errors"
	"fmt"
	"time"

	"streamhub_backend/internal/config"
	"streamhub_backend/internal/shared"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// JWTService implements shared.TokenService using HMAC-signed JWTs. The
// signing secret is injected through the constructor; nothing here reads
// global state.
type JWTService struct {
	secretKey  []byte
	sessionTTL time.Duration
	logger     *zap.Logger
}

// NewJWTService creates a new JWTService.
func NewJWTService(cfg *config.Config, logger *zap.Logger) *JWTService {
	ttl := cfg.SessionTTL
	if ttl <= 0 {
		ttl = config.DefaultSessionTTL
	}
	return &JWTService{
		secretKey:  []byte(cfg.JWTSecretKey),
		sessionTTL: ttl,
		logger:     logger.Named("JWTService"),
	}
}

// GenerateAccessToken creates a signed session token for the given identity
// and returns it with its expiry time.
func (s *JWTService) GenerateAccessToken(u shared.AuthUser) (string, time.Time, error) {
	now := time.Now().UTC()
	claims := NewSessionClaims(u, now, s.sessionTTL)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secretKey)
	if err != nil {
		s.logger.Error("Failed to sign session token", zap.Error(err), zap.String("userID", u.ID))
		return "", time.Time{}, fmt.Errorf("signing session token: %w", err)
	}
	return signed, claims.ExpiresAt.Time, nil
}

// ValidateToken parses and validates a session token, returning its claims.
func (s *JWTService) ValidateToken(tokenString string) (*shared.Claims, error) {
	claims := &shared.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, errors.New("token has expired")
		}
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
