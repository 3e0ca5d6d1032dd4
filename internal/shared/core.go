package shared

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// GoogleUser is the payload the Google userinfo endpoint returns. The shape is
// copied as-is; missing fields in a malformed payload simply stay zero.
type GoogleUser struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture,omitempty"`
}

// AuthUser is the internal identity a request acts as: the user record fields
// that matter for authorization decisions.
type AuthUser struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	Name      string  `json:"name"`
	AvatarURL *string `json:"avatar_url,omitempty"`
	Role      string  `json:"role"`
}

// Claims is the session claim payload: identity plus a bounded validity
// window, prior to signing.
type Claims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// TokenResponse is returned to clients after a successful login.
type TokenResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// TokenService defines the interface for session token operations.
type TokenService interface {
	GenerateAccessToken(user AuthUser) (string, time.Time, error)
	ValidateToken(tokenString string) (*Claims, error)
}
