// File: internal/auth/helper.go
package auth

import (
	"regexp"
	"time"

	"streamhub_backend/internal/common"
	"streamhub_backend/internal/config"
	"streamhub_backend/internal/shared"
	"streamhub_backend/internal/user"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"
)

// Google endpoint URLs. Package variables so tests can point them at a local
// HTTP server.
var (
	googleAuthURL  = "https://accounts.google.com/o/oauth2/v2/auth"
	googleTokenURL = "https://oauth2.googleapis.com/token"

	// GoogleUserInfoURL is where the userinfo profile is fetched after a
	// successful token exchange.
	GoogleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"
)

// googleScopes requested during the authorization redirect.
var googleScopes = []string{"openid", "email", "profile"}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateEmail reports whether the string looks like an email address:
// non-empty local part, an @, and a domain containing a dot, with no
// whitespace anywhere.
func ValidateEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// MapGoogleUser converts a Google userinfo payload into the internal identity
// shape, stamped with the given role. The payload is copied as-is; the avatar
// is carried only when Google supplied one. An empty role defaults to member.
func MapGoogleUser(g shared.GoogleUser, role string) shared.AuthUser {
	if role == "" {
		role = common.RoleMember
	}
	authUser := shared.AuthUser{
		ID:    g.ID,
		Email: g.Email,
		Name:  g.Name,
		Role:  role,
	}
	if g.Picture != "" {
		picture := g.Picture
		authUser.AvatarURL = &picture
	}
	return authUser
}

// NewSessionClaims builds the claim set for a session token issued at `now`.
// The validity window is [now, now+ttl]; a non-positive ttl falls back to the
// default session length.
func NewSessionClaims(u shared.AuthUser, now time.Time, ttl time.Duration) shared.Claims {
	if ttl <= 0 {
		ttl = config.DefaultSessionTTL
	}
	return shared.Claims{
		Email: u.Email,
		Name:  u.Name,
		Role:  u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
}

// IsAdmin reports whether the identity carries the admin role.
func IsAdmin(u shared.AuthUser) bool {
	return u.Role == common.RoleAdmin
}

// IsActiveUser reports whether a stored user record may log in. A nil record
// is never active.
func IsActiveUser(u *user.User) bool {
	return u != nil && u.IsActive
}

// newOAuthConfig builds the oauth2 client configuration from app settings.
func newOAuthConfig(cfg *config.Config) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		RedirectURL:  cfg.GoogleRedirectURI,
		Scopes:       googleScopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:  googleAuthURL,
			TokenURL: googleTokenURL,
		},
	}
}

// AuthorizeURL builds the Google authorization redirect URL. The state
// parameter is included only when non-empty.
func AuthorizeURL(cfg *config.Config, state string) string {
	oc := newOAuthConfig(cfg)
	return oc.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
	)
}
