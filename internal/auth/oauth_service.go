// File: internal/auth/oauth_service.go
package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"streamhub_backend/internal/allowlist"
	"streamhub_backend/internal/common"
	"streamhub_backend/internal/config"
	"streamhub_backend/internal/platform/crypto"
	"streamhub_backend/internal/shared"
	"streamhub_backend/internal/user"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

// OAuthService orchestrates the Google login flow: redirect URL generation,
// code exchange, userinfo fetch, allow-list gating, and session issuance.
type OAuthService struct {
	cfg          *config.Config
	userService  user.Service
	allowlistSvc allowlist.Service
	tokenService shared.TokenService
	httpClient   *http.Client
	logger       *zap.Logger
}

// NewOAuthService creates a new OAuthService.
func NewOAuthService(
	cfg *config.Config,
	userService user.Service,
	allowlistSvc allowlist.Service,
	tokenService shared.TokenService,
	logger *zap.Logger,
) *OAuthService {
	return &OAuthService{
		cfg:          cfg,
		userService:  userService,
		allowlistSvc: allowlistSvc,
		tokenService: tokenService,
		httpClient:   &http.Client{Timeout: 15 * time.Second},
		logger:       logger.Named("OAuthService"),
	}
}

// GetGoogleLoginURL returns the Google authorization URL together with the
// state value the caller must persist (in a cookie) for the callback check.
func (s *OAuthService) GetGoogleLoginURL() (url string, state string, err error) {
	state, err = crypto.RandomString(crypto.DefaultRandomStringLength)
	if err != nil {
		return "", "", fmt.Errorf("generating OAuth state: %w", err)
	}
	return AuthorizeURL(s.cfg, state), state, nil
}

// HandleGoogleCallback completes the login: it verifies the state, exchanges
// the authorization code, fetches the Google profile, and resolves it to a
// local user. Unknown emails must be on the allow list before an account is
// created; known users must still be active.
func (s *OAuthService) HandleGoogleCallback(ctx context.Context, code, state, expectedState string) (*CallbackResponse, error) {
	if expectedState == "" || state != expectedState {
		return nil, ErrOAuthStateMismatch
	}

	token, err := s.exchangeCode(ctx, code)
	if err != nil {
		return nil, err
	}

	googleUser, err := s.FetchUserInfo(ctx, token.AccessToken)
	if err != nil {
		return nil, err
	}

	identity := MapGoogleUser(*googleUser, common.RoleMember)
	if !ValidateEmail(identity.Email) {
		s.logger.Warn("Google profile carried an invalid email", zap.String("googleID", identity.ID))
		return nil, ErrUserInfoFailed.WithDetails("The identity provider returned an invalid email address.")
	}

	existing, err := s.userService.FindByID(ctx, identity.ID)
	if err != nil {
		return nil, err
	}

	var resolved *user.User
	isNew := false
	if existing == nil {
		approved, err := s.allowlistSvc.IsApproved(ctx, identity.Email)
		if err != nil {
			return nil, err
		}
		if !approved {
			s.logger.Info("Login rejected: email not approved", zap.String("email", identity.Email))
			return nil, ErrEmailNotApproved
		}
		resolved, err = s.userService.CreateFromExternal(ctx, identity)
		if err != nil {
			return nil, err
		}
		isNew = true
	} else {
		if !IsActiveUser(existing) {
			s.logger.Info("Login rejected: account disabled", zap.String("userID", existing.ID))
			return nil, ErrAccountDisabled
		}
		if err := s.userService.TouchLastLogin(ctx, existing.ID); err != nil {
			s.logger.Warn("Failed to stamp last_login", zap.Error(err), zap.String("userID", existing.ID))
		}
		resolved = existing
	}

	accessToken, expiresAt, err := s.tokenService.GenerateAccessToken(resolved.ToAuthUser())
	if err != nil {
		return nil, err
	}

	return &CallbackResponse{
		Token: shared.TokenResponse{
			AccessToken: accessToken,
			TokenType:   "Bearer",
			ExpiresAt:   expiresAt,
		},
		User:  user.ToUserResponse(resolved),
		IsNew: isNew,
	}, nil
}

// exchangeCode swaps the authorization code for provider tokens. Any failure
// from the provider surfaces as OAUTH_EXCHANGE_FAILED.
func (s *OAuthService) exchangeCode(ctx context.Context, code string) (*oauth2.Token, error) {
	oc := newOAuthConfig(s.cfg)
	ctx = context.WithValue(ctx, oauth2.HTTPClient, s.httpClient)
	token, err := oc.Exchange(ctx, code)
	if err != nil {
		s.logger.Error("OAuth code exchange failed", zap.Error(err))
		return nil, ErrOAuthExchangeFailed.WithDetails(err.Error())
	}
	return token, nil
}

// FetchUserInfo retrieves the Google profile for an access token.
func (s *OAuthService) FetchUserInfo(ctx context.Context, accessToken string) (*shared.GoogleUser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, GoogleUserInfoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building userinfo request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.logger.Error("Userinfo request failed", zap.Error(err))
		return nil, ErrUserInfoFailed.WithDetails(err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		s.logger.Error("Userinfo endpoint returned non-200",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", body))
		return nil, ErrUserInfoFailed.WithDetails(fmt.Sprintf("userinfo endpoint returned status %d", resp.StatusCode))
	}

	var googleUser shared.GoogleUser
	if err := json.NewDecoder(resp.Body).Decode(&googleUser); err != nil {
		return nil, ErrUserInfoFailed.WithDetails("failed to decode userinfo payload: " + err.Error())
	}
	if googleUser.ID == "" {
		return nil, ErrUserInfoFailed.WithDetails("userinfo payload is missing the subject ID")
	}
	return &googleUser, nil
}
