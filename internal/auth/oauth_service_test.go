// File: internal/auth/oauth_service_test.go
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"streamhub_backend/internal/allowlist"
	"streamhub_backend/internal/common"
	"streamhub_backend/internal/config"
	"streamhub_backend/internal/shared"
	"streamhub_backend/internal/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeUserService is an in-memory user.Service for OAuth flow tests.
type fakeUserService struct {
	users       map[string]*user.User
	createdWith []shared.AuthUser
	touched     []string
}

func newFakeUserService() *fakeUserService {
	return &fakeUserService{users: make(map[string]*user.User)}
}

func (f *fakeUserService) GetByID(ctx context.Context, id string) (*user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserService) FindByID(ctx context.Context, id string) (*user.User, error) {
	return f.users[id], nil
}

func (f *fakeUserService) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, common.ErrNotFound
}

func (f *fakeUserService) CreateFromExternal(ctx context.Context, identity shared.AuthUser) (*user.User, error) {
	f.createdWith = append(f.createdWith, identity)
	now := time.Now().UTC()
	u := &user.User{
		ID:        identity.ID,
		Email:     identity.Email,
		Name:      identity.Name,
		AvatarURL: identity.AvatarURL,
		Role:      identity.Role,
		IsActive:  true,
		LastLogin: &now,
	}
	f.users[u.ID] = u
	return u, nil
}

func (f *fakeUserService) TouchLastLogin(ctx context.Context, id string) error {
	f.touched = append(f.touched, id)
	return nil
}

func (f *fakeUserService) Update(ctx context.Context, id string, req user.UpdateUserRequest) (*user.User, error) {
	return nil, errors.New("not implemented")
}

// fakeAllowlistService answers approval checks from a fixed set.
type fakeAllowlistService struct {
	approved map[string]bool
}

func (f *fakeAllowlistService) IsApproved(ctx context.Context, email string) (bool, error) {
	return f.approved[email], nil
}

func (f *fakeAllowlistService) Add(ctx context.Context, req allowlist.AddApprovedEmailRequest, approvedBy string) (*allowlist.ApprovedEmail, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeAllowlistService) List(ctx context.Context) ([]*allowlist.ApprovedEmail, error) {
	return nil, errors.New("not implemented")
}

type oauthTestEnv struct {
	svc       *OAuthService
	users     *fakeUserService
	allowlist *fakeAllowlistService
}

// setupOAuthTest points the Google endpoints at a local server serving the
// given handlers and restores them afterwards.
func setupOAuthTest(t *testing.T, tokenHandler, userinfoHandler http.HandlerFunc) *oauthTestEnv {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/token", tokenHandler)
	mux.HandleFunc("/userinfo", userinfoHandler)
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)

	origToken, origUserInfo := googleTokenURL, GoogleUserInfoURL
	googleTokenURL = ts.URL + "/token"
	GoogleUserInfoURL = ts.URL + "/userinfo"
	t.Cleanup(func() {
		googleTokenURL = origToken
		GoogleUserInfoURL = origUserInfo
	})

	cfg := &config.Config{
		GoogleClientID:     "client-id",
		GoogleClientSecret: "client-secret",
		GoogleRedirectURI:  "https://app.example.com/callback",
		JWTSecretKey:       "test-secret",
		SessionTTL:         time.Hour,
	}
	users := newFakeUserService()
	allowlistSvc := &fakeAllowlistService{approved: map[string]bool{}}
	tokenService := NewJWTService(cfg, zap.NewNop())

	return &oauthTestEnv{
		svc:       NewOAuthService(cfg, users, allowlistSvc, tokenService, zap.NewNop()),
		users:     users,
		allowlist: allowlistSvc,
	}
}

func serveToken(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprint(w, `{"access_token":"provider-token","token_type":"Bearer","expires_in":3600}`)
}

func serveUserInfo(googleID, email, name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer provider-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"id":%q,"email":%q,"name":%q,"picture":"https://example.com/p.png"}`, googleID, email, name)
	}
}

func TestHandleGoogleCallback_CreatesApprovedNewUser(t *testing.T) {
	env := setupOAuthTest(t, serveToken, serveUserInfo("g-1", "new@example.com", "New User"))
	env.allowlist.approved["new@example.com"] = true

	result, err := env.svc.HandleGoogleCallback(context.Background(), "auth-code", "st", "st")
	require.NoError(t, err)

	assert.True(t, result.IsNew)
	assert.Equal(t, "g-1", result.User.ID)
	assert.Equal(t, "new@example.com", result.User.Email)
	assert.Equal(t, common.RoleMember, result.User.Role)
	assert.NotEmpty(t, result.Token.AccessToken)
	assert.Equal(t, "Bearer", result.Token.TokenType)
	require.Len(t, env.users.createdWith, 1)
	require.NotNil(t, env.users.createdWith[0].AvatarURL)
}

func TestHandleGoogleCallback_RejectsUnapprovedNewUser(t *testing.T) {
	env := setupOAuthTest(t, serveToken, serveUserInfo("g-2", "stranger@example.com", "Stranger"))

	_, err := env.svc.HandleGoogleCallback(context.Background(), "auth-code", "st", "st")
	require.Error(t, err)

	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, "EMAIL_NOT_APPROVED", apiErr.Code)
	assert.Empty(t, env.users.createdWith)
}

func TestHandleGoogleCallback_ExistingUserSkipsAllowlist(t *testing.T) {
	env := setupOAuthTest(t, serveToken, serveUserInfo("g-3", "member@example.com", "Member"))
	env.users.users["g-3"] = &user.User{
		ID: "g-3", Email: "member@example.com", Name: "Member",
		Role: common.RoleMember, IsActive: true,
	}

	result, err := env.svc.HandleGoogleCallback(context.Background(), "auth-code", "st", "st")
	require.NoError(t, err)

	assert.False(t, result.IsNew)
	assert.Equal(t, []string{"g-3"}, env.users.touched)
	assert.Empty(t, env.users.createdWith)
}

func TestHandleGoogleCallback_RejectsDisabledUser(t *testing.T) {
	env := setupOAuthTest(t, serveToken, serveUserInfo("g-4", "off@example.com", "Off"))
	env.users.users["g-4"] = &user.User{ID: "g-4", Email: "off@example.com", IsActive: false}

	_, err := env.svc.HandleGoogleCallback(context.Background(), "auth-code", "st", "st")
	require.Error(t, err)

	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, "ACCOUNT_DISABLED", apiErr.Code)
}

func TestHandleGoogleCallback_StateMismatch(t *testing.T) {
	env := setupOAuthTest(t, serveToken, serveUserInfo("g-5", "a@b.co", "A"))

	cases := []struct{ state, expected string }{
		{"abc", "xyz"},
		{"abc", ""},
		{"", ""},
	}
	for _, tc := range cases {
		_, err := env.svc.HandleGoogleCallback(context.Background(), "auth-code", tc.state, tc.expected)
		require.Error(t, err)
		apiErr, ok := common.IsAPIError(err)
		require.True(t, ok)
		assert.Equal(t, "OAUTH_STATE_MISMATCH", apiErr.Code)
	}
}

func TestHandleGoogleCallback_ExchangeFailure(t *testing.T) {
	env := setupOAuthTest(t,
		func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprint(w, `{"error":"invalid_grant"}`)
		},
		serveUserInfo("g-6", "a@b.co", "A"),
	)

	_, err := env.svc.HandleGoogleCallback(context.Background(), "bad-code", "st", "st")
	require.Error(t, err)

	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, "OAUTH_EXCHANGE_FAILED", apiErr.Code)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
}

func TestHandleGoogleCallback_UserInfoFailure(t *testing.T) {
	env := setupOAuthTest(t, serveToken,
		func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		},
	)

	_, err := env.svc.HandleGoogleCallback(context.Background(), "auth-code", "st", "st")
	require.Error(t, err)

	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, "USER_INFO_FAILED", apiErr.Code)
}

func TestHandleGoogleCallback_InvalidProviderEmail(t *testing.T) {
	env := setupOAuthTest(t, serveToken, serveUserInfo("g-7", "not-an-email", "Bad"))

	_, err := env.svc.HandleGoogleCallback(context.Background(), "auth-code", "st", "st")
	require.Error(t, err)

	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, "USER_INFO_FAILED", apiErr.Code)
}

func TestGetGoogleLoginURL_StateIsRandomAndEmbedded(t *testing.T) {
	env := setupOAuthTest(t, serveToken, serveUserInfo("g-8", "a@b.co", "A"))

	url1, state1, err := env.svc.GetGoogleLoginURL()
	require.NoError(t, err)
	_, state2, err := env.svc.GetGoogleLoginURL()
	require.NoError(t, err)

	assert.Len(t, state1, 32)
	assert.NotEqual(t, state1, state2)
	assert.True(t, strings.Contains(url1, "state="+state1))
}
