// File: internal/auth/model.go
package auth

import (
	"net/http"

	"streamhub_backend/internal/common"
	"streamhub_backend/internal/shared"
	"streamhub_backend/internal/user"
)

// OAuth-specific API errors.
var (
	ErrOAuthExchangeFailed = common.NewAPIError(http.StatusBadGateway, "OAUTH_EXCHANGE_FAILED", "Failed to exchange the authorization code with the identity provider.")
	ErrUserInfoFailed      = common.NewAPIError(http.StatusBadGateway, "USER_INFO_FAILED", "Failed to fetch user information from the identity provider.")
	ErrEmailNotApproved    = common.NewAPIError(http.StatusForbidden, "EMAIL_NOT_APPROVED", "This email address has not been approved for registration.")
	ErrOAuthStateMismatch  = common.NewAPIError(http.StatusBadRequest, "OAUTH_STATE_MISMATCH", "The OAuth state parameter is missing or does not match.")
	ErrAccountDisabled     = common.NewAPIError(http.StatusForbidden, "ACCOUNT_DISABLED", "This account has been deactivated.")
)

// CallbackResponse is the payload returned after a successful OAuth callback.
type CallbackResponse struct {
	Token shared.TokenResponse `json:"token"`
	User  user.UserResponse    `json:"user"`
	IsNew bool                 `json:"is_new"`
}

// LoginURLResponse carries the provider authorization URL for the client to
// redirect to.
type LoginURLResponse struct {
	URL string `json:"url"`
}
