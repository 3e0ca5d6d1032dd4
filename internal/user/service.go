// File: internal/user/service.go
package user

import (
	"context"
	"strings"
	"time"

	"streamhub_backend/internal/common"
	"streamhub_backend/internal/config"
	"streamhub_backend/internal/shared"

	"go.uber.org/zap"
)

// Service defines the interface for user-related business logic. GetBy*
// translate absence into common.ErrNotFound for the HTTP layer; FindByID
// passes the data layer's nil-on-absence through for callers that branch on
// existence.
type Service interface {
	GetByID(ctx context.Context, id string) (*User, error)
	FindByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	CreateFromExternal(ctx context.Context, identity shared.AuthUser) (*User, error)
	TouchLastLogin(ctx context.Context, id string) error
	Update(ctx context.Context, id string, req UpdateUserRequest) (*User, error)
}

// ServiceImplementation implements Service.
type ServiceImplementation struct {
	repo   Repository
	cfg    *config.Config
	logger *zap.Logger
}

// NewService creates a new user service.
func NewService(repo Repository, cfg *config.Config, logger *zap.Logger) *ServiceImplementation {
	return &ServiceImplementation{
		repo:   repo,
		cfg:    cfg,
		logger: logger.Named("UserService"),
	}
}

func (s *ServiceImplementation) GetByID(ctx context.Context, id string) (*User, error) {
	usr, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if usr == nil {
		return nil, common.ErrNotFound.WithDetails("User not found with this ID.")
	}
	return usr, nil
}

func (s *ServiceImplementation) FindByID(ctx context.Context, id string) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *ServiceImplementation) GetByEmail(ctx context.Context, email string) (*User, error) {
	usr, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if usr == nil {
		return nil, common.ErrNotFound.WithDetails("User not found with this email.")
	}
	return usr, nil
}

// CreateFromExternal persists a first-login user from a mapped external
// identity, stamping last_login with the moment of creation.
func (s *ServiceImplementation) CreateFromExternal(ctx context.Context, identity shared.AuthUser) (*User, error) {
	now := time.Now().UTC()
	usr := &User{
		ID:        identity.ID,
		Email:     strings.ToLower(strings.TrimSpace(identity.Email)),
		Name:      identity.Name,
		AvatarURL: identity.AvatarURL,
		Role:      identity.Role,
		IsActive:  true,
		LastLogin: &now,
	}
	if usr.Role == "" {
		usr.Role = common.RoleMember
	}
	if _, err := s.repo.Create(ctx, usr); err != nil {
		return nil, err
	}
	s.logger.Info("Created user from external identity",
		zap.String("userID", usr.ID),
		zap.String("email", usr.Email))
	return usr, nil
}

func (s *ServiceImplementation) TouchLastLogin(ctx context.Context, id string) error {
	write, err := s.repo.UpdateLastLogin(ctx, id)
	if err != nil {
		return err
	}
	if write.RowsAffected == 0 {
		s.logger.Warn("last_login update matched no row", zap.String("userID", id))
	}
	return nil
}

func (s *ServiceImplementation) Update(ctx context.Context, id string, req UpdateUserRequest) (*User, error) {
	write, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}
	if write.RowsAffected == 0 {
		return nil, common.ErrNotFound.WithDetails("User not found with this ID.")
	}
	return s.GetByID(ctx, id)
}
