// File: internal/allowlist/service.go
package allowlist

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

// Service defines the interface for approved-email business logic.
type Service interface {
	IsApproved(ctx context.Context, email string) (bool, error)
	Add(ctx context.Context, req AddApprovedEmailRequest, approvedBy string) (*ApprovedEmail, error)
	List(ctx context.Context) ([]*ApprovedEmail, error)
}

// ServiceImplementation provides the implementation for the allow-list Service.
type ServiceImplementation struct {
	repo   Repository
	logger *zap.Logger
}

// NewService creates a new allow-list service instance.
func NewService(repo Repository, logger *zap.Logger) *ServiceImplementation {
	return &ServiceImplementation{
		repo:   repo,
		logger: logger.Named("AllowlistService"),
	}
}

// IsApproved reports whether the email address is on the allow list.
func (s *ServiceImplementation) IsApproved(ctx context.Context, email string) (bool, error) {
	entry, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return false, err
	}
	return entry != nil, nil
}

// Add approves a new email address, recording which admin approved it.
func (s *ServiceImplementation) Add(ctx context.Context, req AddApprovedEmailRequest, approvedBy string) (*ApprovedEmail, error) {
	entry := &ApprovedEmail{
		Email: strings.ToLower(strings.TrimSpace(req.Email)),
		Notes: req.Notes,
	}
	if approvedBy != "" {
		entry.ApprovedBy = &approvedBy
	}
	if _, err := s.repo.Create(ctx, entry); err != nil {
		return nil, err
	}
	s.logger.Info("Email approved", zap.String("email", entry.Email), zap.String("approvedBy", approvedBy))
	return entry, nil
}

func (s *ServiceImplementation) List(ctx context.Context) ([]*ApprovedEmail, error) {
	return s.repo.List(ctx)
}
