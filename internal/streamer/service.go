// File: internal/streamer/service.go
package streamer

import (
	"context"
	"time"

	"streamhub_backend/internal/common"

	"go.uber.org/zap"
)

// Service defines the interface for streamer business logic.
type Service interface {
	List(ctx context.Context) ([]*ProfileWithUser, error)
	GetByID(ctx context.Context, id uint) (*Profile, error)
	GetByUserID(ctx context.Context, userID string) (*Profile, error)
	Create(ctx context.Context, userID string, req CreateProfileRequest) (*Profile, error)
	Update(ctx context.Context, id uint, req UpdateProfileRequest) (*Profile, error)
	GetStatus(ctx context.Context, streamerID uint) (*Status, error)
	UpsertStatus(ctx context.Context, streamerID uint, req UpdateStreamStatusRequest) (*Status, error)
	SweepStaleStatuses(ctx context.Context, staleAfter time.Duration) (int64, error)
}

// ServiceImplementation provides the implementation for the streamer Service.
type ServiceImplementation struct {
	repo   Repository
	logger *zap.Logger
}

// NewService creates a new streamer service instance.
func NewService(repo Repository, logger *zap.Logger) *ServiceImplementation {
	return &ServiceImplementation{
		repo:   repo,
		logger: logger.Named("StreamerService"),
	}
}

func (s *ServiceImplementation) List(ctx context.Context) ([]*ProfileWithUser, error) {
	return s.repo.ListWithUsers(ctx)
}

// GetByID returns a profile or ErrNotFound.
func (s *ServiceImplementation) GetByID(ctx context.Context, id uint) (*Profile, error) {
	profile, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, common.ErrNotFound.WithDetails("Streamer profile not found with this ID.")
	}
	return profile, nil
}

// GetByUserID returns a user's profile, or (nil, nil) when they have none.
func (s *ServiceImplementation) GetByUserID(ctx context.Context, userID string) (*Profile, error) {
	return s.repo.GetByUserID(ctx, userID)
}

// Create makes a new profile for the given user. Each user may hold at most
// one profile.
func (s *ServiceImplementation) Create(ctx context.Context, userID string, req CreateProfileRequest) (*Profile, error) {
	existing, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, common.ErrConflict.WithDetails("A streamer profile already exists for this user.")
	}

	profile := &Profile{
		UserID:         userID,
		DisplayName:    req.DisplayName,
		Description:    req.Description,
		AvatarURL:      req.AvatarURL,
		TwitterHandle:  req.TwitterHandle,
		YoutubeChannel: req.YoutubeChannel,
		TwitchChannel:  req.TwitchChannel,
		JoinPhase:      common.JoinPhase01,
	}
	if req.JoinPhase != nil {
		profile.JoinPhase = *req.JoinPhase
	}

	if _, err := s.repo.Create(ctx, profile); err != nil {
		return nil, err
	}
	s.logger.Info("Streamer profile created",
		zap.Uint("profileID", profile.ID),
		zap.String("userID", userID))
	return profile, nil
}

func (s *ServiceImplementation) Update(ctx context.Context, id uint, req UpdateProfileRequest) (*Profile, error) {
	write, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}
	if write.RowsAffected == 0 {
		return nil, common.ErrNotFound.WithDetails("Streamer profile not found with this ID.")
	}
	return s.GetByID(ctx, id)
}

// GetStatus returns the stored status, or a default offline status when the
// streamer has never reported one.
func (s *ServiceImplementation) GetStatus(ctx context.Context, streamerID uint) (*Status, error) {
	if _, err := s.GetByID(ctx, streamerID); err != nil {
		return nil, err
	}
	status, err := s.repo.GetStatus(ctx, streamerID)
	if err != nil {
		return nil, err
	}
	if status == nil {
		return &Status{StreamerID: streamerID, IsLive: false}, nil
	}
	return status, nil
}

// UpsertStatus writes the streamer's status and returns the stored row.
// Callers must have verified that the streamer profile exists.
func (s *ServiceImplementation) UpsertStatus(ctx context.Context, streamerID uint, req UpdateStreamStatusRequest) (*Status, error) {
	if _, err := s.repo.UpsertStatus(ctx, streamerID, req); err != nil {
		return nil, err
	}
	return s.repo.GetStatus(ctx, streamerID)
}

// SweepStaleStatuses flips is_live off for statuses older than staleAfter and
// returns how many rows it touched.
func (s *ServiceImplementation) SweepStaleStatuses(ctx context.Context, staleAfter time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-staleAfter)
	write, err := s.repo.SweepStaleStatuses(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	if write.RowsAffected > 0 {
		s.logger.Info("Marked stale streams offline",
			zap.Int64("count", write.RowsAffected),
			zap.Time("cutoff", cutoff))
	}
	return write.RowsAffected, nil
}
