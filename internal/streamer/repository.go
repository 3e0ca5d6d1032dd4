// File: internal/streamer/repository.go
package streamer

import (
	"context"
	"errors"
	"strings"
	"time"

	"streamhub_backend/internal/common"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository defines the interface for streamer data operations. Lookups
// return (nil, nil) when no row matches.
type Repository interface {
	ListWithUsers(ctx context.Context) ([]*ProfileWithUser, error)
	GetByID(ctx context.Context, id uint) (*Profile, error)
	GetByUserID(ctx context.Context, userID string) (*Profile, error)
	Create(ctx context.Context, profile *Profile) (common.WriteResult, error)
	Update(ctx context.Context, id uint, req UpdateProfileRequest) (common.WriteResult, error)
	GetStatus(ctx context.Context, streamerID uint) (*Status, error)
	UpsertStatus(ctx context.Context, streamerID uint, req UpdateStreamStatusRequest) (common.WriteResult, error)
	SweepStaleStatuses(ctx context.Context, cutoff time.Time) (common.WriteResult, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a new GORM streamer repository.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

// ListWithUsers returns every profile belonging to an active user, newest
// first, with the owner's name and email joined in.
func (r *gormRepository) ListWithUsers(ctx context.Context) ([]*ProfileWithUser, error) {
	rows := make([]*ProfileWithUser, 0)
	err := r.db.WithContext(ctx).
		Table("streamer_profiles").
		Select("streamer_profiles.*, users.name AS user_name, users.email AS user_email").
		Joins("JOIN users ON users.id = streamer_profiles.user_id").
		Where("users.is_active = ?", true).
		Order("streamer_profiles.created_at DESC, streamer_profiles.id DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *gormRepository) GetByID(ctx context.Context, id uint) (*Profile, error) {
	var profile Profile
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *gormRepository) GetByUserID(ctx context.Context, userID string) (*Profile, error) {
	var profile Profile
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

// Create inserts a new streamer profile. The unique index on user_id enforces
// one profile per user.
func (r *gormRepository) Create(ctx context.Context, profile *Profile) (common.WriteResult, error) {
	start := time.Now()
	result := r.db.WithContext(ctx).Create(profile)
	write := common.WriteResult{RowsAffected: result.RowsAffected, Duration: time.Since(start)}
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) ||
			strings.Contains(result.Error.Error(), "unique constraint") ||
			strings.Contains(result.Error.Error(), "UNIQUE constraint") {
			return write, common.ErrConflict.WithDetails("A streamer profile already exists for this user.")
		}
		return write, result.Error
	}
	return write, nil
}

// Update applies a partial update to a profile. An empty change set is
// rejected before touching the store.
func (r *gormRepository) Update(ctx context.Context, id uint, req UpdateProfileRequest) (common.WriteResult, error) {
	changes := req.Changes()
	if len(changes) == 0 {
		return common.WriteResult{}, common.ErrBadRequest.WithDetails("Update requires at least one field to be set.")
	}
	changes["updated_at"] = time.Now().UTC()

	start := time.Now()
	result := r.db.WithContext(ctx).Model(&Profile{}).Where("id = ?", id).Updates(changes)
	write := common.WriteResult{RowsAffected: result.RowsAffected, Duration: time.Since(start)}
	if result.Error != nil {
		return write, result.Error
	}
	return write, nil
}

// GetStatus retrieves the live status row for a streamer, or nil when the
// streamer has never reported one.
func (r *gormRepository) GetStatus(ctx context.Context, streamerID uint) (*Status, error) {
	var status Status
	err := r.db.WithContext(ctx).Where("streamer_id = ?", streamerID).First(&status).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &status, nil
}

// UpsertStatus writes a streamer's status as a single INSERT ... ON CONFLICT
// statement keyed on streamer_id. A fresh row starts from defaults plus the
// supplied fields; an existing row gets exactly the supplied fields. Either
// path stamps last_updated, so concurrent first-writes settle on one row.
func (r *gormRepository) UpsertStatus(ctx context.Context, streamerID uint, req UpdateStreamStatusRequest) (common.WriteResult, error) {
	now := time.Now().UTC()
	row := Status{
		StreamerID:  streamerID,
		LastUpdated: now,
	}
	if req.IsLive != nil {
		row.IsLive = *req.IsLive
	}
	if req.Platform != nil {
		row.Platform = req.Platform
	}
	if req.Title != nil {
		row.Title = req.Title
	}
	if req.ViewerCount != nil {
		row.ViewerCount = req.ViewerCount
	}
	if req.StreamURL != nil {
		row.StreamURL = req.StreamURL
	}

	assignments := req.Changes()
	assignments["last_updated"] = now

	start := time.Now()
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "streamer_id"}},
		DoUpdates: clause.Assignments(assignments),
	}).Create(&row)
	write := common.WriteResult{RowsAffected: result.RowsAffected, Duration: time.Since(start)}
	if result.Error != nil {
		return write, result.Error
	}
	return write, nil
}

// SweepStaleStatuses flips is_live off for rows that have not been refreshed
// since the cutoff.
func (r *gormRepository) SweepStaleStatuses(ctx context.Context, cutoff time.Time) (common.WriteResult, error) {
	start := time.Now()
	result := r.db.WithContext(ctx).Model(&Status{}).
		Where("is_live = ? AND last_updated < ?", true, cutoff).
		Update("is_live", false)
	write := common.WriteResult{RowsAffected: result.RowsAffected, Duration: time.Since(start)}
	if result.Error != nil {
		return write, result.Error
	}
	return write, nil
}
