// File: internal/allowlist/repository.go
package allowlist

import (
	"context"
	"errors"
	"strings"
	"time"

	"streamhub_backend/internal/common"

	"gorm.io/gorm"
)

// Repository defines the interface for approved-email data operations.
type Repository interface {
	GetByEmail(ctx context.Context, email string) (*ApprovedEmail, error)
	Create(ctx context.Context, entry *ApprovedEmail) (common.WriteResult, error)
	List(ctx context.Context) ([]*ApprovedEmail, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a new GORM approved-email repository.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

// GetByEmail retrieves an approved-email entry, or nil when the address has
// not been approved.
func (r *gormRepository) GetByEmail(ctx context.Context, email string) (*ApprovedEmail, error) {
	var entry ApprovedEmail
	normalizedEmail := strings.ToLower(strings.TrimSpace(email))
	err := r.db.WithContext(ctx).Where("email = ?", normalizedEmail).First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

// Create inserts a new approved-email entry.
func (r *gormRepository) Create(ctx context.Context, entry *ApprovedEmail) (common.WriteResult, error) {
	entry.Email = strings.ToLower(strings.TrimSpace(entry.Email))
	start := time.Now()
	result := r.db.WithContext(ctx).Create(entry)
	write := common.WriteResult{RowsAffected: result.RowsAffected, Duration: time.Since(start)}
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) ||
			strings.Contains(result.Error.Error(), "unique constraint") ||
			strings.Contains(result.Error.Error(), "UNIQUE constraint") {
			return write, common.ErrConflict.WithDetails("This email is already approved.")
		}
		return write, result.Error
	}
	return write, nil
}

// List returns all approved emails, most recently approved first. An empty
// table yields an empty slice, never nil.
func (r *gormRepository) List(ctx context.Context) ([]*ApprovedEmail, error) {
	entries := make([]*ApprovedEmail, 0)
	err := r.db.WithContext(ctx).Order("approved_at DESC, id DESC").Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
