// File: internal/user/repository.go
package user

import (
	"context"
	"errors"
	"strings"
	"time"

	"streamhub_backend/internal/common"

	"gorm.io/gorm"
)

// Repository defines the interface for user data operations. Lookups return
// (nil, nil) when no row matches; absence is not an error.
type Repository interface {
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Create(ctx context.Context, user *User) (common.WriteResult, error)
	Update(ctx context.Context, id string, req UpdateUserRequest) (common.WriteResult, error)
	UpdateLastLogin(ctx context.Context, id string) (common.WriteResult, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a new GORM user repository.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

// GetByID retrieves a user by their ID, or nil when no such user exists.
func (r *gormRepository) GetByID(ctx context.Context, id string) (*User, error) {
	var userModel User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&userModel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &userModel, nil
}

// GetByEmail retrieves a user by their email address, or nil when absent.
func (r *gormRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	var userModel User
	normalizedEmail := strings.ToLower(strings.TrimSpace(email))
	err := r.db.WithContext(ctx).Where("email = ?", normalizedEmail).First(&userModel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &userModel, nil
}

// Create inserts a new user record into the database.
func (r *gormRepository) Create(ctx context.Context, user *User) (common.WriteResult, error) {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	start := time.Now()
	result := r.db.WithContext(ctx).Create(user)
	write := common.WriteResult{RowsAffected: result.RowsAffected, Duration: time.Since(start)}
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) ||
			strings.Contains(result.Error.Error(), "unique constraint") ||
			strings.Contains(result.Error.Error(), "UNIQUE constraint") {
			return write, common.ErrConflict.WithDetails("User with this ID or email already exists.")
		}
		return write, result.Error
	}
	return write, nil
}

// Update applies a partial update. The assignment list comes from exactly the
// fields the caller set; an empty change set is rejected before touching the
// store, and updated_at is always stamped.
func (r *gormRepository) Update(ctx context.Context, id string, req UpdateUserRequest) (common.WriteResult, error) {
	changes := req.Changes()
	if len(changes) == 0 {
		return common.WriteResult{}, common.ErrBadRequest.WithDetails("Update requires at least one field to be set.")
	}
	changes["updated_at"] = time.Now().UTC()

	start := time.Now()
	result := r.db.WithContext(ctx).Model(&User{}).Where("id = ?", id).Updates(changes)
	write := common.WriteResult{RowsAffected: result.RowsAffected, Duration: time.Since(start)}
	if result.Error != nil {
		return write, result.Error
	}
	return write, nil
}

// UpdateLastLogin stamps the last_login column with the current time.
func (r *gormRepository) UpdateLastLogin(ctx context.Context, id string) (common.WriteResult, error) {
	start := time.Now()
	result := r.db.WithContext(ctx).Model(&User{}).Where("id = ?", id).
		Update("last_login", time.Now().UTC())
	write := common.WriteResult{RowsAffected: result.RowsAffected, Duration: time.Since(start)}
	if result.Error != nil {
		return write, result.Error
	}
	return write, nil
}
