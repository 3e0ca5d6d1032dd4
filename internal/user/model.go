// File: internal/user/model.go
package user

import (
	"time"

	"streamhub_backend/internal/shared"
)

// User represents the user model in the database. The primary key is the
// Google subject identifier, assigned at first login.
type User struct {
	ID        string     `gorm:"type:varchar(64);primaryKey" json:"id"`
	Email     string     `gorm:"type:varchar(255);not null;uniqueIndex" json:"email"`
	Name      string     `gorm:"type:varchar(255);not null" json:"name"`
	AvatarURL *string    `gorm:"type:text" json:"avatar_url,omitempty"`
	Role      string     `gorm:"type:varchar(20);not null;default:'member'" json:"role"`
	IsActive  bool       `gorm:"not null" json:"is_active"`
	CreatedAt time.Time  `gorm:"not null;default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time  `gorm:"not null;default:current_timestamp" json:"updated_at"`
	LastLogin *time.Time `gorm:"column:last_login" json:"last_login,omitempty"`
}

// TableName specifies the table name for the User model.
func (User) TableName() string {
	return "users"
}

// ToAuthUser projects the record onto the identity a request acts as.
func (u *User) ToAuthUser() shared.AuthUser {
	return shared.AuthUser{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		AvatarURL: u.AvatarURL,
		Role:      u.Role,
	}
}

// --- DTOs for API requests/responses ---

// UpdateUserRequest lists the columns a partial user update may touch. Every
// field is optional; an update with no fields set is rejected.
type UpdateUserRequest struct {
	Name      *string `json:"name,omitempty" binding:"omitempty,min=1,max=255"`
	AvatarURL *string `json:"avatar_url,omitempty" binding:"omitempty,max=2048"`
	Role      *string `json:"role,omitempty" binding:"omitempty,oneof=member admin"`
	IsActive  *bool   `json:"is_active,omitempty"`
}

// Changes returns exactly the column assignments the caller set.
func (r UpdateUserRequest) Changes() map[string]interface{} {
	changes := make(map[string]interface{})
	if r.Name != nil {
		changes["name"] = *r.Name
	}
	if r.AvatarURL != nil {
		changes["avatar_url"] = *r.AvatarURL
	}
	if r.Role != nil {
		changes["role"] = *r.Role
	}
	if r.IsActive != nil {
		changes["is_active"] = *r.IsActive
	}
	return changes
}

// UserResponse defines the structure for user data sent in API responses.
type UserResponse struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	Name      string     `json:"name"`
	AvatarURL *string    `json:"avatar_url,omitempty"`
	Role      string     `json:"role"`
	IsActive  bool       `json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	LastLogin *time.Time `json:"last_login,omitempty"`
}

// ToUserResponse converts a User model to a UserResponse DTO.
func ToUserResponse(u *User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		AvatarURL: u.AvatarURL,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
		LastLogin: u.LastLogin,
	}
}
