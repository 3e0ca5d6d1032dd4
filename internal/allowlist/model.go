// File: internal/allowlist/model.go
package allowlist

import (
	"time"
)

// ApprovedEmail represents an email address that is allowed to register.
type ApprovedEmail struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Email      string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	ApprovedBy *string   `gorm:"type:varchar(64)" json:"approved_by,omitempty"`
	Notes      *string   `gorm:"type:text" json:"notes,omitempty"`
	ApprovedAt time.Time `gorm:"not null;autoCreateTime" json:"approved_at"`
}

// TableName specifies the table name for the ApprovedEmail model.
func (ApprovedEmail) TableName() string {
	return "approved_emails"
}

// AddApprovedEmailRequest is the payload for approving a new email address.
type AddApprovedEmailRequest struct {
	Email string  `json:"email" binding:"required,email,max=255"`
	Notes *string `json:"notes,omitempty" binding:"omitempty,max=1000"`
}
