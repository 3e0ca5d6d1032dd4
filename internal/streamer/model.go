// File: internal/streamer/model.go
package streamer

import (
	"time"
)

// Profile represents a streamer's public profile.
type Profile struct {
	ID             uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID         string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"user_id"`
	DisplayName    string    `gorm:"type:varchar(100);not null" json:"display_name"`
	Description    *string   `gorm:"type:text" json:"description,omitempty"`
	AvatarURL      *string   `gorm:"type:varchar(2048)" json:"avatar_url,omitempty"`
	TwitterHandle  *string   `gorm:"type:varchar(100)" json:"twitter_handle,omitempty"`
	YoutubeChannel *string   `gorm:"type:varchar(255)" json:"youtube_channel,omitempty"`
	TwitchChannel  *string   `gorm:"type:varchar(255)" json:"twitch_channel,omitempty"`
	JoinPhase      string    `gorm:"type:varchar(10);not null;default:'phase01'" json:"join_phase"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// TableName specifies the table name for the Profile model.
func (Profile) TableName() string {
	return "streamer_profiles"
}

// ProfileWithUser is a profile list row joined with its owning user.
type ProfileWithUser struct {
	Profile
	UserName  string `json:"user_name"`
	UserEmail string `json:"user_email"`
}

// Status represents the live status of a streamer. One row per streamer,
// keyed by streamer_id.
type Status struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	StreamerID  uint      `gorm:"uniqueIndex;not null" json:"streamer_id"`
	IsLive      bool      `gorm:"not null;default:false" json:"is_live"`
	Platform    *string   `gorm:"type:varchar(50)" json:"platform,omitempty"`
	Title       *string   `gorm:"type:varchar(255)" json:"title,omitempty"`
	ViewerCount *int      `json:"viewer_count,omitempty"`
	StreamURL   *string   `gorm:"type:varchar(2048)" json:"stream_url,omitempty"`
	LastUpdated time.Time `gorm:"column:last_updated;not null" json:"last_updated"`
}

// TableName specifies the table name for the Status model.
func (Status) TableName() string {
	return "stream_status"
}

// CreateProfileRequest is the payload for creating a streamer profile.
type CreateProfileRequest struct {
	DisplayName    string  `json:"display_name" binding:"required,min=1,max=100"`
	Description    *string `json:"description,omitempty" binding:"omitempty,max=5000"`
	AvatarURL      *string `json:"avatar_url,omitempty" binding:"omitempty,url,max=2048"`
	TwitterHandle  *string `json:"twitter_handle,omitempty" binding:"omitempty,max=100"`
	YoutubeChannel *string `json:"youtube_channel,omitempty" binding:"omitempty,max=255"`
	TwitchChannel  *string `json:"twitch_channel,omitempty" binding:"omitempty,max=255"`
	JoinPhase      *string `json:"join_phase,omitempty" binding:"omitempty,oneof=phase01 phase02 phase03"`
}

// UpdateProfileRequest is the payload for partially updating a profile. All
// fields are optional, but at least one must be set.
type UpdateProfileRequest struct {
	DisplayName    *string `json:"display_name,omitempty" binding:"omitempty,min=1,max=100"`
	Description    *string `json:"description,omitempty" binding:"omitempty,max=5000"`
	AvatarURL      *string `json:"avatar_url,omitempty" binding:"omitempty,url,max=2048"`
	TwitterHandle  *string `json:"twitter_handle,omitempty" binding:"omitempty,max=100"`
	YoutubeChannel *string `json:"youtube_channel,omitempty" binding:"omitempty,max=255"`
	TwitchChannel  *string `json:"twitch_channel,omitempty" binding:"omitempty,max=255"`
	JoinPhase      *string `json:"join_phase,omitempty" binding:"omitempty,oneof=phase01 phase02 phase03"`
}

// Changes returns exactly the column assignments the caller set.
func (r UpdateProfileRequest) Changes() map[string]interface{} {
	changes := make(map[string]interface{})
	if r.DisplayName != nil {
		changes["display_name"] = *r.DisplayName
	}
	if r.Description != nil {
		changes["description"] = *r.Description
	}
	if r.AvatarURL != nil {
		changes["avatar_url"] = *r.AvatarURL
	}
	if r.TwitterHandle != nil {
		changes["twitter_handle"] = *r.TwitterHandle
	}
	if r.YoutubeChannel != nil {
		changes["youtube_channel"] = *r.YoutubeChannel
	}
	if r.TwitchChannel != nil {
		changes["twitch_channel"] = *r.TwitchChannel
	}
	if r.JoinPhase != nil {
		changes["join_phase"] = *r.JoinPhase
	}
	return changes
}

// UpdateStreamStatusRequest is the payload for upserting a streamer's live
// status. An empty payload still refreshes last_updated.
type UpdateStreamStatusRequest struct {
	IsLive      *bool   `json:"is_live,omitempty"`
	Platform    *string `json:"platform,omitempty" binding:"omitempty,max=50"`
	Title       *string `json:"title,omitempty" binding:"omitempty,max=255"`
	ViewerCount *int    `json:"viewer_count,omitempty" binding:"omitempty,min=0"`
	StreamURL   *string `json:"stream_url,omitempty" binding:"omitempty,url,max=2048"`
}

// Changes returns exactly the column assignments the caller set.
func (r UpdateStreamStatusRequest) Changes() map[string]interface{} {
	changes := make(map[string]interface{})
	if r.IsLive != nil {
		changes["is_live"] = *r.IsLive
	}
	if r.Platform != nil {
		changes["platform"] = *r.Platform
	}
	if r.Title != nil {
		changes["title"] = *r.Title
	}
	if r.ViewerCount != nil {
		changes["viewer_count"] = *r.ViewerCount
	}
	if r.StreamURL != nil {
		changes["stream_url"] = *r.StreamURL
	}
	return changes
}
