// File: internal/news/model.go
package news

import (
	"time"
)

// Article represents a news post.
type Article struct {
	ID            uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Title         string    `gorm:"type:varchar(255);not null" json:"title"`
	Slug          string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"slug"`
	Content       string    `gorm:"type:text;not null" json:"content"`
	Excerpt       *string   `gorm:"type:text" json:"excerpt,omitempty"`
	FeaturedImage *string   `gorm:"type:varchar(2048)" json:"featured_image,omitempty"`
	Published     bool      `gorm:"not null;default:false" json:"published"`
	CreatedBy     string    `gorm:"type:varchar(64);not null" json:"created_by"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TableName specifies the table name for the Article model.
func (Article) TableName() string {
	return "news"
}

// ArticleWithAuthor is a published-list row joined with its author's name.
type ArticleWithAuthor struct {
	Article
	AuthorName string `json:"author_name"`
}

// CreateNewsRequest is the payload for creating a news article. When the slug
// is omitted it is derived from the title.
type CreateNewsRequest struct {
	Title         string  `json:"title" binding:"required,min=1,max=255"`
	Slug          *string `json:"slug,omitempty" binding:"omitempty,min=1,max=255"`
	Content       string  `json:"content" binding:"required"`
	Excerpt       *string `json:"excerpt,omitempty" binding:"omitempty,max=2000"`
	FeaturedImage *string `json:"featured_image,omitempty" binding:"omitempty,url,max=2048"`
	Published     *bool   `json:"published,omitempty"`
}

// UpdateNewsRequest is the payload for partially updating an article. All
// fields are optional, but at least one must be set.
type UpdateNewsRequest struct {
	Title         *string `json:"title,omitempty" binding:"omitempty,min=1,max=255"`
	Slug          *string `json:"slug,omitempty" binding:"omitempty,min=1,max=255"`
	Content       *string `json:"content,omitempty"`
	Excerpt       *string `json:"excerpt,omitempty" binding:"omitempty,max=2000"`
	FeaturedImage *string `json:"featured_image,omitempty" binding:"omitempty,url,max=2048"`
	Published     *bool   `json:"published,omitempty"`
}

// Changes returns exactly the column assignments the caller set.
func (r UpdateNewsRequest) Changes() map[string]interface{} {
	changes := make(map[string]interface{})
	if r.Title != nil {
		changes["title"] = *r.Title
	}
	if r.Slug != nil {
		changes["slug"] = *r.Slug
	}
	if r.Content != nil {
		changes["content"] = *r.Content
	}
	if r.Excerpt != nil {
		changes["excerpt"] = *r.Excerpt
	}
	if r.FeaturedImage != nil {
		changes["featured_image"] = *r.FeaturedImage
	}
	if r.Published != nil {
		changes["published"] = *r.Published
	}
	return changes
}
