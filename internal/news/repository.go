// File: internal/news/repository.go
package news

import (
	"context"
	"errors"
	"strings"
	"time"

	"streamhub_backend/internal/common"

	"gorm.io/gorm"
)

// Repository defines the interface for news data operations. Lookups return
// (nil, nil) when no row matches.
type Repository interface {
	ListPublished(ctx context.Context) ([]*ArticleWithAuthor, error)
	ListAll(ctx context.Context, offset, limit int) ([]*Article, error)
	GetByID(ctx context.Context, id uint) (*Article, error)
	GetBySlug(ctx context.Context, slug string) (*Article, error)
	Create(ctx context.Context, article *Article) (common.WriteResult, error)
	Update(ctx context.Context, id uint, req UpdateNewsRequest) (common.WriteResult, error)
	Delete(ctx context.Context, id uint) (common.WriteResult, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a new GORM news repository.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

// ListPublished returns published articles, newest first, with the author's
// name joined in.
func (r *gormRepository) ListPublished(ctx context.Context) ([]*ArticleWithAuthor, error) {
	rows := make([]*ArticleWithAuthor, 0)
	err := r.db.WithContext(ctx).
		Table("news").
		Select("news.*, users.name AS author_name").
		Joins("JOIN users ON users.id = news.created_by").
		Where("news.published = ?", true).
		Order("news.created_at DESC, news.id DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ListAll pages through every article regardless of published state. Used by
// admin listings and the search reindexer.
func (r *gormRepository) ListAll(ctx context.Context, offset, limit int) ([]*Article, error) {
	articles := make([]*Article, 0)
	err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&articles).Error
	if err != nil {
		return nil, err
	}
	return articles, nil
}

func (r *gormRepository) GetByID(ctx context.Context, id uint) (*Article, error) {
	var article Article
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&article).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &article, nil
}

// GetBySlug retrieves a published article by its slug. Unpublished articles
// are invisible through this lookup.
func (r *gormRepository) GetBySlug(ctx context.Context, slug string) (*Article, error) {
	var article Article
	err := r.db.WithContext(ctx).
		Where("slug = ? AND published = ?", slug, true).
		First(&article).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &article, nil
}

// Create inserts a new article.
func (r *gormRepository) Create(ctx context.Context, article *Article) (common.WriteResult, error) {
	start := time.Now()
	result := r.db.WithContext(ctx).Create(article)
	write := common.WriteResult{RowsAffected: result.RowsAffected, Duration: time.Since(start)}
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) ||
			strings.Contains(result.Error.Error(), "unique constraint") ||
			strings.Contains(result.Error.Error(), "UNIQUE constraint") {
			return write, common.ErrConflict.WithDetails("An article with this slug already exists.")
		}
		return write, result.Error
	}
	return write, nil
}

// Update applies a partial update. An empty change set is rejected before
// touching the store.
func (r *gormRepository) Update(ctx context.Context, id uint, req UpdateNewsRequest) (common.WriteResult, error) {
	changes := req.Changes()
	if len(changes) == 0 {
		return common.WriteResult{}, common.ErrBadRequest.WithDetails("Update requires at least one field to be set.")
	}
	changes["updated_at"] = time.Now().UTC()

	start := time.Now()
	result := r.db.WithContext(ctx).Model(&Article{}).Where("id = ?", id).Updates(changes)
	write := common.WriteResult{RowsAffected: result.RowsAffected, Duration: time.Since(start)}
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) ||
			strings.Contains(result.Error.Error(), "unique constraint") ||
			strings.Contains(result.Error.Error(), "UNIQUE constraint") {
			return write, common.ErrConflict.WithDetails("An article with this slug already exists.")
		}
		return write, result.Error
	}
	return write, nil
}

// Delete permanently removes an article.
func (r *gormRepository) Delete(ctx context.Context, id uint) (common.WriteResult, error) {
	start := time.Now()
	result := r.db.WithContext(ctx).Delete(&Article{}, id)
	write := common.WriteResult{RowsAffected: result.RowsAffected, Duration: time.Since(start)}
	if result.Error != nil {
		return write, result.Error
	}
	return write, nil
}
