// File: internal/news/service.go
package news

import (
	"context"

	"streamhub_backend/internal/common"
	"streamhub_backend/internal/user"

	"github.com/gosimple/slug"
	"go.uber.org/zap"
)

// Service defines the interface for news business logic.
type Service interface {
	ListPublished(ctx context.Context) ([]*ArticleWithAuthor, error)
	GetByID(ctx context.Context, id uint) (*Article, error)
	GetBySlug(ctx context.Context, slugValue string) (*Article, error)
	Create(ctx context.Context, createdBy string, req CreateNewsRequest) (*Article, error)
	Update(ctx context.Context, id uint, req UpdateNewsRequest) (*Article, error)
	Delete(ctx context.Context, id uint) error
	Search(ctx context.Context, query string, page, pageSize int) ([]SearchDocument, int64, error)
}

// ServiceImplementation provides the implementation for the news Service.
type ServiceImplementation struct {
	repo        Repository
	userService user.Service
	indexer     *SearchIndexer
	logger      *zap.Logger
}

// NewService creates a new news service instance.
func NewService(repo Repository, userService user.Service, indexer *SearchIndexer, logger *zap.Logger) *ServiceImplementation {
	return &ServiceImplementation{
		repo:        repo,
		userService: userService,
		indexer:     indexer,
		logger:      logger.Named("NewsService"),
	}
}

func (s *ServiceImplementation) ListPublished(ctx context.Context) ([]*ArticleWithAuthor, error) {
	return s.repo.ListPublished(ctx)
}

// GetByID returns an article regardless of published state, or ErrNotFound.
func (s *ServiceImplementation) GetByID(ctx context.Context, id uint) (*Article, error) {
	article, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, common.ErrNotFound.WithDetails("News article not found with this ID.")
	}
	return article, nil
}

// GetBySlug returns a published article, or ErrNotFound. Unpublished articles
// stay invisible through this lookup.
func (s *ServiceImplementation) GetBySlug(ctx context.Context, slugValue string) (*Article, error) {
	article, err := s.repo.GetBySlug(ctx, slugValue)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, common.ErrNotFound.WithDetails("News article not found with this slug.")
	}
	return article, nil
}

// Create makes a new article, deriving the slug from the title when the
// caller omitted one. The search index is updated best-effort.
func (s *ServiceImplementation) Create(ctx context.Context, createdBy string, req CreateNewsRequest) (*Article, error) {
	article := &Article{
		Title:         req.Title,
		Content:       req.Content,
		Excerpt:       req.Excerpt,
		FeaturedImage: req.FeaturedImage,
		CreatedBy:     createdBy,
	}
	if req.Slug != nil {
		article.Slug = slug.Make(*req.Slug)
	} else {
		article.Slug = slug.Make(req.Title)
	}
	if req.Published != nil {
		article.Published = *req.Published
	}

	if _, err := s.repo.Create(ctx, article); err != nil {
		return nil, err
	}
	s.logger.Info("News article created",
		zap.Uint("articleID", article.ID),
		zap.String("slug", article.Slug))

	s.indexArticle(ctx, article)
	return article, nil
}

func (s *ServiceImplementation) Update(ctx context.Context, id uint, req UpdateNewsRequest) (*Article, error) {
	if req.Slug != nil {
		normalized := slug.Make(*req.Slug)
		req.Slug = &normalized
	}
	write, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}
	if write.RowsAffected == 0 {
		return nil, common.ErrNotFound.WithDetails("News article not found with this ID.")
	}
	article, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.indexArticle(ctx, article)
	return article, nil
}

// Delete permanently removes an article and its search document.
func (s *ServiceImplementation) Delete(ctx context.Context, id uint) error {
	write, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if write.RowsAffected == 0 {
		return common.ErrNotFound.WithDetails("News article not found with this ID.")
	}
	s.logger.Info("News article deleted", zap.Uint("articleID", id))

	if s.indexer.Enabled() {
		if err := s.indexer.Delete(ctx, id); err != nil {
			s.logger.Warn("Failed to delete article from search index", zap.Error(err), zap.Uint("articleID", id))
		}
	}
	return nil
}

// Search runs a full-text search over published articles.
func (s *ServiceImplementation) Search(ctx context.Context, query string, page, pageSize int) ([]SearchDocument, int64, error) {
	if !s.indexer.Enabled() {
		return nil, 0, common.ErrServiceUnavailable.WithDetails("News search is not configured.")
	}
	from := (page - 1) * pageSize
	return s.indexer.Search(ctx, query, from, pageSize)
}

// indexArticle mirrors an article into the search index, logging rather than
// failing the write when indexing does not succeed.
func (s *ServiceImplementation) indexArticle(ctx context.Context, article *Article) {
	if !s.indexer.Enabled() {
		return
	}
	authorName := ""
	if author, err := s.userService.FindByID(ctx, article.CreatedBy); err == nil && author != nil {
		authorName = author.Name
	}
	if err := s.indexer.Index(ctx, article, authorName); err != nil {
		s.logger.Warn("Failed to index article for search",
			zap.Error(err),
			zap.Uint("articleID", article.ID))
	}
}
