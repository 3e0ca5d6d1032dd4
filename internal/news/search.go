// File: internal/news/search.go
package news

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"streamhub_backend/internal/platform/elasticsearch"

	"github.com/elastic/go-elasticsearch/v8/esapi"
	"go.uber.org/zap"
)

// SearchDocument is the article shape stored in the search index.
type SearchDocument struct {
	ID         uint      `json:"id"`
	Title      string    `json:"title"`
	Slug       string    `json:"slug"`
	Content    string    `json:"content"`
	Excerpt    string    `json:"excerpt,omitempty"`
	Published  bool      `json:"published"`
	AuthorName string    `json:"author_name,omitempty"`
	CreatedBy  string    `json:"created_by"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ToSearchDocument converts an article into its indexed form.
func ToSearchDocument(a *Article, authorName string) SearchDocument {
	doc := SearchDocument{
		ID:         a.ID,
		Title:      a.Title,
		Slug:       a.Slug,
		Content:    a.Content,
		Published:  a.Published,
		AuthorName: authorName,
		CreatedBy:  a.CreatedBy,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
	if a.Excerpt != nil {
		doc.Excerpt = *a.Excerpt
	}
	return doc
}

// SearchIndexer mirrors news writes into Elasticsearch. A nil client disables
// every operation, so callers never need to branch on configuration.
type SearchIndexer struct {
	client *elasticsearch.ESClientWrapper
	logger *zap.Logger
}

// NewSearchIndexer creates a SearchIndexer. client may be nil.
func NewSearchIndexer(client *elasticsearch.ESClientWrapper, logger *zap.Logger) *SearchIndexer {
	return &SearchIndexer{
		client: client,
		logger: logger.Named("NewsSearchIndexer"),
	}
}

// Enabled reports whether search is configured.
func (si *SearchIndexer) Enabled() bool {
	return si != nil && si.client != nil
}

// Index writes or overwrites the article's search document.
func (si *SearchIndexer) Index(ctx context.Context, article *Article, authorName string) error {
	if !si.Enabled() {
		return nil
	}
	doc := ToSearchDocument(article, authorName)
	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshaling search document for article %d: %w", article.ID, err)
	}

	req := esapi.IndexRequest{
		Index:      elasticsearch.NewsIndexName,
		DocumentID: strconv.FormatUint(uint64(article.ID), 10),
		Body:       bytes.NewReader(payload),
		Refresh:    "false",
	}
	res, err := req.Do(ctx, si.client)
	if err != nil {
		return fmt.Errorf("indexing article %d: %w", article.ID, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("indexing article %d: status %s", article.ID, res.Status())
	}
	return nil
}

// Delete removes the article's search document. A missing document is not an
// error.
func (si *SearchIndexer) Delete(ctx context.Context, articleID uint) error {
	if !si.Enabled() {
		return nil
	}
	req := esapi.DeleteRequest{
		Index:      elasticsearch.NewsIndexName,
		DocumentID: strconv.FormatUint(uint64(articleID), 10),
	}
	res, err := req.Do(ctx, si.client)
	if err != nil {
		return fmt.Errorf("deleting article %d from index: %w", articleID, err)
	}
	defer res.Body.Close()
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("deleting article %d from index: status %s", articleID, res.Status())
	}
	return nil
}

// Search runs a full-text query over published articles and returns matching
// documents, best match first.
func (si *SearchIndexer) Search(ctx context.Context, query string, from, size int) ([]SearchDocument, int64, error) {
	if !si.Enabled() {
		return nil, 0, nil
	}

	body := map[string]interface{}{
		"from": from,
		"size": size,
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"must": map[string]interface{}{
					"multi_match": map[string]interface{}{
						"query":  query,
						"fields": []string{"title^3", "excerpt^2", "content"},
					},
				},
				"filter": map[string]interface{}{
					"term": map[string]interface{}{"published": true},
				},
			},
		},
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, 0, fmt.Errorf("marshaling search query: %w", err)
	}

	res, err := si.client.Search(
		si.client.Search.WithContext(ctx),
		si.client.Search.WithIndex(elasticsearch.NewsIndexName),
		si.client.Search.WithBody(bytes.NewReader(payload)),
		si.client.Search.WithTrackTotalHits(true),
	)
	if err != nil {
		return nil, 0, fmt.Errorf("executing news search: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, 0, fmt.Errorf("news search failed: status %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source SearchDocument `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, 0, fmt.Errorf("decoding search response: %w", err)
	}

	docs := make([]SearchDocument, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		docs = append(docs, hit.Source)
	}
	return docs, parsed.Hits.Total.Value, nil
}
