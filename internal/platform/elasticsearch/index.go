package elasticsearch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/elastic/go-elasticsearch/v8/esapi"
	"go.uber.org/zap"
)

const NewsIndexName = "news"

// defineNewsMapping returns the JSON string for the news index mapping.
func defineNewsMapping() (string, error) {
	mapping := map[string]interface{}{
		"mappings": map[string]interface{}{
			"properties": map[string]interface{}{
				"title":       map[string]interface{}{"type": "text"},
				"slug":        map[string]interface{}{"type": "keyword"},
				"content":     map[string]interface{}{"type": "text"},
				"excerpt":     map[string]interface{}{"type": "text"},
				"published":   map[string]interface{}{"type": "boolean"},
				"author_name": map[string]interface{}{"type": "text", "fields": map[string]interface{}{"keyword": map[string]interface{}{"type": "keyword", "ignore_above": 256}}},
				"created_by":  map[string]interface{}{"type": "keyword"},
				"created_at":  map[string]interface{}{"type": "date"},
				"updated_at":  map[string]interface{}{"type": "date"},
			},
		},
	}
	mappingBytes, err := json.Marshal(mapping)
	if err != nil {
		return "", fmt.Errorf("error marshalling news mapping to JSON: %w", err)
	}
	return string(mappingBytes), nil
}

// CreateNewsIndexIfNotExists creates the news index with the defined mapping
// if it does not already exist.
func CreateNewsIndexIfNotExists(client *ESClientWrapper, logger *zap.Logger) error {
	ctx := context.Background()
	log := logger.Named("elasticsearch_index_setup")

	req := esapi.IndicesExistsRequest{
		Index: []string{NewsIndexName},
	}
	res, err := req.Do(ctx, client.Client)
	if err != nil {
		log.Error("Error checking if news index exists", zap.Error(err))
		return fmt.Errorf("error checking if news index exists: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusOK {
		log.Info("News index already exists", zap.String("index_name", NewsIndexName))
		return nil
	}
	if res.StatusCode != http.StatusNotFound {
		log.Error("Unexpected status while checking news index",
			zap.String("status", res.Status()),
			zap.String("index_name", NewsIndexName),
		)
		return fmt.Errorf("error checking if news index exists: status %s", res.Status())
	}

	mappingJSON, err := defineNewsMapping()
	if err != nil {
		log.Error("Failed to define news mapping", zap.Error(err))
		return err
	}

	createReq := esapi.IndicesCreateRequest{
		Index: NewsIndexName,
		Body:  strings.NewReader(mappingJSON),
	}
	createRes, err := createReq.Do(ctx, client.Client)
	if err != nil {
		log.Error("Error creating news index", zap.Error(err), zap.String("index_name", NewsIndexName))
		return fmt.Errorf("error creating news index %s: %w", NewsIndexName, err)
	}
	defer createRes.Body.Close()

	if createRes.IsError() {
		log.Error("Failed to create news index",
			zap.String("status", createRes.Status()),
			zap.String("index_name", NewsIndexName),
		)
		return fmt.Errorf("failed to create news index %s: status %s", NewsIndexName, createRes.Status())
	}

	log.Info("News index created successfully", zap.String("index_name", NewsIndexName))
	return nil
}
