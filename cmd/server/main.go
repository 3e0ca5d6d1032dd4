// File: cmd/server/main.go
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"streamhub_backend/internal/config"
	"streamhub_backend/internal/news"
	"streamhub_backend/internal/platform/database"
	platformElasticsearch "streamhub_backend/internal/platform/elasticsearch"
	"streamhub_backend/internal/platform/logger"
	"streamhub_backend/internal/user"

	"github.com/elastic/go-elasticsearch/v8/esapi"
	"go.uber.org/zap"
)

func main() {
	syncNewsCmd := flag.NewFlagSet("sync-news", flag.ExitOnError)
	batchSize := syncNewsCmd.Int("batch-size", 100, "Batch size for syncing news articles")
	esRefresh := syncNewsCmd.String("es-refresh", "false", "Elasticsearch refresh policy (true, false, wait_for)")

	if len(os.Args) > 1 && os.Args[1] == "sync-news" {
		syncNewsCmd.Parse(os.Args[2:])

		cfg, err := config.Load()
		if err != nil {
			log.Fatalf("FATAL: Failed to load configuration for sync: %v", err)
		}
		appLogger, err := logger.New(cfg)
		if err != nil {
			log.Fatalf("FATAL: Failed to initialize logger for sync: %v", err)
		}
		db, err := database.NewGORM(cfg)
		if err != nil {
			appLogger.Fatal("FATAL: Failed to initialize database for sync", zap.Error(err))
		}
		defer database.CloseGORMDB(db)

		esClient, err := platformElasticsearch.NewClient(cfg, appLogger)
		if err != nil {
			appLogger.Fatal("FATAL: Failed to initialize Elasticsearch client for sync", zap.Error(err))
		}
		if esClient == nil {
			appLogger.Fatal("FATAL: Elasticsearch client not configured, set ELASTICSEARCH_URL before syncing.")
		}

		if err := platformElasticsearch.CreateNewsIndexIfNotExists(esClient, appLogger); err != nil {
			appLogger.Fatal("FATAL: Failed to create/verify news index before sync", zap.Error(err))
		}

		newsRepo := news.NewGORMRepository(db)
		userRepo := user.NewGORMRepository(db)

		if err := runNewsSync(newsRepo, userRepo, esClient, appLogger, *batchSize, *esRefresh); err != nil {
			appLogger.Fatal("FATAL: News synchronization failed", zap.Error(err))
		}
		appLogger.Info("News synchronization completed successfully.")
		return
	}

	startServer()
}

func startServer() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	server, cleanup, err := initializeServer(cfg)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize server: %v", err)
	}
	defer cleanup()

	go func() {
		if err := server.Start(); err != nil {
			log.Fatalf("FATAL: Server failed to start or crashed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Printf("INFO: Received signal '%s'. Shutting down server...", sig)

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.ServerTimeout)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("ERROR: Server forced to shutdown due to error: %v", err)
	} else {
		log.Println("INFO: Server shutdown complete.")
	}
	log.Println("INFO: Application exiting.")
}

// runNewsSync pushes every article into the search index in bulk batches.
func runNewsSync(
	newsRepo news.Repository,
	userRepo user.Repository,
	esClient *platformElasticsearch.ESClientWrapper,
	logger *zap.Logger,
	batchSize int,
	esRefresh string,
) error {
	ctx := context.Background()
	logger.Info("Starting news synchronization to Elasticsearch...",
		zap.Int("batchSize", batchSize),
		zap.String("esRefreshPolicy", esRefresh),
	)

	authorNames := make(map[string]string)
	offset := 0
	totalSynced := 0
	totalFailed := 0

	for {
		articles, err := newsRepo.ListAll(ctx, offset, batchSize)
		if err != nil {
			return fmt.Errorf("failed to fetch batch at offset %d: %w", offset, err)
		}
		if len(articles) == 0 {
			break
		}

		var bulkBody strings.Builder
		for _, article := range articles {
			authorName, cached := authorNames[article.CreatedBy]
			if !cached {
				author, err := userRepo.GetByID(ctx, article.CreatedBy)
				if err != nil {
					logger.Warn("Failed to resolve article author", zap.Error(err), zap.Uint("articleID", article.ID))
				} else if author != nil {
					authorName = author.Name
				}
				authorNames[article.CreatedBy] = authorName
			}

			docJSON, err := json.Marshal(news.ToSearchDocument(article, authorName))
			if err != nil {
				logger.Error("Failed to serialize article for indexing",
					zap.Uint("articleID", article.ID), zap.Error(err))
				totalFailed++
				continue
			}
			fmt.Fprintf(&bulkBody, "{ \"index\" : { \"_index\" : %q, \"_id\" : \"%d\" } }\n", platformElasticsearch.NewsIndexName, article.ID)
			bulkBody.Write(docJSON)
			bulkBody.WriteString("\n")
		}

		if bulkBody.Len() > 0 {
			req := esapi.BulkRequest{
				Body:    strings.NewReader(bulkBody.String()),
				Refresh: esRefresh,
			}
			res, err := req.Do(ctx, esClient.Client)
			if err != nil {
				return fmt.Errorf("bulk request at offset %d: %w", offset, err)
			}

			var bulkResponse struct {
				Errors bool `json:"errors"`
				Items  []struct {
					Index struct {
						ID     string                 `json:"_id"`
						Status int                    `json:"status"`
						Error  map[string]interface{} `json:"error,omitempty"`
					} `json:"index"`
				} `json:"items"`
			}
			if err := json.NewDecoder(res.Body).Decode(&bulkResponse); err != nil {
				res.Body.Close()
				return fmt.Errorf("decoding bulk response at offset %d: %w", offset, err)
			}
			res.Body.Close()

			for _, item := range bulkResponse.Items {
				if item.Index.Error != nil {
					logger.Error("Failed to index article in bulk batch",
						zap.String("articleID", item.Index.ID),
						zap.Int("status", item.Index.Status),
						zap.Any("error", item.Index.Error))
					totalFailed++
				} else {
					totalSynced++
				}
			}
		}

		logger.Info("Batch processed.", zap.Int("offset", offset), zap.Int("count", len(articles)))
		offset += len(articles)
	}

	logger.Info("News sync finished.",
		zap.Int("totalSynced", totalSynced),
		zap.Int("totalFailed", totalFailed))
	if totalFailed > 0 {
		return fmt.Errorf("%d articles failed to index", totalFailed)
	}
	return nil
}
