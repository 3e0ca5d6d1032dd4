// File: internal/app/server.go
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"streamhub_backend/internal/allowlist"
	"streamhub_backend/internal/auth"
	"streamhub_backend/internal/common"
	"streamhub_backend/internal/config"
	"streamhub_backend/internal/jobs"
	"streamhub_backend/internal/middleware"
	"streamhub_backend/internal/news"
	"streamhub_backend/internal/platform/elasticsearch"
	"streamhub_backend/internal/shared"
	"streamhub_backend/internal/streamer"
	"streamhub_backend/internal/user"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Server holds the dependencies for the HTTP server.
type Server struct {
	httpServer *http.Server
	router     *gin.Engine
	cfg        *config.Config
	logger     *zap.Logger

	esClient *elasticsearch.ESClientWrapper

	authHandler      *auth.Handler
	userHandler      *user.Handler
	streamerHandler  *streamer.Handler
	newsHandler      *news.Handler
	allowlistHandler *allowlist.Handler

	statusSweeper *jobs.StatusSweeper

	authMW      gin.HandlerFunc
	adminRoleMW gin.HandlerFunc
}

// NewServer creates a new instance of the application server and wires up all
// routes and middleware.
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	tokenService shared.TokenService,
	authHandler *auth.Handler,
	userHandler *user.Handler,
	streamerHandler *streamer.Handler,
	newsHandler *news.Handler,
	allowlistHandler *allowlist.Handler,
	statusSweeper *jobs.StatusSweeper,
	esClient *elasticsearch.ESClientWrapper,
) (*Server, error) {
	gin.SetMode(cfg.GinMode)
	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.ZapLogger(logger))
	router.Use(middleware.ErrorHandler(logger))
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"*"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"Content-Length", "X-Request-ID"}
	router.Use(cors.New(corsConfig))

	authMW := middleware.AuthMiddleware(tokenService, logger.Named("AuthMiddleware"))
	adminRoleMW := middleware.RoleAuthMiddleware(common.RoleAdmin)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP", "message": "StreamHub API is healthy!"})
	})

	v1 := router.Group("/api/v1")
	authHandler.RegisterRoutes(v1, authMW)
	userHandler.RegisterRoutes(v1, authMW, adminRoleMW)
	streamerHandler.RegisterRoutes(v1, authMW)
	newsHandler.RegisterRoutes(v1, authMW, adminRoleMW)
	allowlistHandler.RegisterRoutes(v1, authMW, adminRoleMW)

	addr := fmt.Sprintf("%s:%s", cfg.ServerHost, cfg.ServerPort)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return &Server{
		httpServer:       httpServer,
		router:           router,
		cfg:              cfg,
		logger:           logger,
		esClient:         esClient,
		authHandler:      authHandler,
		userHandler:      userHandler,
		streamerHandler:  streamerHandler,
		newsHandler:      newsHandler,
		allowlistHandler: allowlistHandler,
		statusSweeper:    statusSweeper,
		authMW:           authMW,
		adminRoleMW:      adminRoleMW,
	}, nil
}

// Router exposes the Gin engine, mainly for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start runs the background jobs and the HTTP server. It blocks until the
// server stops.
func (s *Server) Start() error {
	if s.statusSweeper != nil {
		if err := s.statusSweeper.Start(); err != nil {
			s.logger.Error("Failed to start status sweep job", zap.Error(err))
		}
	}

	if s.esClient != nil {
		if err := elasticsearch.CreateNewsIndexIfNotExists(s.esClient, s.logger); err != nil {
			s.logger.Error("Failed to ensure news search index", zap.Error(err))
		}
	}

	s.logger.Info("HTTP Server starting",
		zap.String("address", s.httpServer.Addr),
		zap.String("gin_mode", s.cfg.GinMode),
	)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		s.logger.Error("Failed to start HTTP server", zap.Error(err))
		return err
	}
	s.logger.Info("HTTP Server stopped")
	return nil
}

// Shutdown gracefully stops the HTTP server and background jobs.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Attempting graceful server shutdown...")
	if s.statusSweeper != nil {
		s.statusSweeper.Stop()
	}
	return s.httpServer.Shutdown(ctx)
}
