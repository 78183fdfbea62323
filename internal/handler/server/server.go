package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"subscription_feed_api/infrastructure/config"
	"subscription_feed_api/internal/core/ports"
	"subscription_feed_api/internal/handler/rest"
	"subscription_feed_api/internal/metrics"
	"subscription_feed_api/internal/middleware"
)

const (
	readTimeout  = 15 * time.Second
	writeTimeout = 30 * time.Second
	idleTimeout  = 60 * time.Second
)

// New wires the router and returns a ready-to-run HTTP server.
func New(cfg *config.Config, feedHandler *rest.FeedHandler, m *metrics.Metrics, log ports.LoggerPort) *http.Server {
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := NewRouter(feedHandler, m, log)

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}
}

// NewRouter configures middleware and routes.
func NewRouter(feedHandler *rest.FeedHandler, m *metrics.Metrics, log ports.LoggerPort) *gin.Engine {
	router := gin.New()

	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.Metrics(m))
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Error(fmt.Sprintf("Panic while handling %s", c.Request.URL.Path), nil)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal server error",
			"details": fmt.Sprint(recovered),
		})
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(m.Handler()))

	api := router.Group("/api", middleware.NoCache())
	api.GET("/videos/subscriptions", feedHandler.GetSubscriptionFeed)
	api.GET("/video/:id", feedHandler.GetVideoDetails)

	return router
}
