package api

import (
	"net/http"
	"time"

	"github.com/comment-moderation-api/internal/config"
	"github.com/comment-moderation-api/internal/realtime"
	"github.com/comment-moderation-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// NewRouter creates and configures the Gin router
func NewRouter(svc service.CommentService, hub *realtime.Hub, cfg *config.Config, log zerolog.Logger) *gin.Engine {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Middleware
	router.Use(recoveryMiddleware(log))
	router.Use(loggingMiddleware(log))
	router.Use(corsMiddleware(cfg.CORS.AllowedOrigins))

	// Handlers
	commentHandler := NewCommentHandler(svc, log)
	moderationHandler := NewModerationHandler(svc, log)

	// Service descriptor and health check
	router.GET("/", serviceDescriptor)
	router.GET("/health", healthCheck)

	// Realtime channel
	router.GET("/ws", func(c *gin.Context) {
		if err := realtime.ServeWS(hub, c.Writer, c.Request); err != nil {
			log.Warn().Err(err).Msg("WebSocket upgrade failed")
		}
	})

	// API
	api := router.Group("/api")
	{
		comments := api.Group("/comments")
		{
			comments.GET("/:articleId", commentHandler.ListComments)
			comments.POST("/:articleId", commentHandler.CreateComment)
			comments.POST("/:articleId/reply/:commentId", commentHandler.CreateReply)
		}

		api.GET("/pending/:articleId", commentHandler.ListPending)

		api.POST("/moderate",
			moderationAuth(cfg.Moderation.Secret, log),
			moderationHandler.Moderate,
		)
	}

	return router
}

// serviceDescriptor lists the available endpoints
func serviceDescriptor(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Comment Moderation API",
		"endpoints": []string{
			"/api/comments/:articleId",
			"/api/comments/:articleId?status=approved",
			"/api/comments/:articleId?status=pending",
			"/api/comments/:articleId/reply/:commentId",
			"/api/moderate",
			"/api/pending/:articleId",
			"/health",
			"/ws",
		},
	})
}

// healthCheck returns the liveness status
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// recoveryMiddleware handles panics
func recoveryMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().Interface("error", err).Msg("Panic recovered")
				c.JSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// loggingMiddleware logs requests
func loggingMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		event := log.Info()
		if statusCode >= 400 {
			event = log.Warn()
		}
		if statusCode >= 500 {
			event = log.Error()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", statusCode).
			Dur("duration", duration).
			Str("client_ip", c.ClientIP()).
			Msg("Request completed")
	}
}

// corsMiddleware handles CORS against the configured origin allow-list.
// With no configured origins every origin is allowed.
func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		if len(allowedOrigins) == 0 {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		} else if origin != "" && originAllowed(origin, allowedOrigins) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		}
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

func originAllowed(origin string, allowed []string) bool {
	for _, a := range allowed {
		if a == "*" || a == origin {
			return true
		}
	}
	return false
}

// moderationAuth guards the moderation endpoint with a shared bearer
// secret. An unconfigured secret rejects every request.
func moderationAuth(secret string, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if secret == "" || auth != "Bearer "+secret {
			log.Warn().Str("client_ip", c.ClientIP()).Msg("Rejected moderation request with bad credentials")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Next()
	}
}
