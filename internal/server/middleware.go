package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// apiKeyAuth returns a Gin middleware that validates the X-API-Key header
// against the configured key list. Requests without a valid key are
// rejected before any route handler runs.
func apiKeyAuth(validKeys []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader("X-API-Key")
		if key == "" {
			jsonError(c, http.StatusUnauthorized, "missing API key")
			c.Abort()
			return
		}

		for _, valid := range validKeys {
			if key == valid {
				c.Next()
				return
			}
		}

		jsonError(c, http.StatusUnauthorized, "invalid API key")
		c.Abort()
	}
}

// requestLogger returns a Gin middleware that assigns each request a
// request id and logs method, path, status, and duration on completion.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-Id")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Header("X-Request-Id", requestID)

		start := time.Now()
		c.Next()

		log.Info().
			Str("request_id", requestID).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Msg("request")
	}
}
