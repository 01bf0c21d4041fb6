package middleware

import (
	"net/http"

	"treasure_hunter_bot/pkg/auth"
	"treasure_hunter_bot/pkg/logger"
	"treasure_hunter_bot/pkg/metrics"
	"treasure_hunter_bot/pkg/ratelimit"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
)

// RateLimit rejects requests for users above the governor's sliding-window
// limit. Must run after the Telegram auth middleware.
func RateLimit(governor *ratelimit.Governor) gin.HandlerFunc {
	return func(c *gin.Context) {
		log := logger.Logger()

		user, ok := auth.FromContext(c)
		if !ok {
			log.Error("telegram user data not found in context")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}

		if !governor.Allowed(user.ID) {
			metrics.RateLimited.Inc()
			wait := governor.WaitSeconds(user.ID)
			log.Info("rate limited",
				zap.Int64("telegram_id", user.ID),
				zap.Int("wait_seconds", wait))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":        "too many requests",
				"wait_seconds": wait,
			})
			return
		}

		c.Next()
	}
}
