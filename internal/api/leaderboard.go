package api

import (
	"errors"
	"net/http"

	"treasure_hunter_bot/internal/model"
	"treasure_hunter_bot/internal/service"
	"treasure_hunter_bot/pkg/auth"
	"treasure_hunter_bot/pkg/logger"
	"treasure_hunter_bot/pkg/metrics"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
)

type leaderboardRoutes struct {
	ls service.LeaderboardServiceI
	a  *auth.TelegramAuth
}

func NewLeaderboardRoutes(handler *gin.RouterGroup, ls service.LeaderboardServiceI, a *auth.TelegramAuth) {
	r := &leaderboardRoutes{ls: ls, a: a}
	h := handler.Group("/leaderboard")
	h.Use(a.TelegramAuthMiddleware())
	{
		h.GET("/", r.GetLeaderboard)
	}
}

type LeaderboardEntryResponse struct {
	Rank       int    `json:"rank"`
	TelegramID int64  `json:"telegram_id"`
	Username   string `json:"username"`
	FirstName  string `json:"first_name"`
	Points     int    `json:"points"`
	Finds      int    `json:"finds"`
}

func (r *leaderboardRoutes) GetLeaderboard(c *gin.Context) {
	log := logger.Logger()

	period := model.LeaderboardPeriod(c.DefaultQuery("period", string(model.PeriodAllTime)))
	limit := parseLimit(c, 10)

	entries, err := r.ls.Rank(c.Request.Context(), period, limit)
	if err != nil {
		if errors.Is(err, service.ErrUnknownPeriod) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "period must be one of all_time, monthly, weekly"})
			return
		}
		log.Error("failed to get leaderboard", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get leaderboard"})
		return
	}

	metrics.LeaderboardRequests.WithLabelValues(string(period)).Inc()

	out := make([]LeaderboardEntryResponse, len(entries))
	for i, e := range entries {
		out[i] = LeaderboardEntryResponse{
			Rank:       e.Rank,
			TelegramID: e.TelegramID,
			Username:   e.Username,
			FirstName:  e.FirstName,
			Points:     e.Points,
			Finds:      e.Finds,
		}
	}

	c.JSON(http.StatusOK, out)
}
