package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"treasure_hunter_bot/internal/service"
	"treasure_hunter_bot/pkg/auth"
	"treasure_hunter_bot/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
)

type hunterRoutes struct {
	hs service.HunterServiceI
	fs service.FindServiceI
	a  *auth.TelegramAuth
}

func NewHunterRoutes(handler *gin.RouterGroup, hs service.HunterServiceI, fs service.FindServiceI, a *auth.TelegramAuth) {
	r := &hunterRoutes{hs: hs, fs: fs, a: a}
	h := handler.Group("/hunters")
	h.Use(a.TelegramAuthMiddleware())
	{
		h.POST("/", r.RegisterHunter)
		h.GET("/:telegram_id", r.GetHunter)
		h.GET("/:telegram_id/stats", r.GetHunterStats)
		h.GET("/:telegram_id/finds", r.GetRecentFinds)
	}
}

type HunterResponse struct {
	TelegramID       int64     `json:"telegram_id"`
	Username         string    `json:"username"`
	FirstName        string    `json:"first_name"`
	TotalPoints      int       `json:"total_points"`
	FindsCount       int       `json:"finds_count"`
	RegistrationDate time.Time `json:"registration_date"`
	LastActivity     time.Time `json:"last_activity"`
}

func (r *hunterRoutes) RegisterHunter(c *gin.Context) {
	log := logger.Logger()

	user, ok := auth.FromContext(c)
	if !ok {
		log.Error("telegram user data not found in context")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	hunter, err := r.hs.RegisterHunter(c.Request.Context(), user.ID, user.Username, user.FirstName)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid identity"})
			return
		}
		log.Error("failed to register hunter", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to register hunter"})
		return
	}

	c.JSON(http.StatusCreated, HunterResponse{
		TelegramID:       hunter.TelegramID,
		Username:         hunter.Username,
		FirstName:        hunter.FirstName,
		TotalPoints:      hunter.TotalPoints,
		FindsCount:       hunter.FindsCount,
		RegistrationDate: hunter.RegistrationDate,
		LastActivity:     hunter.LastActivity,
	})
}

func (r *hunterRoutes) GetHunter(c *gin.Context) {
	log := logger.Logger()

	id, err := parseTelegramID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid telegram_id"})
		return
	}

	hunter, err := r.hs.GetHunterByTelegramID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrHunterNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no hunter associated with the provided telegram_id"})
			return
		}
		log.Error("failed to get hunter", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get hunter"})
		return
	}

	c.JSON(http.StatusOK, HunterResponse{
		TelegramID:       hunter.TelegramID,
		Username:         hunter.Username,
		FirstName:        hunter.FirstName,
		TotalPoints:      hunter.TotalPoints,
		FindsCount:       hunter.FindsCount,
		RegistrationDate: hunter.RegistrationDate,
		LastActivity:     hunter.LastActivity,
	})
}

func (r *hunterRoutes) GetHunterStats(c *gin.Context) {
	log := logger.Logger()

	id, err := parseTelegramID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid telegram_id"})
		return
	}

	stats, err := r.hs.GetHunterStats(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrHunterNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no hunter associated with the provided telegram_id"})
			return
		}
		log.Error("failed to get hunter stats", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get hunter stats"})
		return
	}

	recentFinds := make([]FindResponse, len(stats.RecentFinds))
	for i, f := range stats.RecentFinds {
		recentFinds[i] = newFindResponse(f)
	}

	c.JSON(http.StatusOK, gin.H{
		"telegram_id":       stats.Hunter.TelegramID,
		"username":          stats.Hunter.Username,
		"first_name":        stats.Hunter.FirstName,
		"total_points":      stats.Hunter.TotalPoints,
		"finds_count":       stats.Hunter.FindsCount,
		"rank":              stats.Rank,
		"ranked_hunters":    stats.RankedHunters,
		"member_since":      stats.Hunter.RegistrationDate,
		"recent_finds":      recentFinds,
		"achievement_icons": stats.AchievementIcons,
		"achievement_names": stats.AchievementNames,
	})
}

func (r *hunterRoutes) GetRecentFinds(c *gin.Context) {
	log := logger.Logger()

	id, err := parseTelegramID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid telegram_id"})
		return
	}

	limit := parseLimit(c, 10)

	finds, err := r.fs.RecentFinds(c.Request.Context(), id, limit)
	if err != nil {
		log.Error("failed to list finds", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list finds"})
		return
	}

	out := make([]FindResponse, len(finds))
	for i, f := range finds {
		out[i] = newFindResponse(f)
	}

	c.JSON(http.StatusOK, out)
}

func parseTelegramID(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("telegram_id"), 10, 64)
}

func parseLimit(c *gin.Context, fallback int) int {
	raw := c.Query("limit")
	if raw == "" {
		return fallback
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return fallback
	}
	if limit > 100 {
		return 100
	}
	return limit
}
