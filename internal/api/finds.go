package api

import (
	"errors"
	"net/http"
	"time"

	"treasure_hunter_bot/internal/middleware"
	"treasure_hunter_bot/internal/model"
	"treasure_hunter_bot/internal/service"
	"treasure_hunter_bot/pkg/auth"
	"treasure_hunter_bot/pkg/logger"
	"treasure_hunter_bot/pkg/metrics"
	"treasure_hunter_bot/pkg/ratelimit"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
)

type findRoutes struct {
	fs service.FindServiceI
	a  *auth.TelegramAuth
}

func NewFindRoutes(handler *gin.RouterGroup, fs service.FindServiceI, a *auth.TelegramAuth, governor *ratelimit.Governor) {
	r := &findRoutes{fs: fs, a: a}
	h := handler.Group("/finds")
	h.Use(a.TelegramAuthMiddleware())
	{
		h.POST("/", middleware.RateLimit(governor), r.RecordFind)
	}
}

type RecordFindRequest struct {
	Category     string   `json:"category"`
	Description  string   `json:"description"`
	Depth        *float64 `json:"depth,omitempty"`
	Location     *string  `json:"location,omitempty"`
	AnalysisText *string  `json:"analysis_text,omitempty"`
}

type FindResponse struct {
	FindID        string    `json:"find_id"`
	Category      string    `json:"category"`
	Description   string    `json:"description"`
	PointsAwarded int       `json:"points_awarded"`
	Depth         *float64  `json:"depth,omitempty"`
	Location      *string   `json:"location,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

type AchievementResponse struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type RecordFindResponse struct {
	Find            FindResponse          `json:"find"`
	TotalPoints     int                   `json:"total_points"`
	TotalFinds      int                   `json:"total_finds"`
	NewAchievements []AchievementResponse `json:"new_achievements"`
}

func newFindResponse(f model.Find) FindResponse {
	return FindResponse{
		FindID:        f.FindID.String(),
		Category:      f.Category,
		Description:   f.Description,
		PointsAwarded: f.PointsAwarded,
		Depth:         f.Depth,
		Location:      f.Location,
		CreatedAt:     f.CreatedAt,
	}
}

func (r *findRoutes) RecordFind(c *gin.Context) {
	log := logger.Logger()

	user, ok := auth.FromContext(c)
	if !ok {
		log.Error("telegram user data not found in context")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	var req RecordFindRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to bind request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	result, err := r.fs.RecordFind(c.Request.Context(), service.FindInput{
		TelegramID:   user.ID,
		Category:     req.Category,
		Description:  req.Description,
		Depth:        req.Depth,
		Location:     req.Location,
		AnalysisText: req.AnalysisText,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrHunterNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "hunter is not registered"})
		default:
			log.Error("failed to record find", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record find"})
		}
		return
	}

	metrics.FindsRecorded.Inc()
	metrics.AchievementsAwarded.Add(float64(len(result.NewAchievements)))

	newAchievements := make([]AchievementResponse, len(result.NewAchievements))
	for i, a := range result.NewAchievements {
		newAchievements[i] = AchievementResponse{
			Name:        a.Name,
			Description: a.Description,
			Icon:        a.Icon,
		}
	}

	c.JSON(http.StatusCreated, RecordFindResponse{
		Find:            newFindResponse(result.Find),
		TotalPoints:     result.TotalPoints,
		TotalFinds:      result.TotalFinds,
		NewAchievements: newAchievements,
	})
}
