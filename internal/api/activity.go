package api

import (
	"net/http"
	"time"

	"treasure_hunter_bot/internal/model"
	"treasure_hunter_bot/internal/service"
	"treasure_hunter_bot/pkg/auth"
	"treasure_hunter_bot/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type activityRoutes struct {
	fs   service.FindServiceI
	feed *service.ActivityFeed
	a    *auth.TelegramAuth
}

func NewActivityRoutes(handler *gin.RouterGroup, fs service.FindServiceI, feed *service.ActivityFeed, a *auth.TelegramAuth) {
	r := &activityRoutes{fs: fs, feed: feed, a: a}
	h := handler.Group("/activity")
	h.Use(a.TelegramAuthMiddleware())
	{
		h.GET("/", r.GetActivity)
		h.GET("/ws", r.handleWebSocket)
	}
}

type ActivityItemResponse struct {
	HunterName string    `json:"hunter_name"`
	Category   string    `json:"category"`
	Points     int       `json:"points"`
	CreatedAt  time.Time `json:"created_at"`
}

func (r *activityRoutes) GetActivity(c *gin.Context) {
	log := logger.Logger()

	limit := parseLimit(c, 10)

	items, err := r.fs.CommunityActivity(c.Request.Context(), limit)
	if err != nil {
		log.Error("failed to get community activity", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get community activity"})
		return
	}

	out := make([]ActivityItemResponse, len(items))
	for i, item := range items {
		out[i] = ActivityItemResponse{
			HunterName: item.HunterName,
			Category:   item.Category,
			Points:     item.Points,
			CreatedAt:  item.CreatedAt,
		}
	}

	c.JSON(http.StatusOK, out)
}

func (r *activityRoutes) handleWebSocket(c *gin.Context) {
	log := logger.Logger()

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error("websocket upgrade failed", zap.Error(err))
		return
	}

	items, cancel := r.feed.Subscribe()
	go r.activityLoop(conn, items, cancel)
}

func (r *activityRoutes) activityLoop(conn *websocket.Conn, items <-chan model.ActivityItem, cancel func()) {
	defer func() {
		cancel()
		conn.Close()
	}()

	for item := range items {
		out, err := json.Marshal(ActivityItemResponse{
			HunterName: item.HunterName,
			Category:   item.Category,
			Points:     item.Points,
			CreatedAt:  item.CreatedAt,
		})
		if err != nil {
			logger.Logger().Error("failed to marshal activity item", zap.Error(err))
			continue
		}

		if err := conn.WriteMessage(websocket.TextMessage, out); err != nil {
			return
		}
	}
}
