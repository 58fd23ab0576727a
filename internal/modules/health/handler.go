package health

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/toolsite/core/internal/pkg/cron"
	"github.com/toolsite/core/internal/pkg/response"
	"gorm.io/gorm"
)

type Handler struct {
	db    *gorm.DB
	redis *goredis.Client
	cron  *cron.Scheduler
}

func NewHandler(db *gorm.DB, redis *goredis.Client, scheduler *cron.Scheduler) *Handler {
	return &Handler{db: db, redis: redis, cron: scheduler}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/health")
	{
		g.GET("", h.check)

		admin := g.Group("", authMW)
		{
			admin.GET("/cron", h.cronList)
			admin.POST("/cron/:name/run", h.cronRun)
		}
	}
}

func (h *Handler) check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	status := gin.H{"status": "ok", "timestamp": time.Now().UTC().Format(time.RFC3339)}
	healthy := true

	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		status["database"] = err.Error()
		healthy = false
	} else {
		status["database"] = "ok"
	}

	if h.redis != nil {
		if err := h.redis.Ping(ctx).Err(); err != nil {
			status["redis"] = err.Error()
			healthy = false
		} else {
			status["redis"] = "ok"
		}
	}

	if !healthy {
		status["status"] = "degraded"
		c.JSON(503, status)
		return
	}
	c.JSON(200, status)
}

func (h *Handler) cronList(c *gin.Context) {
	response.OK(c, h.cron.List())
}

func (h *Handler) cronRun(c *gin.Context) {
	if err := h.cron.Run(c.Request.Context(), c.Param("name")); err != nil {
		response.NotFoundMsg(c, err.Error())
		return
	}
	response.OK(c, gin.H{"triggered": c.Param("name")})
}
