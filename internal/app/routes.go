package app

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/toolsite/core/internal/middleware"
	"github.com/toolsite/core/internal/modules/ad"
	"github.com/toolsite/core/internal/modules/auth"
	"github.com/toolsite/core/internal/modules/category"
	"github.com/toolsite/core/internal/modules/health"
	"github.com/toolsite/core/internal/modules/importer"
	"github.com/toolsite/core/internal/modules/post"
	"github.com/toolsite/core/internal/modules/scraper"
	"github.com/toolsite/core/internal/modules/settings"
	"github.com/toolsite/core/internal/modules/submission"
	"github.com/toolsite/core/internal/modules/subscriber"
	"github.com/toolsite/core/internal/modules/tag"
	"github.com/toolsite/core/internal/modules/tool"
	"github.com/toolsite/core/internal/modules/webhook"
	"github.com/toolsite/core/internal/pkg/response"
)

type routeDeps struct {
	auth        *auth.Handler
	tools       *tool.Handler
	categories  *category.Handler
	tags        *tag.Handler
	posts       *post.Handler
	ads         *ad.Handler
	subscribers *subscriber.Handler
	submissions *submission.Handler
	scrapes     *scraper.Handler
	webhooks    *webhook.Handler
	imports     *importer.Handler
	settings    *settings.Handler
	health      *health.Handler
}

func (a *App) buildRouter(deps routeDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger(a.log))
	r.Use(cors.New(a.corsConfig()))
	r.Use(middleware.OptionalAuth())
	if rdb := a.rawRedis(); rdb != nil {
		r.Use(middleware.RateLimit(rdb))
		r.Use(middleware.Idempotence(rdb))
	}

	r.NoRoute(func(c *gin.Context) { response.NotFound(c) })
	r.NoMethod(func(c *gin.Context) { response.MethodNotAllowed(c) })

	adminMW := middleware.AdminOnly()

	api := r.Group("/api/v2")
	{
		deps.auth.RegisterRoutes(api, middleware.Auth())
		deps.tools.RegisterRoutes(api, adminMW)
		deps.categories.RegisterRoutes(api, adminMW)
		deps.tags.RegisterRoutes(api, adminMW)
		deps.posts.RegisterRoutes(api, adminMW)
		deps.ads.RegisterRoutes(api, adminMW)
		deps.subscribers.RegisterRoutes(api, adminMW)
		deps.submissions.RegisterRoutes(api, adminMW)
		deps.scrapes.RegisterRoutes(api, adminMW)
		deps.webhooks.RegisterRoutes(api, adminMW)
		deps.imports.RegisterRoutes(api, adminMW)
		deps.settings.RegisterRoutes(api, adminMW)
		deps.health.RegisterRoutes(api, adminMW)
	}

	return r
}

func (a *App) corsConfig() cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "x-idempotence"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(a.cfg.AllowedOrigins) > 0 {
		cfg.AllowOrigins = a.cfg.AllowedOrigins
	} else {
		cfg.AllowAllOrigins = true
		cfg.AllowCredentials = false
	}
	return cfg
}

func (a *App) rawRedis() *goredis.Client {
	if a.redis == nil {
		return nil
	}
	return a.redis.Raw()
}
