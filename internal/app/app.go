package app

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/toolsite/core/internal/config"
	"github.com/toolsite/core/internal/database"
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
	"github.com/toolsite/core/internal/pkg/cron"
	"github.com/toolsite/core/internal/pkg/jwt"
	"github.com/toolsite/core/internal/pkg/redis"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// scrapeTaskRetention is how long terminal scrape tasks are kept before the
// cleanup job removes them.
const scrapeTaskRetention = 30 * 24 * time.Hour

// App wires configuration, storage and all feature modules together.
type App struct {
	cfg    *config.AppConfig
	log    *zap.Logger
	db     *gorm.DB
	redis  *redis.Client
	router *gin.Engine
	cron   *cron.Scheduler

	cronCancel context.CancelFunc
}

// New loads configuration, connects the backing stores and builds the router.
func New(logger *zap.Logger, configPath string) (*App, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	jwt.SetSecret(cfg.JWTSecret)

	if !cfg.IsDev() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Connect(cfg, true)
	if err != nil {
		return nil, err
	}

	rdb, err := redis.Connect(cfg.RedisURL)
	if err != nil {
		// rate limiting and idempotence degrade gracefully without redis
		logger.Warn("redis unavailable, continuing without it", zap.Error(err))
		rdb = nil
	}

	a := &App{
		cfg:   cfg,
		log:   logger,
		db:    db,
		redis: rdb,
		cron:  cron.New(),
	}

	hooks := webhook.NewService(db, cfg.Webhook, logger)
	tags := tag.NewService(db)
	tools := tool.NewService(db, hooks, logger)
	extractor := scraper.NewExtractor(cfg.Scraper)
	scrapes := scraper.NewService(db, extractor, logger)
	ads := ad.NewService(db)
	authSvc := auth.NewService(db, logger)

	if err := authSvc.SeedAdmin("admin@toolsite.local", "changeme123"); err != nil {
		return nil, fmt.Errorf("seed admin: %w", err)
	}

	a.registerCronJobs(ads, scrapes)

	a.router = a.buildRouter(routeDeps{
		auth:        auth.NewHandler(authSvc),
		tools:       tool.NewHandler(tools),
		categories:  category.NewHandler(category.NewService(db)),
		tags:        tag.NewHandler(tags),
		posts:       post.NewHandler(post.NewService(db, hooks)),
		ads:         ad.NewHandler(ads),
		subscribers: subscriber.NewHandler(subscriber.NewService(db, hooks)),
		submissions: submission.NewHandler(submission.NewService(db, tools, hooks)),
		scrapes:     scraper.NewHandler(scrapes),
		webhooks:    webhook.NewHandler(hooks),
		imports:     importer.NewHandler(importer.NewService(db, tags, logger)),
		settings:    settings.NewHandler(settings.NewService(db)),
		health:      health.NewHandler(db, a.rawRedis(), a.cron),
	})

	ctx, cancel := context.WithCancel(context.Background())
	a.cronCancel = cancel
	a.cron.Start(ctx)

	return a, nil
}

// Addr returns the listen address.
func (a *App) Addr() string {
	return fmt.Sprintf(":%d", a.cfg.Port)
}

// Router exposes the HTTP handler.
func (a *App) Router() *gin.Engine {
	return a.router
}

// Shutdown stops background work.
func (a *App) Shutdown() {
	if a.cronCancel != nil {
		a.cronCancel()
	}
}

func (a *App) registerCronJobs(ads *ad.Service, scrapes *scraper.Service) {
	a.cron.Register(cron.Job{
		Name:        "deactivate-expired-ads",
		Description: "Deactivate ads whose end date has passed",
		Interval:    time.Hour,
		Fn: func(ctx context.Context) error {
			n, err := ads.DeactivateExpired(time.Now())
			if err != nil {
				return err
			}
			if n > 0 {
				a.log.Info("deactivated expired ads", zap.Int64("count", n))
			}
			return nil
		},
	})
	a.cron.Register(cron.Job{
		Name:        "purge-scrape-tasks",
		Description: "Remove completed and failed scrape tasks older than the retention window",
		Interval:    24 * time.Hour,
		Fn: func(ctx context.Context) error {
			n, err := scrapes.PurgeTerminalBefore(time.Now().Add(-scrapeTaskRetention))
			if err != nil {
				return err
			}
			if n > 0 {
				a.log.Info("purged old scrape tasks", zap.Int64("count", n))
			}
			return nil
		},
	})
}
