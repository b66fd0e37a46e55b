// Storefront API server.
//
// Serves the typed procedure API for the storefront and its admin back
// office: catalog, orders, promotions, store settings, dashboard and
// object storage.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	catalogapp "github.com/lumacart/storefront/internal/catalog/application"
	catalogmysql "github.com/lumacart/storefront/internal/catalog/infrastructure/persistence/mysql"
	catalogrpc "github.com/lumacart/storefront/internal/catalog/interfaces/rpc"
	dashboardapp "github.com/lumacart/storefront/internal/dashboard/application"
	dashboardmysql "github.com/lumacart/storefront/internal/dashboard/infrastructure/persistence/mysql"
	dashboardrpc "github.com/lumacart/storefront/internal/dashboard/interfaces/rpc"
	identityapp "github.com/lumacart/storefront/internal/identity/application"
	identitymysql "github.com/lumacart/storefront/internal/identity/infrastructure/persistence/mysql"
	identityhttp "github.com/lumacart/storefront/internal/identity/interfaces/http"
	identityrpc "github.com/lumacart/storefront/internal/identity/interfaces/rpc"
	"github.com/lumacart/storefront/internal/identity/session"
	orderapp "github.com/lumacart/storefront/internal/order/application"
	ordermysql "github.com/lumacart/storefront/internal/order/infrastructure/persistence/mysql"
	orderrpc "github.com/lumacart/storefront/internal/order/interfaces/rpc"
	promoapp "github.com/lumacart/storefront/internal/promo/application"
	promomysql "github.com/lumacart/storefront/internal/promo/infrastructure/persistence/mysql"
	promorpc "github.com/lumacart/storefront/internal/promo/interfaces/rpc"
	"github.com/lumacart/storefront/internal/rpc"
	settingsapp "github.com/lumacart/storefront/internal/settings/application"
	settingsmysql "github.com/lumacart/storefront/internal/settings/infrastructure/persistence/mysql"
	settingsrpc "github.com/lumacart/storefront/internal/settings/interfaces/rpc"
	storagerpc "github.com/lumacart/storefront/internal/storage/interfaces/rpc"
	"github.com/lumacart/storefront/internal/storage/local"
	"github.com/lumacart/storefront/pkg/cache"
	"github.com/lumacart/storefront/pkg/config"
	"github.com/lumacart/storefront/pkg/db"
	"github.com/lumacart/storefront/pkg/logger"
	"github.com/lumacart/storefront/pkg/metrics"
	"github.com/lumacart/storefront/pkg/middleware"
	"github.com/lumacart/storefront/pkg/mq"
	"github.com/lumacart/storefront/pkg/ratelimit"
)

func main() {
	configPath := flag.String("config", "configs/server/config.toml", "path to the TOML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logger); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	logger.Info(ctx, "Starting storefront server",
		"service", cfg.ServiceName,
		"version", cfg.Version,
		"environment", cfg.Environment,
	)

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New(cfg.ServiceName)
		if err := m.Register(); err != nil {
			logger.Fatal(ctx, "Failed to register metrics", "error", err)
		}
		metrics.StartHTTPServer(cfg.Metrics.Port, cfg.Metrics.Path)
	}

	database, err := db.Init(db.Config{
		Driver:             cfg.Database.Driver,
		DSN:                cfg.Database.DSN,
		MaxOpenConns:       cfg.Database.MaxOpenConns,
		MaxIdleConns:       cfg.Database.MaxIdleConns,
		ConnMaxLifetime:    cfg.Database.ConnMaxLifetime,
		LogEnabled:         cfg.Database.LogEnabled,
		SlowQueryThreshold: cfg.Database.SlowQueryThreshold,
	}, m)
	if err != nil {
		logger.Fatal(ctx, "Failed to initialize database", "error", err)
	}
	defer database.Close()

	// Redis backs the settings cache and the rate limiter. Both degrade to
	// direct store access when it is absent.
	var redisCache *cache.RedisCache
	var rateLimiter ratelimit.RateLimiter
	if cfg.Redis.Enabled() {
		redisCache, err = cache.New(cache.Config{
			Host:         cfg.Redis.Host,
			Port:         cfg.Redis.Port,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			MaxPoolSize:  cfg.Redis.MaxPoolSize,
			ConnTimeout:  cfg.Redis.ConnTimeout,
			ReadTimeout:  cfg.Redis.ReadTimeout,
			WriteTimeout: cfg.Redis.WriteTimeout,
		})
		if err != nil {
			logger.Fatal(ctx, "Failed to initialize Redis", "error", err)
		}
		defer redisCache.Close()
		rateLimiter = ratelimit.NewRedisRateLimiter(redisCache.Client())
	}

	var producer *mq.Producer
	if cfg.Kafka.Enabled() {
		producer, err = mq.NewProducer(mq.Config{
			Brokers:      cfg.Kafka.Brokers,
			MaxRetries:   cfg.Kafka.MaxRetries,
			RetryBackoff: cfg.Kafka.RetryBackoff,
		})
		if err != nil {
			logger.Fatal(ctx, "Failed to initialize Kafka producer", "error", err)
		}
		defer producer.Close()
	}

	objects, err := local.New(cfg.Storage.RootDir, cfg.Storage.PublicBaseURL)
	if err != nil {
		logger.Fatal(ctx, "Failed to initialize object storage", "error", err)
	}

	sessions := session.NewManager(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.SessionTTL)*time.Hour)

	productRepo := catalogmysql.NewProductRepository(database.DB)
	orderRepo := ordermysql.NewOrderRepository(database.DB)

	identitySvc := identityapp.NewService(identitymysql.NewUserRepository(database.DB), sessions, cfg.Auth.OwnerOpenID)
	catalogSvc := catalogapp.NewService(productRepo, catalogmysql.NewCategoryRepository(database.DB))
	orderSvc := orderapp.NewService(orderRepo, ordermysql.NewCartRepository(database.DB), eventSink(producer), m)
	promoSvc := promoapp.NewService(
		promomysql.NewShippingRuleRepository(database.DB),
		promomysql.NewFeeRepository(database.DB),
		promomysql.NewOrderBumpRepository(database.DB),
		promomysql.NewGiftRepository(database.DB),
	)
	settingsSvc := settingsapp.NewService(
		settingsmysql.NewSettingRepository(database.DB),
		settingsmysql.NewPixelRepository(database.DB),
		settingsmysql.NewScriptRepository(database.DB),
		settingsmysql.NewCardRepository(database.DB),
		settingsCache(redisCache),
	)
	dashboardSvc := dashboardapp.NewService(dashboardmysql.NewStatsRepository(database.DB), orderRepo, productRepo)

	router := rpc.NewRouter()
	if m != nil {
		router = router.WithMetrics(m)
	}
	identityrpc.Register(router, identitySvc, cfg.Auth.CookieName)
	catalogrpc.Register(router, catalogSvc)
	orderrpc.Register(router, orderSvc)
	promorpc.Register(router, promoSvc)
	settingsrpc.Register(router, settingsSvc)
	dashboardrpc.Register(router, dashboardSvc)
	storagerpc.Register(router, objects, m)

	httpServer := newHTTPServer(cfg, router, identitySvc, rateLimiter, m)

	go func() {
		logger.Info(ctx, "Starting HTTP server", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal(ctx, "HTTP server error", "error", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info(ctx, "Shutting down storefront server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error(ctx, "HTTP server shutdown error", "error", err)
	}

	logger.Info(ctx, "Storefront server stopped")
}

func newHTTPServer(cfg *config.Config, router *rpc.Router, identitySvc *identityapp.Service, rateLimiter ratelimit.RateLimiter, m *metrics.Metrics) *http.Server {
	if cfg.Environment == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(middleware.Logging())
	engine.Use(middleware.Metrics(m))
	engine.Use(middleware.Recovery())
	engine.Use(middleware.CORS())
	engine.Use(middleware.RateLimit(rateLimiter, middleware.RateLimitSettings{
		Enabled: cfg.RateLimit.Enabled,
		QPS:     cfg.RateLimit.QPS,
		Burst:   cfg.RateLimit.Burst,
	}))
	engine.Use(identityhttp.Session(identitySvc, cfg.Auth.CookieName))

	router.Mount(engine)

	// Local object storage is served straight from disk.
	engine.Static("/objects", cfg.Storage.RootDir)

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": cfg.ServiceName,
			"version": cfg.Version,
		})
	})

	return &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:      engine,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeout) * time.Second,
	}
}

// eventSink adapts the optional Kafka producer to the order service's
// publisher port. A nil *mq.Producer must become a nil interface so the
// service can skip publishing.
func eventSink(p *mq.Producer) orderapp.EventPublisher {
	if p == nil {
		return nil
	}
	return p
}

// settingsCache keeps a nil *cache.RedisCache from turning into a non-nil
// interface value.
func settingsCache(c *cache.RedisCache) settingsapp.Cache {
	if c == nil {
		return nil
	}
	return c
}
