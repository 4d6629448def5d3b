package internal

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"microposts/pkg/cache"
	"microposts/pkg/config"
	"microposts/pkg/database"
	"microposts/pkg/logger"
	"microposts/pkg/middleware"
	postHTTP "microposts/services/tumblog/internal/controller/http"
	"microposts/services/tumblog/internal/repo/persistent"
	"microposts/services/tumblog/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"

	_ "microposts/services/tumblog/docs" // Swagger docs
)

const (
	serviceName    = "tumblog"
	defaultMongoDB = "tumblog"
)

type App struct {
	cfg         *config.Config
	log         *logger.Logger
	mongoClient *mongo.Client
	db          *gorm.DB
	redisClient *redis.Client
	postRepo    persistent.PostRepository
	httpServer  *http.Server
}

func NewApp(cfg *config.Config) (*App, error) {
	log := logger.New()
	app := &App{cfg: cfg, log: log}

	switch cfg.StorageType {
	case config.StorageMongo:
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		fallback := cfg.MongoDatabase
		if fallback == "" {
			fallback = defaultMongoDB
		}
		client, db, err := database.NewMongoDB(ctx, cfg.MongoURI, fallback)
		if err != nil {
			log.Error("Failed to connect to MongoDB: %v", err)
			return nil, err
		}

		coll, err := persistent.EnsurePostCollection(ctx, db)
		if err != nil {
			log.Error("Failed to prepare posts collection: %v", err)
			_ = client.Disconnect(context.Background())
			return nil, err
		}
		log.Info("MongoDB connected (database %s)", db.Name())

		app.mongoClient = client
		app.postRepo = persistent.NewMongoPostRepository(coll)
	case config.StoragePostgres:
		db, err := database.NewPostgresDB(cfg)
		if err != nil {
			log.Error("Failed to connect to database: %v", err)
			return nil, err
		}

		app.db = db
		app.postRepo = persistent.NewGormPostRepository(db)
	default:
		return nil, fmt.Errorf("unsupported storage type %q", cfg.StorageType)
	}

	if cfg.RateLimitPerMinute > 0 {
		redisClient, err := cache.NewRedisClient(cfg)
		if err != nil {
			// Redis is optional, the API runs without rate limiting
			log.Warn("Redis unavailable, rate limiting disabled: %v", err)
		} else {
			app.redisClient = redisClient
		}
	}

	return app, nil
}

// NewRouter builds the HTTP surface of the service. A nil redisClient disables rate limiting.
func NewRouter(cfg *config.Config, postHandler *postHTTP.PostHandler, redisClient *redis.Client) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(middleware.PrometheusMiddleware(serviceName))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")
	if redisClient != nil && cfg.RateLimitPerMinute > 0 {
		api.Use(middleware.RateLimitMiddleware(redisClient, cfg.RateLimitPerMinute, time.Minute))
	}
	{
		api.GET("/posts", postHandler.ListPosts)
		api.POST("/posts", postHandler.CreatePost)
		api.POST("/posts/:id/comments", postHandler.AddComment)
	}

	return r
}

func (a *App) Run() error {
	postUseCase := usecase.NewPostUseCase(a.postRepo, a.log)
	postHandler := postHTTP.NewPostHandler(postUseCase, a.log)

	a.httpServer = &http.Server{
		Addr:    ":" + a.cfg.ServerPort,
		Handler: NewRouter(a.cfg, postHandler, a.redisClient),
	}

	go func() {
		a.log.Info("Tumblog service starting on port %s (storage: %s)", a.cfg.ServerPort, a.cfg.StorageType)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	return nil
}

func (a *App) Wait() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	a.log.Info("Shutting down tumblog service...")
}

func (a *App) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var shutdownErr error
	if a.httpServer != nil {
		if err := a.httpServer.Shutdown(ctx); err != nil {
			a.log.Error("Server forced to shutdown: %v", err)
			shutdownErr = err
		}
	}

	if a.mongoClient != nil {
		if err := a.mongoClient.Disconnect(ctx); err != nil {
			a.log.Error("Error closing MongoDB: %v", err)
		}
	}

	if a.db != nil {
		sqlDB, err := a.db.DB()
		if err == nil {
			if err := sqlDB.Close(); err != nil {
				a.log.Error("Error closing database: %v", err)
			}
		}
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.log.Error("Error closing Redis: %v", err)
		}
	}

	if shutdownErr == nil {
		a.log.Info("Tumblog service exited")
	}
	return shutdownErr
}
