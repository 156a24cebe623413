package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	warblerHTTP "warbler/internal/controller/http"
	"warbler/internal/repo/persistent"
	"warbler/internal/usecase"
	"warbler/pkg/cache"
	"warbler/pkg/config"
	"warbler/pkg/database"
	"warbler/pkg/logger"
	"warbler/pkg/middleware"
	"warbler/pkg/s3"
	"warbler/pkg/session"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "warbler/docs" // Swagger docs
)

type App struct {
	cfg         *config.Config
	log         *logger.Logger
	db          *gorm.DB
	redisClient *redis.Client
	s3Client    *s3.Client
	sessions    *session.Service
	httpServer  *http.Server
}

func NewApp(cfg *config.Config) (*App, error) {
	log := logger.New()

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		return nil, err
	}

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Warn("Failed to connect to redis: %v (continuing without cache)", err)
		redisClient = nil
	}

	s3Client, err := s3.NewClient(cfg)
	if err != nil {
		log.Warn("Failed to create S3 client: %v (continuing without image uploads)", err)
		s3Client = nil
	}

	sessions := session.NewService(cfg.SessionSecret)

	return &App{
		cfg:         cfg,
		log:         log,
		db:          db,
		redisClient: redisClient,
		s3Client:    s3Client,
		sessions:    sessions,
	}, nil
}

func (a *App) Run() error {
	// Initialize repositories
	userRepo := persistent.NewUserRepository(a.db)
	messageRepo := persistent.NewMessageRepository(a.db)

	// Initialize use cases
	userUseCase := usecase.NewUserUseCase(userRepo, a.s3Client, a.log)
	messageUseCase := usecase.NewMessageUseCase(messageRepo, userRepo, a.redisClient, a.log)

	// Initialize HTTP handlers
	authHandler := warblerHTTP.NewAuthHandler(userUseCase, a.sessions, a.log)
	userHandler := warblerHTTP.NewUserHandler(userUseCase, messageUseCase, a.sessions, a.log)
	messageHandler := warblerHTTP.NewMessageHandler(userUseCase, messageUseCase, a.log)
	apiHandler := warblerHTTP.NewAPIHandler(userUseCase, messageUseCase, a.log)

	// Setup router
	r := gin.Default()
	r.LoadHTMLGlob("web/templates/*.html")
	r.Static("/static", "./web/static")

	r.Use(middleware.NoStore())
	r.Use(middleware.Session(a.sessions))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// HTML pages
	pages := r.Group("")
	pages.Use(middleware.CSRF())
	{
		pages.GET("/", messageHandler.Homepage)

		loginLimit := middleware.RateLimit(a.redisClient, 10, time.Minute)
		pages.GET("/signup", authHandler.SignupPage)
		pages.POST("/signup", loginLimit, authHandler.Signup)
		pages.GET("/login", authHandler.LoginPage)
		pages.POST("/login", loginLimit, authHandler.Login)

		pages.GET("/users", userHandler.ListUsers)
		pages.GET("/users/:id", userHandler.ShowUser)
		pages.GET("/messages/:id", messageHandler.ShowMessage)

		// Protected routes
		protected := pages.Group("")
		protected.Use(middleware.RequireUser())
		{
			protected.POST("/logout", authHandler.Logout)

			protected.GET("/users/:id/following", userHandler.ShowFollowing)
			protected.GET("/users/:id/followers", userHandler.ShowFollowers)
			protected.GET("/users/:id/likes", userHandler.ShowLikes)
			protected.POST("/users/follow/:id", userHandler.Follow)
			protected.POST("/users/stop-following/:id", userHandler.Unfollow)
			protected.GET("/users/profile", userHandler.ProfilePage)
			protected.POST("/users/profile", userHandler.UpdateProfile)
			protected.POST("/users/delete", userHandler.DeleteUser)

			protected.GET("/messages/new", messageHandler.NewMessagePage)
			protected.POST("/messages/new", messageHandler.CreateMessage)
			protected.POST("/messages/:id/delete", messageHandler.DeleteMessage)
			protected.POST("/messages/:id/like", messageHandler.ToggleLike)
		}
	}

	// JSON API
	api := r.Group("/api/v1")
	api.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000"},
		AllowMethods:     []string{"GET", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))
	{
		api.GET("/users", apiHandler.SearchUsers)
		api.GET("/users/:id", apiHandler.GetUser)
		api.GET("/messages/:id", apiHandler.GetMessage)
		api.GET("/timeline", middleware.RequireUserAPI(), apiHandler.Timeline)
	}

	// Create HTTP server
	a.httpServer = &http.Server{
		Addr:    ":" + a.cfg.ServerPort,
		Handler: r,
	}

	// Start server in a goroutine
	go func() {
		a.log.Info("Warbler starting on port %s", a.cfg.ServerPort)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	return nil
}

func (a *App) Wait() {
	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	a.log.Info("Shutting down...")
}

func (a *App) Shutdown() error {
	// The context is used to inform the server it has 5 seconds to finish
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Close database connection
	sqlDB, err := a.db.DB()
	if err == nil {
		if err := sqlDB.Close(); err != nil {
			a.log.Error("Error closing database: %v", err)
		}
	}

	// Close Redis connection
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.log.Error("Error closing Redis: %v", err)
		}
	}

	// Shutdown server
	if err := a.httpServer.Shutdown(ctx); err != nil {
		a.log.Error("Server forced to shutdown: %v", err)
		return err
	}

	a.log.Info("Warbler exited")
	return nil
}
