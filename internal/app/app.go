package app

import (
	"fmt"

	"yuanfen_backend/internal/config"
	"yuanfen_backend/internal/handlers"
	"yuanfen_backend/internal/logger"
	"yuanfen_backend/internal/middleware"
	"yuanfen_backend/internal/models"
	"yuanfen_backend/internal/repositories"
	"yuanfen_backend/internal/routes"
	"yuanfen_backend/internal/services"
	"yuanfen_backend/internal/validator"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	logger.Info("Connecting to database...")
	gormDB, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		logger.Fatal("Failed to connect to GORM", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := migrate(gormDB); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	ginRouter := SetupRouter(cfg, gormDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	serviceContainer := initializeServices(gormDB)
	appHandlers := initializeHandlers(serviceContainer)

	ginRouter := initializeGinRouter(cfg)
	routes.RegisterRoutes(ginRouter, appHandlers)
	return ginRouter
}

func initializeServices(gormDB *gorm.DB) *services.ServiceContainer {
	cardRepo := repositories.NewCardRepository(gormDB)
	matchRepo := repositories.NewMatchRepository(gormDB)
	messageRepo := repositories.NewMessageRepository(gormDB)
	actionRepo := repositories.NewActionRepository(gormDB)
	userRepo := repositories.NewUserRepository(gormDB)

	// Default rule: every positive action matches. Swap in ReciprocalPolicy
	// to require a like back first.
	policy := services.AlwaysMatchPolicy{}

	feedService := services.NewFeedService(cardRepo)
	actionService := services.NewActionService(cardRepo, matchRepo, actionRepo, policy)
	matchService := services.NewMatchService(matchRepo, cardRepo, userRepo)
	chatService := services.NewChatService(matchRepo, messageRepo)

	return &services.ServiceContainer{
		FeedService:   feedService,
		ActionService: actionService,
		MatchService:  matchService,
		ChatService:   chatService,
	}
}

func initializeHandlers(services *services.ServiceContainer) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	return &handlers.AppHandlers{
		FeedHandler:  handlers.NewFeedHandler(baseHandler, services.FeedService),
		MatchHandler: handlers.NewMatchHandler(baseHandler, services.ActionService, services.MatchService),
		ChatHandler:  handlers.NewChatHandler(baseHandler, services.ChatService),
	}
}

func initializeGinRouter(cfg *config.Config) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware(cfg))
	return router
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Card{},
		&models.Match{},
		&models.MatchDetail{},
		&models.Message{},
		&models.ActionRecord{},
	)
}
