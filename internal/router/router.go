package router

import (
	"context"
	"log"
	"time"

	"github.com/glorious-tales/backend/internal/handlers"
	"github.com/glorious-tales/backend/internal/mailer"
	"github.com/glorious-tales/backend/internal/middleware"
	"github.com/glorious-tales/backend/internal/models"
	"github.com/glorious-tales/backend/internal/notifier"
	"github.com/glorious-tales/backend/internal/repositories"
	"github.com/glorious-tales/backend/pkg/config"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, cfg *config.Config, pgdb *gorm.DB, mgClient *mongo.Client) {
	// AutoMigrate PostgreSQL models
	err := pgdb.AutoMigrate(
		&models.Admin{},
		&models.Subscription{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed.")

	mongoDB := mgClient.Database(cfg.MongoDBName)

	// --- Initialize Repositories ---
	adminRepo := repositories.NewPostgresAdminRepository(pgdb)
	subscriptionRepo := repositories.NewPostgresSubscriptionRepository(pgdb)
	storyRepo := repositories.NewMongoStoryRepository(mongoDB)
	commentRepo := repositories.NewMongoCommentRepository(mongoDB)
	suggestionRepo := repositories.NewMongoSuggestionRepository(mongoDB)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := storyRepo.EnsureIndexes(ctx); err != nil {
		log.Printf("Failed to create story indexes: %v", err)
	}

	// --- Mail + publication notifier ---
	smtpMailer := mailer.NewSMTPMailer(cfg)
	storyNotifier := notifier.NewEmailNotifier(subscriptionRepo, smtpMailer, cfg.FrontendURL)

	// Health check - always accessible
	e.GET("/api/health", handlers.HealthCheck)

	api := e.Group("/api")
	auth := middleware.JWTAuthMiddleware(cfg.JWTSecret, adminRepo)

	authHandler := handlers.NewAuthHandler(adminRepo, cfg.JWTSecret)
	authHandler.RegisterAuthRoutes(api, auth)
	log.Println("Admin routes configured.")

	storyHandler := handlers.NewStoryHandler(storyRepo, storyNotifier)
	storyHandler.RegisterStoryRoutes(api, auth)
	log.Println("Story routes configured.")

	commentHandler := handlers.NewCommentHandler(commentRepo, storyRepo)
	commentHandler.RegisterCommentRoutes(api, auth)
	log.Println("Comment routes configured.")

	subscriptionHandler := handlers.NewSubscriptionHandler(subscriptionRepo, smtpMailer, cfg.FrontendURL)
	subscriptionHandler.RegisterSubscriptionRoutes(api, auth)
	log.Println("Subscription routes configured.")

	suggestionHandler := handlers.NewSuggestionHandler(suggestionRepo)
	suggestionHandler.RegisterSuggestionRoutes(api, auth)
	log.Println("Suggestion routes configured.")

	log.Println("All routes configured.")
}
