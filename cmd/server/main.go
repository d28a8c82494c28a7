package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	_ "time/tzdata"

	"papatacos/internal/adapters/events"
	"papatacos/internal/adapters/http/middleware"
	"papatacos/internal/adapters/http/routes"
	"papatacos/internal/adapters/persistence/models"
	"papatacos/internal/adapters/persistence/repositories"
	"papatacos/internal/config"
	"papatacos/internal/core/services"

	"github.com/gofiber/fiber/v2"

	_ "papatacos/docs" // Swagger docs
)

// @title Papa Tacos API
// @version 1.0
// @description Caisse Papa Tacos: recettes, dépenses, charges fixes et tableaux de bord

// @contact.name Papa Tacos

// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer config.CloseDatabase()

	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("❌ Failed to auto migrate: %v", err)
	}
	log.Println("✅ Database migration completed")

	// Entry events
	publisher, err := events.New(cfg.Events.AMQPURL, cfg.Events.Exchange)
	if err != nil {
		log.Printf("⚠️ Events disabled, broker unreachable: %v", err)
		publisher = events.NoopPublisher{}
	}
	defer publisher.Close()

	store := repositories.NewStore(db)
	svc := routes.NewServices(store, cfg, publisher)

	// Seed the first owner account
	if err := config.NewSeeder(cfg, svc.Auth).Run(context.Background()); err != nil {
		log.Printf("⚠️ Warning: Failed to seed owner: %v", err)
	}

	// Token purge and credential audit
	cronService := services.NewCronService(store, svc.Reports, cfg.Location)
	if err := cronService.Start(); err != nil {
		log.Fatalf("❌ Failed to start cron service: %v", err)
	}
	defer cronService.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Papa Tacos API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes
	routes.Setup(app, db, cfg, svc)

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("🚀 Server starting on port %s [MODE: %s, TZ: %s]", cfg.Port, cfg.AppMode, cfg.Location)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("❌ Error during shutdown: %v", err)
	}
	log.Println("✅ Server stopped gracefully")
}
