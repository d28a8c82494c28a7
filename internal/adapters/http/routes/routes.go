package routes

import (
	"papatacos/internal/adapters/http/handlers"
	"papatacos/internal/adapters/http/middleware"
	"papatacos/internal/adapters/persistence/repositories"
	"papatacos/internal/config"
	"papatacos/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Services bundles the services behind the HTTP API. The cron
// scheduler and the owner seeder share them with the handlers.
type Services struct {
	Auth    *services.AuthService
	Profile *services.ProfileService
	Entries *services.EntryService
	Reports *services.ReportService
}

// NewServices wires the services on top of store. Recorded entries
// purge the report cache and are forwarded to publisher.
func NewServices(store *repositories.Store, cfg *config.Config, publisher services.EventPublisher) *Services {
	reports := services.NewReportService(store, cfg.Location, cfg.Cache)

	observers := []services.EntryObserver{reports}
	if publisher != nil {
		observers = append(observers, services.PublishingObserver{Publisher: publisher})
	}

	return &Services{
		Auth:    services.NewAuthService(store, cfg),
		Profile: services.NewProfileService(store),
		Entries: services.NewEntryService(store, observers...),
		Reports: reports,
	}
}

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config, svc *Services) {
	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(db, cfg)
	authHandler := handlers.NewAuthHandler(svc.Auth, cfg)
	profileHandler := handlers.NewProfileHandler(svc.Profile, cfg)
	reportHandler := handlers.NewReportHandler(svc.Reports, cfg)
	entryHandler := handlers.NewEntryHandler(svc.Entries, svc.Reports)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API v1 group
	apiV1 := app.Group("/api/v1", middleware.NoCacheHeaders())
	apiV1.Get("/", healthHandler.APIInfo)

	requireAuth := middleware.AuthMiddleware(svc.Auth)

	setupAuthRoutes(apiV1.Group("/auth"), authHandler, requireAuth, cfg)
	setupProfileRoutes(apiV1.Group("/profile", requireAuth), profileHandler)
	setupDashboardRoutes(apiV1.Group("/dashboard", requireAuth), reportHandler)
	setupEntryRoutes(apiV1, entryHandler, reportHandler, requireAuth)
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, requireAuth fiber.Handler, cfg *config.Config) {
	// Public routes
	authLimiter := middleware.AuthRateLimiter(cfg.RateLimit.AuthMax)
	router.Post("/signup", authLimiter, handler.SignUp)
	router.Post("/login", authLimiter, handler.Login)
	router.Post("/refresh", handler.RefreshToken)
	router.Post("/logout", handler.Logout)

	// Protected routes
	router.Get("/me", requireAuth, handler.Me)
	router.Post("/logout-all", requireAuth, handler.LogoutAll)
}

// setupProfileRoutes configures the caller's own profile routes
func setupProfileRoutes(router fiber.Router, handler *handlers.ProfileHandler) {
	router.Get("/", handler.GetProfile)
	router.Put("/", handler.UpdateProfile)
	router.Put("/pin", handler.RotatePIN)
}

// setupDashboardRoutes configures the totals. Cashiers only see the day.
func setupDashboardRoutes(router fiber.Router, handler *handlers.ReportHandler) {
	router.Get("/daily", handler.Daily)
	router.Get("/monthly", middleware.OwnerOnly(), handler.Monthly)
	router.Get("/", middleware.OwnerOnly(), handler.Dashboard)
}

// setupEntryRoutes configures income, expenses and fixed charges
func setupEntryRoutes(router fiber.Router, handler *handlers.EntryHandler, reports *handlers.ReportHandler, requireAuth fiber.Handler) {
	income := router.Group("/income", requireAuth)
	income.Get("/", handler.ListIncome)
	income.Post("/", handler.RecordIncome)

	expenses := router.Group("/expenses", requireAuth)
	expenses.Get("/", handler.ListExpenses)
	expenses.Post("/", handler.RecordExpense)

	// Fixed charges (owner only)
	charges := router.Group("/charges", requireAuth, middleware.OwnerOnly())
	charges.Get("/", handler.ListCharges)
	charges.Post("/", handler.RecordCharge)
	charges.Get("/month", reports.ChargesOfMonth)
}
