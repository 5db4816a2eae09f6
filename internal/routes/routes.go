package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/municipalreports/backend/internal/config"
	"github.com/municipalreports/backend/internal/handlers"
	"github.com/municipalreports/backend/internal/middleware"
	"github.com/municipalreports/backend/internal/models"
	"gorm.io/gorm"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	reportHandler *handlers.ReportHandler,
	imageHandler *handlers.ImageHandler,
	dashboardHandler *handlers.DashboardHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Identity — public endpoints get a stricter limit: 10 req/min per IP
	identity := api.Group("/identity")
	identity.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	identity.Post("/register", authHandler.Register)
	identity.Post("/login", authHandler.Login)
	identity.Post("/refresh", authHandler.Refresh)
	identity.Post("/google-login", authHandler.GoogleSignIn)

	// Identity — protected
	api.Post("/identity/logout", middleware.JWTProtected(cfg), authHandler.Logout)
	api.Get("/identity/profile", middleware.JWTProtected(cfg), authHandler.GetProfile)
	api.Put("/identity/profile", middleware.JWTProtected(cfg), authHandler.UpdateProfile)
	api.Post("/identity/change-password", middleware.JWTProtected(cfg), authHandler.ChangePassword)
	api.Post("/identity/assign-role",
		middleware.JWTProtected(cfg),
		middleware.RoleRequired(db, models.RoleAdmin),
		authHandler.AssignRole)

	// Reports — submission works with or without an account
	api.Post("/reports", middleware.OptionalJWT(cfg), reportHandler.Create)
	api.Get("/reports/search", reportHandler.Search)
	api.Get("/reports/filters", reportHandler.FilterOptions)
	api.Get("/reports/my", middleware.JWTProtected(cfg), reportHandler.ListMine)
	api.Get("/reports/:id", reportHandler.Get)

	staffOnly := []fiber.Handler{
		middleware.JWTProtected(cfg),
		middleware.RoleRequired(db, models.RoleStaff, models.RoleAdmin),
	}
	api.Put("/reports/:id/status", append(staffOnly, reportHandler.UpdateStatus)...)
	api.Delete("/reports/:id", append(staffOnly, reportHandler.Delete)...)

	// Images
	api.Post("/images/upload/:reportId", middleware.OptionalJWT(cfg), imageHandler.Upload)
	api.Get("/images/view/:filename", imageHandler.View)
	api.Delete("/images/:reportId", append(staffOnly, imageHandler.Delete)...)

	// Dashboard — staff and admin only
	dashboard := api.Group("/dashboard",
		middleware.JWTProtected(cfg),
		middleware.RoleRequired(db, models.RoleStaff, models.RoleAdmin))
	dashboard.Get("/overview", dashboardHandler.Overview)
	dashboard.Get("/category-stats", dashboardHandler.CategoryStats)
	dashboard.Get("/monthly-trends", dashboardHandler.MonthlyTrends)
	dashboard.Get("/recent-activity", dashboardHandler.RecentActivity)
	dashboard.Get("/performance-metrics", dashboardHandler.PerformanceMetrics)
}
