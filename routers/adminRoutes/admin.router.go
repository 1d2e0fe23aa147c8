package adminRoutes

import (
	"github.com/gofiber/fiber/v2"

	adminControllers "connectx/controllers/adminController"
	"connectx/middleware"
)

func SetupAdminRoutes(app *fiber.App) {
	superGroup := app.Group("/api/admin", middleware.JWTMiddleware, middleware.RequireSuperAdmin)

	superGroup.Get("/analytics", adminControllers.Analytics)
	superGroup.Delete("/users/:id", adminControllers.DeleteUser)
	superGroup.Delete("/posts/:id", adminControllers.DeletePost)

	collegeGroup := app.Group("/api/college-admin", middleware.JWTMiddleware, middleware.RequireAdmin)

	collegeGroup.Get("/analytics", adminControllers.CollegeAnalytics)
	collegeGroup.Post("/announcements", adminControllers.CreateAnnouncement)

	app.Get("/api/announcements", middleware.JWTMiddleware, adminControllers.Announcements)
}
