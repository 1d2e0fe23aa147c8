package collegeRoutes

import (
	"github.com/gofiber/fiber/v2"

	collegeControllers "connectx/controllers/collegeController"
	"connectx/middleware"
)

func SetupCollegeRoutes(app *fiber.App) {
	collegeGroup := app.Group("/api/colleges")

	// Directory is public so signup can offer the college picker
	collegeGroup.Get("/", collegeControllers.List)
	collegeGroup.Get("/:id/courses", collegeControllers.Courses)

	adminGroup := collegeGroup.Group("", middleware.JWTMiddleware, middleware.RequireSuperAdmin)
	adminGroup.Post("/", collegeControllers.Create)
	adminGroup.Delete("/:id", collegeControllers.Delete)
	adminGroup.Post("/admins", collegeControllers.CreateAdmin)

	courseGroup := collegeGroup.Group("", middleware.JWTMiddleware, middleware.RequireAdmin)
	courseGroup.Post("/:id/courses", collegeControllers.AddCourse)
}
