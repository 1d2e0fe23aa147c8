package userRoutes

import (
	"github.com/gofiber/fiber/v2"

	userControllers "connectx/controllers/userController"
	"connectx/middleware"
)

func SetupUserRoutes(app *fiber.App) {
	limiter := middleware.NewRateLimiter(2, 5)

	userGroup := app.Group("/api/user", middleware.JWTMiddleware)

	userGroup.Get("/me", userControllers.Me)
	userGroup.Put("/profile", userControllers.UpdateProfile)
	userGroup.Post("/avatar", limiter.Handler, userControllers.UploadAvatar)
	userGroup.Post("/banner", limiter.Handler, userControllers.UploadBanner)
}
