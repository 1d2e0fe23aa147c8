package verificationRoutes

import (
	"github.com/gofiber/fiber/v2"

	verificationControllers "connectx/controllers/verificationController"
	"connectx/middleware"
)

func SetupVerificationRoutes(app *fiber.App) {
	limiter := middleware.NewRateLimiter(2, 5)

	verifyGroup := app.Group("/api/verify", middleware.JWTMiddleware)

	verifyGroup.Post("/id-upload", limiter.Handler, verificationControllers.IDUpload)
	verifyGroup.Post("/face-upload", limiter.Handler, verificationControllers.FaceUpload)
	verifyGroup.Get("/status", verificationControllers.Status)

	adminGroup := app.Group("/api/admin", middleware.JWTMiddleware, middleware.RequireAdmin)

	adminGroup.Get("/verifications/pending", verificationControllers.PendingList)
	adminGroup.Put("/verifications/:id", verificationControllers.Review)
	adminGroup.Post("/verification/bypass", middleware.RequireSuperAdmin, verificationControllers.Bypass)
}
