package premiumRoutes

import (
	"github.com/gofiber/fiber/v2"

	premiumControllers "connectx/controllers/premiumController"
	"connectx/middleware"
)

func SetupPremiumRoutes(app *fiber.App) {
	premiumGroup := app.Group("/api/premium", middleware.JWTMiddleware)

	premiumGroup.Post("/subscribe", premiumControllers.Subscribe)
	premiumGroup.Get("/status", premiumControllers.Status)
	premiumGroup.Post("/cancel", premiumControllers.Cancel)

	// Gateway callback, authenticated by the gateway not by a user token
	app.Post("/api/premium/webhook", premiumControllers.Webhook)
}
