package coinRoutes

import (
	"github.com/gofiber/fiber/v2"

	coinControllers "connectx/controllers/coinController"
	"connectx/middleware"
	coinValidators "connectx/validators/coin"
)

func SetupCoinRoutes(app *fiber.App) {
	coinGroup := app.Group("/api/coins", middleware.JWTMiddleware)

	coinGroup.Get("/bundles", coinControllers.Bundles)
	coinGroup.Post("/order", coinValidators.CreateOrder(), coinControllers.CreateOrder)
	coinGroup.Post("/verify", coinValidators.VerifyPayment(), coinControllers.VerifyPayment)
	coinGroup.Post("/gift", coinValidators.Gift(), coinControllers.Gift)
	coinGroup.Get("/history", coinControllers.History)
}
