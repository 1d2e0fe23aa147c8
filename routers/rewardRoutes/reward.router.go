package rewardRoutes

import (
	"github.com/gofiber/fiber/v2"

	rewardControllers "connectx/controllers/rewardController"
	"connectx/middleware"
)

func SetupRewardRoutes(app *fiber.App) {
	rewardGroup := app.Group("/api/rewards", middleware.JWTMiddleware)

	rewardGroup.Get("/", rewardControllers.List)
	rewardGroup.Post("/:id/redeem", rewardControllers.Redeem)
	rewardGroup.Get("/coupons", rewardControllers.MyCoupons)
}
