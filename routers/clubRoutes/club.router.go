package clubRoutes

import (
	"github.com/gofiber/fiber/v2"

	clubControllers "connectx/controllers/clubController"
	"connectx/middleware"
	clubValidators "connectx/validators/club"
)

func SetupClubRoutes(app *fiber.App) {
	clubGroup := app.Group("/api/clubs", middleware.JWTMiddleware, middleware.RequireVerified)

	clubGroup.Get("/", clubControllers.List)
	clubGroup.Post("/", middleware.RequireAdmin, clubValidators.Create(), clubControllers.Create)
	clubGroup.Post("/:id/join", clubControllers.Join)
	clubGroup.Delete("/:id/leave", clubControllers.Leave)
	clubGroup.Get("/:id/members", clubControllers.Members)
}
