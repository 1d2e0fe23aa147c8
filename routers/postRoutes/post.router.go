package postRoutes

import (
	"github.com/gofiber/fiber/v2"

	postControllers "connectx/controllers/postController"
	"connectx/middleware"
)

func SetupPostRoutes(app *fiber.App) {
	limiter := middleware.NewRateLimiter(5, 10)

	// Feed and posting are for verified students only
	postGroup := app.Group("/api/posts", middleware.JWTMiddleware, middleware.RequireVerified)

	postGroup.Post("/", limiter.Handler, postControllers.Create)
	postGroup.Get("/feed", postControllers.Feed)
	postGroup.Post("/:id/like", limiter.Handler, postControllers.ToggleLike)
	postGroup.Post("/:id/comments", limiter.Handler, postControllers.AddComment)
	postGroup.Get("/:id/comments", postControllers.Comments)
	postGroup.Delete("/:id", postControllers.Delete)
}
