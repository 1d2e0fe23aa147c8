package eventRoutes

import (
	"github.com/gofiber/fiber/v2"

	eventControllers "connectx/controllers/eventController"
	"connectx/middleware"
)

func SetupEventRoutes(app *fiber.App) {
	eventGroup := app.Group("/api/events", middleware.JWTMiddleware, middleware.RequireVerified)

	eventGroup.Get("/", eventControllers.List)
	eventGroup.Post("/", middleware.RequireAdmin, eventControllers.Create)
	eventGroup.Post("/:id/rsvp", eventControllers.RSVP)
	eventGroup.Delete("/:id/rsvp", eventControllers.CancelRSVP)
	eventGroup.Get("/:id/attendees", eventControllers.Attendees)
}
