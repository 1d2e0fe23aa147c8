package authRoutes

import (
	"github.com/gofiber/fiber/v2"

	authControllers "connectx/controllers/authController"
	"connectx/middleware"
	authValidators "connectx/validators/auth"
)

func SetupAuthRoutes(app *fiber.App) {
	limiter := middleware.NewRateLimiter(5, 10)

	authGroup := app.Group("/auth", limiter.Handler)

	authGroup.Post("/signup", authValidators.Signup(), authControllers.Signup)
	authGroup.Post("/login", authValidators.Login(), authControllers.Login)
	authGroup.Post("/send/otp", authValidators.SendOTP(), authControllers.SendOTP)
	authGroup.Patch("/verify/otp", authValidators.VerifyOTP(), authControllers.VerifyOTP)
	authGroup.Patch("/reset/password", authValidators.ResetPassword(), authControllers.ResetPassword)
}
