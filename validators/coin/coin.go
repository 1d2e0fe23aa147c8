package coinValidator

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"connectx/middleware"
)

var validate = validator.New()

// CreateOrder validator middleware
func CreateOrder() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			BundleID uint `json:"bundleId" validate:"required"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"bundleId": "Bundle id is required!",
			})
		}

		return c.Next()
	}
}

// VerifyPayment validator middleware
func VerifyPayment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			OrderID   string `json:"orderId" validate:"required"`
			PaymentID string `json:"paymentId" validate:"required"`
			Signature string `json:"signature" validate:"required"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			errors := make(map[string]string)
			for _, fieldErr := range err.(validator.ValidationErrors) {
				errors[fieldErr.Field()] = "This field is required!"
			}
			return middleware.ValidationErrorResponse(c, errors)
		}

		return c.Next()
	}
}

// Gift validator middleware
func Gift() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			ToUser uint `json:"toUser" validate:"required"`
			Coins  uint `json:"coins" validate:"required,min=1,max=100000"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			errors := make(map[string]string)
			for _, fieldErr := range err.(validator.ValidationErrors) {
				switch fieldErr.Field() {
				case "ToUser":
					errors["toUser"] = "Recipient is required!"
				case "Coins":
					errors["coins"] = "Coins must be between 1 and 100000!"
				}
			}
			return middleware.ValidationErrorResponse(c, errors)
		}

		return c.Next()
	}
}
