package legalController

import (
	"github.com/gofiber/fiber/v2"

	"connectx/middleware"
)

const termsOfService = `ConnectX Terms of Service

1. ConnectX is a social platform for verified college students.
2. Accounts must belong to real, currently enrolled students. Identity
   verification may be required to unlock platform features.
3. Content that harasses, impersonates or threatens other users is removed
   and may lead to account suspension.
4. Coins and premium subscriptions are non-refundable except where required
   by law.`

const privacyPolicy = `ConnectX Privacy Policy

1. We store the profile details you provide and the documents you upload
   for identity verification.
2. Verification images are used only to confirm your student identity and
   are never shared with other users.
3. Payment details are processed by our payment gateway; we store only
   order references.
4. You can request deletion of your account and associated data at any
   time.`

// Terms serves the terms of service.
func Terms(c *fiber.Ctx) error {
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Terms of service.", fiber.Map{
		"content": termsOfService,
	})
}

// Privacy serves the privacy policy.
func Privacy(c *fiber.Ctx) error {
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Privacy policy.", fiber.Map{
		"content": privacyPolicy,
	})
}
