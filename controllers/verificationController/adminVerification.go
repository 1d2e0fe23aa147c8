package verificationController

import (
	"errors"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"connectx/middleware"
	"connectx/models"
	"connectx/services/verification"
)

// verificationErrorResponse maps the service's typed errors onto the API
// envelope.
func verificationErrorResponse(c *fiber.Ctx, err error) error {
	if cd, ok := verification.AsCooldown(err); ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false,
			"Please wait before retrying verification.", fiber.Map{"retryAt": cd.RetryAt})
	}

	switch {
	case errors.Is(err, verification.ErrAlreadyVerified):
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "You are already verified!", nil)
	case errors.Is(err, verification.ErrNoIDCard):
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Upload your ID card first!", nil)
	case errors.Is(err, verification.ErrNotFound):
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Record not found!", nil)
	case errors.Is(err, verification.ErrAlreadyProcessed):
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "This request was already processed!", nil)
	default:
		log.Printf("Verification error: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process verification!", nil)
	}
}

// PendingList returns records awaiting review. College admins only see their
// own college; super admins see everything.
func PendingList(c *fiber.Ctx) error {
	role, _ := c.Locals("role").(string)

	var collegeID *uint
	if role == models.RoleCollegeAdmin {
		id, ok := c.Locals("collegeId").(uint)
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Your account is not linked to a college!", nil)
		}
		collegeID = &id
	}

	records, err := service.ListPending(collegeID)
	if err != nil {
		return verificationErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Pending verifications fetched.", records)
}

// Review settles a pending record with an admin decision.
func Review(c *fiber.Ctx) error {
	reviewerID := c.Locals("userId").(uint)

	recordID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid record id!", nil)
	}

	reqData := new(struct {
		Status string `json:"status"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	var rec *models.Verification
	switch reqData.Status {
	case models.VerificationStatusApproved:
		rec, err = service.Approve(uint(recordID), reviewerID)
	case models.VerificationStatusRejected:
		rec, err = service.Reject(uint(recordID), reviewerID)
	default:
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Status must be approved or rejected!", nil)
	}
	if err != nil {
		return verificationErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Verification reviewed.", rec)
}

// Bypass force-approves a user without the document flow.
func Bypass(c *fiber.Ctx) error {
	reviewerID := c.Locals("userId").(uint)

	reqData := new(struct {
		UserID uint `json:"userId"`
	})
	if err := c.BodyParser(reqData); err != nil || reqData.UserID == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid user id!", nil)
	}

	if err := service.Bypass(reqData.UserID, reviewerID); err != nil {
		return verificationErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User verification bypassed.", nil)
}
