package verificationController

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"connectx/config"
	"connectx/database"
	"connectx/middleware"
	"connectx/services/verification"
	"connectx/utils"
)

var service *verification.Service

// Init wires the verification service once the database is up.
func Init() {
	service = verification.NewService(database.Database.Db, verification.NewDefaultEngine())
}

// IDUpload accepts the student ID card image and opens (or refreshes) a
// verification attempt.
func IDUpload(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)

	file, err := c.FormFile("idCard")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "ID card image is required!", nil)
	}

	fileName, err := utils.SaveUploadedFile(file, config.AppConfig.UploadDir)
	if err != nil {
		log.Printf("Error saving ID card upload: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to store the uploaded file!", nil)
	}

	rec, err := service.SubmitIDCard(userID, utils.GetFileURL(fileName))
	if err != nil {
		return verificationErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "ID card uploaded. Upload your face photo to continue.", rec)
}

// FaceUpload accepts the face photo, runs the scoring engine and applies the
// auto-decision thresholds.
func FaceUpload(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)

	file, err := c.FormFile("faceImage")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Face image is required!", nil)
	}

	fileName, err := utils.SaveUploadedFile(file, config.AppConfig.UploadDir)
	if err != nil {
		log.Printf("Error saving face upload: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to store the uploaded file!", nil)
	}

	rec, err := service.SubmitFaceImage(userID, utils.GetFileURL(fileName))
	if err != nil {
		return verificationErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Verification processed.", rec)
}

// Status reports the latest verification attempt and retry window.
func Status(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)

	report, err := service.Status(userID)
	if err != nil {
		return verificationErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Verification status fetched.", report)
}
