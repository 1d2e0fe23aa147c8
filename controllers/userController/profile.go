package userController

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"connectx/config"
	"connectx/database"
	"connectx/middleware"
	"connectx/models"
	"connectx/utils"
)

// Me returns the caller's profile with college and course preloaded.
func Me(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)

	var user models.User
	err := database.Database.Db.Preload("College").Preload("Course").
		First(&user, "id = ? AND is_deleted = false", userID).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	user.Password = ""
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile fetched.", user)
}

// UpdateProfile updates the caller's editable fields.
func UpdateProfile(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)

	reqData := new(struct {
		Name     string `json:"name"`
		Username string `json:"username"`
		Batch    string `json:"batch"`
		CourseID *uint  `json:"courseId"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	updates := map[string]interface{}{}
	if name := strings.TrimSpace(reqData.Name); name != "" {
		updates["name"] = name
	}
	if username := strings.TrimSpace(reqData.Username); username != "" {
		updates["username"] = username
	}
	if batch := strings.TrimSpace(reqData.Batch); batch != "" {
		updates["batch"] = batch
	}
	if reqData.CourseID != nil {
		if err := db.First(&models.Course{}, "id = ? AND is_deleted = false", *reqData.CourseID).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Unknown course!", nil)
		}
		updates["course_id"] = *reqData.CourseID
	}

	if len(updates) == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Nothing to update!", nil)
	}

	if err := db.Model(&models.User{}).Where("id = ?", userID).Updates(updates).Error; err != nil {
		log.Printf("Error updating profile: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update profile!", nil)
	}

	var user models.User
	db.First(&user, "id = ?", userID)
	user.Password = ""
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile updated.", user)
}

// UploadAvatar stores a new avatar image.
func UploadAvatar(c *fiber.Ctx) error {
	return uploadImage(c, "avatar")
}

// UploadBanner stores a new banner image.
func UploadBanner(c *fiber.Ctx) error {
	return uploadImage(c, "banner")
}

func uploadImage(c *fiber.Ctx, field string) error {
	userID := c.Locals("userId").(uint)

	file, err := c.FormFile(field)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Image file is required!", nil)
	}

	fileName, err := utils.SaveUploadedFile(file, config.AppConfig.UploadDir)
	if err != nil {
		log.Printf("Error saving %s upload: %v", field, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to store the uploaded file!", nil)
	}

	url := utils.GetFileURL(fileName)
	if err := database.Database.Db.Model(&models.User{}).
		Where("id = ?", userID).Update(field, url).Error; err != nil {
		log.Printf("Error updating %s: %v", field, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update profile!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Image uploaded.", fiber.Map{field: url})
}
