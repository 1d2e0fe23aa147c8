package adminController

import (
	"log"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"connectx/database"
	"connectx/middleware"
	"connectx/models"
)

// Analytics returns platform counters for the super admin dashboard.
func Analytics(c *fiber.Ctx) error {
	db := database.Database.Db

	var totalUsers, verifiedUsers, pendingVerifications, totalColleges, totalPosts, premiumUsers int64
	db.Model(&models.User{}).Where("is_deleted = false").Count(&totalUsers)
	db.Model(&models.User{}).Where("is_deleted = false AND verified_status = ?", models.VerifiedStatusApproved).Count(&verifiedUsers)
	db.Model(&models.Verification{}).Where("status = ?", models.VerificationStatusPending).Count(&pendingVerifications)
	db.Model(&models.College{}).Where("is_deleted = false").Count(&totalColleges)
	db.Model(&models.Post{}).Where("is_deleted = false").Count(&totalPosts)
	db.Model(&models.User{}).Where("is_deleted = false AND is_premium = true").Count(&premiumUsers)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Analytics fetched.", fiber.Map{
		"totalUsers":           totalUsers,
		"verifiedUsers":        verifiedUsers,
		"pendingVerifications": pendingVerifications,
		"totalColleges":        totalColleges,
		"totalPosts":           totalPosts,
		"premiumUsers":         premiumUsers,
	})
}

// CollegeAnalytics returns counters scoped to the admin's own college.
func CollegeAnalytics(c *fiber.Ctx) error {
	collegeID, ok := c.Locals("collegeId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Your account is not linked to a college!", nil)
	}

	db := database.Database.Db

	var students, verified, pending, clubs, events int64
	db.Model(&models.User{}).Where("college_id = ? AND is_deleted = false AND role = ?", collegeID, models.RoleStudent).Count(&students)
	db.Model(&models.User{}).Where("college_id = ? AND is_deleted = false AND verified_status = ?", collegeID, models.VerifiedStatusApproved).Count(&verified)
	db.Model(&models.Verification{}).
		Joins("JOIN users ON users.id = verifications.user_id").
		Where("verifications.status = ? AND users.college_id = ?", models.VerificationStatusPending, collegeID).
		Count(&pending)
	db.Model(&models.Club{}).Where("college_id = ? AND is_deleted = false", collegeID).Count(&clubs)
	db.Model(&models.Event{}).Where("college_id = ? AND is_deleted = false", collegeID).Count(&events)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "College analytics fetched.", fiber.Map{
		"students":             students,
		"verifiedStudents":     verified,
		"pendingVerifications": pending,
		"clubs":                clubs,
		"events":               events,
	})
}

// DeleteUser soft-deletes a user account.
func DeleteUser(c *fiber.Ctx) error {
	userID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid user id!", nil)
	}

	res := database.Database.Db.Model(&models.User{}).
		Where("id = ? AND is_deleted = false", userID).
		Update("is_deleted", true)
	if res.Error != nil {
		log.Printf("Error deleting user: %v", res.Error)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete user!", nil)
	}
	if res.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User deleted.", nil)
}

// DeletePost soft-deletes any post (moderation).
func DeletePost(c *fiber.Ctx) error {
	postID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid post id!", nil)
	}

	res := database.Database.Db.Model(&models.Post{}).
		Where("id = ? AND is_deleted = false", postID).
		Update("is_deleted", true)
	if res.Error != nil {
		log.Printf("Error deleting post: %v", res.Error)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete post!", nil)
	}
	if res.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Post not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Post deleted.", nil)
}

// CreateAnnouncement publishes a college-wide notice.
func CreateAnnouncement(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)

	reqData := new(struct {
		CollegeID uint   `json:"collegeId"`
		Title     string `json:"title"`
		Message   string `json:"message"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	errors := make(map[string]string)
	if strings.TrimSpace(reqData.Title) == "" {
		errors["title"] = "Title is required!"
	}
	if strings.TrimSpace(reqData.Message) == "" {
		errors["message"] = "Message is required!"
	}
	if reqData.CollegeID == 0 {
		errors["collegeId"] = "College id is required!"
	}
	if len(errors) > 0 {
		return middleware.ValidationErrorResponse(c, errors)
	}

	db := database.Database.Db

	if err := db.First(&models.College{}, "id = ? AND is_deleted = false", reqData.CollegeID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "College not found!", nil)
	}

	announcement := models.Announcement{
		CollegeID: reqData.CollegeID,
		Title:     strings.TrimSpace(reqData.Title),
		Message:   strings.TrimSpace(reqData.Message),
		CreatedBy: userID,
	}
	if err := db.Create(&announcement).Error; err != nil {
		log.Printf("Error creating announcement: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create announcement!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Announcement published.", announcement)
}

// Announcements lists the viewer's college notices, newest first.
func Announcements(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)
	db := database.Database.Db

	var viewer models.User
	if err := db.First(&viewer, "id = ?", userID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}
	if viewer.CollegeID == nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Join a college to see announcements!", nil)
	}

	var announcements []models.Announcement
	if err := db.Where("college_id = ? AND is_deleted = false", *viewer.CollegeID).
		Order("id DESC").Limit(50).Find(&announcements).Error; err != nil {
		log.Printf("Error fetching announcements: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch announcements!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Announcements fetched.", announcements)
}
