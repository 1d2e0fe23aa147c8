package clubController

import (
	"log"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"connectx/database"
	"connectx/middleware"
	"connectx/models"
)

// List returns the clubs of the viewer's college.
func List(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)
	db := database.Database.Db

	var viewer models.User
	if err := db.First(&viewer, "id = ?", userID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}
	if viewer.CollegeID == nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Join a college to browse clubs!", nil)
	}

	var clubs []models.Club
	if err := db.Where("college_id = ? AND is_deleted = false", *viewer.CollegeID).
		Order("name ASC").Find(&clubs).Error; err != nil {
		log.Printf("Error fetching clubs: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch clubs!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Clubs fetched.", clubs)
}

// Create registers a new club in the caller's college (admin only).
func Create(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)

	reqData := new(struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		CollegeID   uint   `json:"collegeId"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}
	if strings.TrimSpace(reqData.Name) == "" || reqData.CollegeID == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Club name and college are required!", nil)
	}

	db := database.Database.Db

	if err := db.First(&models.College{}, "id = ? AND is_deleted = false", reqData.CollegeID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "College not found!", nil)
	}

	// College admins can only create clubs for their own college.
	if c.Locals("role") == models.RoleCollegeAdmin {
		var admin models.User
		if err := db.First(&admin, "id = ?", userID).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
		}
		if admin.CollegeID == nil || *admin.CollegeID != reqData.CollegeID {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You can only create clubs for your own college!", nil)
		}
	}

	club := models.Club{
		Name:        strings.TrimSpace(reqData.Name),
		Description: reqData.Description,
		CollegeID:   reqData.CollegeID,
		AdminID:     &userID,
	}
	if err := db.Create(&club).Error; err != nil {
		log.Printf("Error creating club: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create club!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Club created.", club)
}

// Join adds the caller to the club's member list.
func Join(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)

	clubID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid club id!", nil)
	}

	db := database.Database.Db

	var club models.Club
	if err := db.First(&club, "id = ? AND is_deleted = false", clubID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Club not found!", nil)
	}

	var viewer models.User
	if err := db.First(&viewer, "id = ?", userID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}
	if viewer.CollegeID == nil || *viewer.CollegeID != club.CollegeID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You can only join clubs at your own college!", nil)
	}

	var existing models.ClubMember
	err = db.Where("club_id = ? AND user_id = ?", clubID, userID).First(&existing).Error
	if err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "You are already a member!", nil)
	}
	if err != gorm.ErrRecordNotFound {
		log.Printf("Error looking up membership: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to join club!", nil)
	}

	member := models.ClubMember{UserID: userID, ClubID: uint(clubID)}
	if err := db.Create(&member).Error; err != nil {
		log.Printf("Error joining club: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to join club!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Joined the club.", member)
}

// Leave removes the caller's membership.
func Leave(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)

	clubID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid club id!", nil)
	}

	res := database.Database.Db.Unscoped().
		Where("club_id = ? AND user_id = ?", clubID, userID).
		Delete(&models.ClubMember{})
	if res.Error != nil {
		log.Printf("Error leaving club: %v", res.Error)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to leave club!", nil)
	}
	if res.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "You are not a member of this club!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Left the club.", nil)
}

// Members lists a club's members.
func Members(c *fiber.Ctx) error {
	clubID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid club id!", nil)
	}

	var members []models.ClubMember
	if err := database.Database.Db.Where("club_id = ?", clubID).
		Preload("User").Find(&members).Error; err != nil {
		log.Printf("Error fetching members: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch members!", nil)
	}

	for i := range members {
		members[i].User.Password = ""
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Members fetched.", members)
}
