package searchController

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"connectx/database"
	"connectx/middleware"
	"connectx/models"
)

const searchLimit = 20

// Search runs a case-insensitive lookup across users, posts, clubs and
// events, scoped to the viewer's college.
func Search(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)

	term := strings.TrimSpace(c.Query("q"))
	if len(term) < 2 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Search term must be at least 2 characters!", nil)
	}
	pattern := "%" + strings.ToLower(term) + "%"

	db := database.Database.Db

	var viewer models.User
	if err := db.First(&viewer, "id = ?", userID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	var users []models.User
	userQuery := db.Where("is_deleted = false").
		Where("LOWER(name) LIKE ? OR LOWER(username) LIKE ?", pattern, pattern)
	if viewer.CollegeID != nil {
		userQuery = userQuery.Where("college_id = ?", *viewer.CollegeID)
	}
	if err := userQuery.Limit(searchLimit).Find(&users).Error; err != nil {
		log.Printf("Error searching users: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Search failed!", nil)
	}
	for i := range users {
		users[i].Password = ""
	}

	var clubs []models.Club
	clubQuery := db.Where("is_deleted = false").Where("LOWER(name) LIKE ?", pattern)
	if viewer.CollegeID != nil {
		clubQuery = clubQuery.Where("college_id = ?", *viewer.CollegeID)
	}
	if err := clubQuery.Limit(searchLimit).Find(&clubs).Error; err != nil {
		log.Printf("Error searching clubs: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Search failed!", nil)
	}

	var posts []models.Post
	postQuery := db.Model(&models.Post{}).
		Joins("JOIN users ON users.id = posts.user_id").
		Where("posts.is_deleted = false AND users.is_deleted = false").
		Where("LOWER(posts.caption) LIKE ?", pattern)
	if viewer.CollegeID != nil {
		postQuery = postQuery.Where("users.college_id = ?", *viewer.CollegeID)
	}
	if err := postQuery.Preload("User").Limit(searchLimit).Find(&posts).Error; err != nil {
		log.Printf("Error searching posts: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Search failed!", nil)
	}
	for i := range posts {
		posts[i].User.Password = ""
	}

	var events []models.Event
	eventQuery := db.Where("is_deleted = false").Where("LOWER(title) LIKE ?", pattern)
	if viewer.CollegeID != nil {
		eventQuery = eventQuery.Where("college_id = ?", *viewer.CollegeID)
	}
	if err := eventQuery.Limit(searchLimit).Find(&events).Error; err != nil {
		log.Printf("Error searching events: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Search failed!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Search results fetched.", fiber.Map{
		"users":  users,
		"posts":  posts,
		"clubs":  clubs,
		"events": events,
	})
}
