package eventController

import (
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/now"
	"gorm.io/gorm"

	"connectx/config"
	"connectx/database"
	"connectx/middleware"
	"connectx/models"
	"connectx/utils"
)

// List returns upcoming events for the viewer's college. The "range" query
// param narrows to this week or this month.
func List(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)
	db := database.Database.Db

	var viewer models.User
	if err := db.First(&viewer, "id = ?", userID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}
	if viewer.CollegeID == nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Join a college to browse events!", nil)
	}

	query := db.Where("college_id = ? AND is_deleted = false", *viewer.CollegeID)

	switch c.Query("range") {
	case "week":
		query = query.Where("date BETWEEN ? AND ?", time.Now(), now.EndOfWeek())
	case "month":
		query = query.Where("date BETWEEN ? AND ?", time.Now(), now.EndOfMonth())
	default:
		query = query.Where("date >= ?", now.BeginningOfDay())
	}

	var events []models.Event
	if err := query.Order("date ASC").Find(&events).Error; err != nil {
		log.Printf("Error fetching events: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch events!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Events fetched.", events)
}

// Create publishes a college event (admin only).
func Create(c *fiber.Ctx) error {
	title := strings.TrimSpace(c.FormValue("title"))
	description := c.FormValue("description")
	dateStr := c.FormValue("date")
	collegeIDStr := c.FormValue("collegeId")

	errors := make(map[string]string)
	if title == "" {
		errors["title"] = "Title is required!"
	}

	date, err := time.Parse(time.RFC3339, dateStr)
	if err != nil {
		errors["date"] = "Date must be RFC3339!"
	}

	collegeID, err := strconv.ParseUint(collegeIDStr, 10, 32)
	if err != nil {
		errors["collegeId"] = "College id is required!"
	}

	if len(errors) > 0 {
		return middleware.ValidationErrorResponse(c, errors)
	}

	db := database.Database.Db

	if err := db.First(&models.College{}, "id = ? AND is_deleted = false", collegeID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "College not found!", nil)
	}

	image := ""
	if file, err := c.FormFile("image"); err == nil {
		fileName, err := utils.SaveUploadedFile(file, config.AppConfig.UploadDir)
		if err != nil {
			log.Printf("Error saving event image: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to store the uploaded file!", nil)
		}
		image = utils.GetFileURL(fileName)
	}

	event := models.Event{
		Title:       title,
		Description: description,
		Date:        date,
		Image:       image,
		CollegeID:   uint(collegeID),
	}
	if err := db.Create(&event).Error; err != nil {
		log.Printf("Error creating event: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create event!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Event created.", event)
}

// RSVP marks the caller as attending.
func RSVP(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)

	eventID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid event id!", nil)
	}

	db := database.Database.Db

	var event models.Event
	if err := db.First(&event, "id = ? AND is_deleted = false", eventID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Event not found!", nil)
	}
	if event.Date.Before(time.Now()) {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "This event has already happened!", nil)
	}

	var viewer models.User
	if err := db.First(&viewer, "id = ?", userID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}
	if viewer.CollegeID == nil || *viewer.CollegeID != event.CollegeID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You can only RSVP to events at your own college!", nil)
	}

	var existing models.EventRSVP
	err = db.Where("event_id = ? AND user_id = ?", eventID, userID).First(&existing).Error
	if err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "You already RSVPed!", nil)
	}
	if err != gorm.ErrRecordNotFound {
		log.Printf("Error looking up RSVP: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to RSVP!", nil)
	}

	rsvp := models.EventRSVP{UserID: userID, EventID: uint(eventID)}
	if err := db.Create(&rsvp).Error; err != nil {
		log.Printf("Error creating RSVP: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to RSVP!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "RSVP recorded.", rsvp)
}

// CancelRSVP removes the caller's RSVP.
func CancelRSVP(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)

	eventID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid event id!", nil)
	}

	res := database.Database.Db.Unscoped().
		Where("event_id = ? AND user_id = ?", eventID, userID).
		Delete(&models.EventRSVP{})
	if res.Error != nil {
		log.Printf("Error cancelling RSVP: %v", res.Error)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to cancel RSVP!", nil)
	}
	if res.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No RSVP found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "RSVP cancelled.", nil)
}

// Attendees lists who is coming.
func Attendees(c *fiber.Ctx) error {
	eventID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid event id!", nil)
	}

	var attendees []models.EventRSVP
	if err := database.Database.Db.Where("event_id = ?", eventID).
		Preload("User").Find(&attendees).Error; err != nil {
		log.Printf("Error fetching attendees: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch attendees!", nil)
	}

	for i := range attendees {
		attendees[i].User.Password = ""
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Attendees fetched.", attendees)
}
