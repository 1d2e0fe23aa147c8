package collegeController

import (
	"log"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"

	"connectx/config"
	"connectx/database"
	"connectx/middleware"
	"connectx/models"
)

// List returns the college directory, optionally filtered by city.
func List(c *fiber.Ctx) error {
	db := database.Database.Db

	query := db.Where("is_deleted = false")
	if city := c.Query("city"); city != "" {
		query = query.Where("LOWER(city) = ?", strings.ToLower(city))
	}

	var colleges []models.College
	if err := query.Order("name ASC").Find(&colleges).Error; err != nil {
		log.Printf("Error fetching colleges: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch colleges!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Colleges fetched.", colleges)
}

// Courses returns the course catalogue of one college.
func Courses(c *fiber.Ctx) error {
	collegeID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid college id!", nil)
	}

	db := database.Database.Db

	var courses []models.Course
	if err := db.Where("college_id = ? AND is_deleted = false", collegeID).
		Order("name ASC").Find(&courses).Error; err != nil {
		log.Printf("Error fetching courses: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched.", courses)
}

// Create registers a new college (super admin only).
func Create(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)

	reqData := new(struct {
		Name    string `json:"name"`
		City    string `json:"city"`
		Logo    string `json:"logo"`
		Website string `json:"website"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	slug := slugify(reqData.Name)
	if err := db.Where("slug = ?", slug).First(&models.College{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "College already exists!", nil)
	}

	college := models.College{
		Name:      reqData.Name,
		Slug:      slug,
		City:      reqData.City,
		Logo:      reqData.Logo,
		Website:   reqData.Website,
		CreatedBy: userID,
	}
	if err := db.Create(&college).Error; err != nil {
		log.Printf("Error creating college: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create college!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "College created.", college)
}

// AddCourse adds a course to a college's catalogue (admin only).
func AddCourse(c *fiber.Ctx) error {
	collegeID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid college id!", nil)
	}

	reqData := new(struct {
		Name string `json:"name"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}
	if strings.TrimSpace(reqData.Name) == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course name is required!", nil)
	}

	db := database.Database.Db

	if err := db.First(&models.College{}, "id = ? AND is_deleted = false", collegeID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "College not found!", nil)
	}

	course := models.Course{
		CollegeID: uint(collegeID),
		Name:      strings.TrimSpace(reqData.Name),
	}
	if err := db.Create(&course).Error; err != nil {
		log.Printf("Error creating course: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course added.", course)
}

// Delete soft-deletes a college unless students, clubs or events still
// reference it.
func Delete(c *fiber.Ctx) error {
	collegeID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid college id!", nil)
	}

	db := database.Database.Db

	var users, clubs, events int64
	db.Model(&models.User{}).Where("college_id = ? AND is_deleted = false", collegeID).Count(&users)
	db.Model(&models.Club{}).Where("college_id = ? AND is_deleted = false", collegeID).Count(&clubs)
	db.Model(&models.Event{}).Where("college_id = ? AND is_deleted = false", collegeID).Count(&events)
	if users > 0 || clubs > 0 || events > 0 {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "College still has members, clubs or events!", nil)
	}

	res := db.Model(&models.College{}).
		Where("id = ? AND is_deleted = false", collegeID).
		Update("is_deleted", true)
	if res.Error != nil {
		log.Printf("Error deleting college: %v", res.Error)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete college!", nil)
	}
	if res.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "College not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "College deleted.", nil)
}

// CreateAdmin provisions a college-admin account (super admin only).
func CreateAdmin(c *fiber.Ctx) error {
	reqData := new(struct {
		Name      string `json:"name"`
		Email     string `json:"email"`
		Password  string `json:"password"`
		CollegeID uint   `json:"collegeId"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	errors := make(map[string]string)
	if strings.TrimSpace(reqData.Name) == "" {
		errors["name"] = "Name is required!"
	}
	if reqData.Email == "" {
		errors["email"] = "Email is required!"
	}
	if len(reqData.Password) < 8 {
		errors["password"] = "Password must be at least 8 characters long!"
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
	if err := db.Where("email = ?", reqData.Email).First(&models.User{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Email is already registered!", nil)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	admin := models.User{
		Name:      strings.TrimSpace(reqData.Name),
		Email:     reqData.Email,
		Password:  string(hashedPassword),
		Role:      models.RoleCollegeAdmin,
		CollegeID: &reqData.CollegeID,
		// Admin accounts skip the student verification flow
		BypassVerified: true,
		VerifiedStatus: models.VerifiedStatusApproved,
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Printf("Error creating college admin: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create admin!", nil)
	}

	admin.Password = ""
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "College admin created.", admin)
}

func slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = strings.Join(strings.Fields(slug), "-")
	return slug
}
