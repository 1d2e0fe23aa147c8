package authController

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"

	"connectx/config"
	"connectx/database"
	"connectx/middleware"
	"connectx/models"
	"connectx/utils"
)

type signupRequest struct {
	Name      string `json:"name"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Password  string `json:"password"`
	Batch     string `json:"batch"`
	CollegeID *uint  `json:"collegeId"`
	CourseID  *uint  `json:"courseId"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sendOTPRequest struct {
	Email string `json:"email"`
}

type verifyOTPRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

type resetPasswordRequest struct {
	Email    string `json:"email"`
	Code     string `json:"code"`
	Password string `json:"password"`
}

func Signup(c *fiber.Ctx) error {
	var reqData signupRequest
	if err := c.BodyParser(&reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	// Check if email already exists
	if err := db.Where("email = ?", reqData.Email).First(&models.User{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Email is already registered!", nil)
	}

	if reqData.Phone != "" {
		if err := db.Where("phone = ?", reqData.Phone).First(&models.User{}).Error; err == nil {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Phone number is already registered!", nil)
		}
	}

	if reqData.CollegeID != nil {
		if err := db.First(&models.College{}, "id = ? AND is_deleted = false", *reqData.CollegeID).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Unknown college!", nil)
		}
	}

	// Hash Password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	newUser := models.User{
		Name:           reqData.Name,
		Username:       reqData.Username,
		Email:          reqData.Email,
		Phone:          reqData.Phone,
		Password:       string(hashedPassword),
		Batch:          reqData.Batch,
		Role:           models.RoleStudent,
		CollegeID:      reqData.CollegeID,
		CourseID:       reqData.CourseID,
		VerifiedStatus: models.VerifiedStatusNone,
	}

	if err := db.Create(&newUser).Error; err != nil {
		log.Printf("Error saving user to database: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to Signup user!", nil)
	}

	// Email verification OTP
	otp := utils.GenerateOTP()
	otpRecord := models.OTP{
		UserID:    newUser.ID,
		Email:     newUser.Email,
		Code:      otp,
		ExpiresAt: time.Now().Add(10 * time.Minute),
	}
	if err := db.Create(&otpRecord).Error; err != nil {
		log.Printf("Error saving OTP: %v", err)
	} else if err := utils.SendOTPEmail(newUser.Email, newUser.Name, otp); err != nil {
		log.Printf("Error sending OTP email: %v", err)
	}

	newUser.Password = ""
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "User registered successfully.", newUser)
}

func Login(c *fiber.Ctx) error {
	var reqData loginRequest
	if err := c.BodyParser(&reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("email = ? AND is_deleted = false", reqData.Email).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid email or password!", nil)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(reqData.Password)); err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid email or password!", nil)
	}

	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email, user.CollegeID)
	if err != nil {
		log.Printf("Error generating JWT: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	db.Model(&user).Update("last_login", time.Now())

	user.Password = ""
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Login successful.", fiber.Map{
		"token": token,
		"user":  user,
	})
}

func SendOTP(c *fiber.Ctx) error {
	var reqData sendOTPRequest
	if err := c.BodyParser(&reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("email = ? AND is_deleted = false", reqData.Email).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No account found for this email!", nil)
	}

	// Per-identity limits: 3 per hour, 10 per day
	var lastHour, lastDay int64
	db.Model(&models.OTP{}).Where("user_id = ? AND created_at > ?", user.ID, time.Now().Add(-time.Hour)).Count(&lastHour)
	db.Model(&models.OTP{}).Where("user_id = ? AND created_at > ?", user.ID, time.Now().Add(-24*time.Hour)).Count(&lastDay)
	if lastHour >= 3 || lastDay >= 10 {
		return middleware.JsonResponse(c, fiber.StatusTooManyRequests, false, "Too many OTP requests. Try again later!", nil)
	}

	// Invalidate previous codes
	db.Model(&models.OTP{}).
		Where("user_id = ? AND is_used = false", user.ID).
		Update("is_deleted", true)

	otp := utils.GenerateOTP()
	otpRecord := models.OTP{
		UserID:    user.ID,
		Email:     user.Email,
		Code:      otp,
		ExpiresAt: time.Now().Add(10 * time.Minute),
	}
	if err := db.Create(&otpRecord).Error; err != nil {
		log.Printf("Error saving OTP: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to send OTP!", nil)
	}

	if err := utils.SendOTPEmail(user.Email, user.Name, otp); err != nil {
		log.Printf("Error sending OTP email: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to send OTP!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "OTP sent to your email.", nil)
}

func VerifyOTP(c *fiber.Ctx) error {
	var reqData verifyOTPRequest
	if err := c.BodyParser(&reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("email = ? AND is_deleted = false", reqData.Email).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No account found for this email!", nil)
	}

	var otpRecord models.OTP
	err := db.Where("user_id = ? AND code = ? AND is_used = false AND is_deleted = false", user.ID, reqData.Code).
		Order("id DESC").First(&otpRecord).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid OTP!", nil)
	}

	if time.Now().After(otpRecord.ExpiresAt) {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "OTP has expired!", nil)
	}

	db.Model(&otpRecord).Update("is_used", true)
	db.Model(&user).Update("is_email_verified", true)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Email verified successfully.", nil)
}

// ResetPassword sets a new password after OTP verification.
func ResetPassword(c *fiber.Ctx) error {
	var reqData resetPasswordRequest
	if err := c.BodyParser(&reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("email = ? AND is_deleted = false", reqData.Email).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No account found for this email!", nil)
	}

	var otpRecord models.OTP
	err := db.Where("user_id = ? AND code = ? AND is_used = false AND is_deleted = false", user.ID, reqData.Code).
		Order("id DESC").First(&otpRecord).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid OTP!", nil)
	}
	if time.Now().After(otpRecord.ExpiresAt) {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "OTP has expired!", nil)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	db.Model(&otpRecord).Update("is_used", true)
	if err := db.Model(&user).Update("password", string(hashedPassword)).Error; err != nil {
		log.Printf("Error updating password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to reset password!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Password reset successfully.", nil)
}
