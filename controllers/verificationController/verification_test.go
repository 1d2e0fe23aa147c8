package verificationController

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"connectx/config"
	"connectx/database"
	"connectx/middleware"
	"connectx/models"
)

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func setupApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	config.LoadConfig()
	config.AppConfig.UploadDir = t.TempDir()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.College{}, &models.Course{}, &models.Verification{},
	))

	database.Database = database.DbInstance{Db: db}
	Init()

	app := fiber.New()
	verifyGroup := app.Group("/api/verify", middleware.JWTMiddleware)
	verifyGroup.Post("/id-upload", IDUpload)
	verifyGroup.Post("/face-upload", FaceUpload)
	verifyGroup.Get("/status", Status)

	adminGroup := app.Group("/api/admin", middleware.JWTMiddleware, middleware.RequireAdmin)
	adminGroup.Get("/verifications/pending", PendingList)
	adminGroup.Post("/verification/bypass", middleware.RequireSuperAdmin, Bypass)

	return app, db
}

func createStudent(t *testing.T, db *gorm.DB) (*models.User, string) {
	t.Helper()

	college := models.College{Name: "MIT", Slug: "mit"}
	require.NoError(t, db.Create(&college).Error)

	user := models.User{
		Name:      "Asha Rao",
		Email:     "asha@example.com",
		Password:  "hashed",
		Role:      models.RoleStudent,
		CollegeID: &college.ID,
	}
	require.NoError(t, db.Create(&user).Error)

	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email, user.CollegeID)
	require.NoError(t, err)
	return &user, token
}

func multipartRequest(t *testing.T, url, field, filename string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = io.Copy(part, bytes.NewReader([]byte("fake image bytes")))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, url, &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func decodeEnvelope(t *testing.T, resp *http.Response) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return env
}

func TestStatusRequiresToken(t *testing.T) {
	app, _ := setupApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/verify/status", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestIDUploadAndStatus(t *testing.T) {
	app, db := setupApp(t)
	_, token := createStudent(t, db)

	req := multipartRequest(t, "/api/verify/id-upload", "idCard", "id.jpg")
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	env := decodeEnvelope(t, resp)
	assert.True(t, env.Status)

	var rec models.Verification
	require.NoError(t, json.Unmarshal(env.Data, &rec))
	assert.Equal(t, models.VerificationStatusPending, rec.Status)
	assert.NotEmpty(t, rec.IDCardImage)

	// Status reflects the open attempt
	statusReq := httptest.NewRequest(http.MethodGet, "/api/verify/status", nil)
	statusReq.Header.Set("Authorization", "Bearer "+token)
	statusResp, err := app.Test(statusReq)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, statusResp.StatusCode)

	statusEnv := decodeEnvelope(t, statusResp)
	assert.True(t, statusEnv.Status)

	var report struct {
		Verification *models.Verification `json:"verification"`
		CanRetry     bool                 `json:"canRetry"`
	}
	require.NoError(t, json.Unmarshal(statusEnv.Data, &report))
	require.NotNil(t, report.Verification)
	assert.Equal(t, models.VerificationStatusPending, report.Verification.Status)
	assert.True(t, report.CanRetry)
}

func TestFaceUploadWithoutIDCard(t *testing.T) {
	app, db := setupApp(t)
	_, token := createStudent(t, db)

	req := multipartRequest(t, "/api/verify/face-upload", "faceImage", "face.jpg")
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	env := decodeEnvelope(t, resp)
	assert.False(t, env.Status)
	assert.Contains(t, env.Message, "ID card")
}

func TestIDUploadRequiresFile(t *testing.T) {
	app, db := setupApp(t)
	_, token := createStudent(t, db)

	req := httptest.NewRequest(http.MethodPost, "/api/verify/id-upload", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestIDUploadDuringCooldown(t *testing.T) {
	app, db := setupApp(t)
	student, token := createStudent(t, db)

	rejectedAt := time.Now().Add(-time.Hour)
	rec := models.Verification{
		UserID:      student.ID,
		Status:      models.VerificationStatusRejected,
		IDCardImage: "old-id.jpg",
		RejectedAt:  &rejectedAt,
	}
	require.NoError(t, db.Create(&rec).Error)

	req := multipartRequest(t, "/api/verify/id-upload", "idCard", "id.jpg")
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	env := decodeEnvelope(t, resp)
	assert.False(t, env.Status)

	var payload struct {
		RetryAt time.Time `json:"retryAt"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &payload))
	assert.WithinDuration(t, rejectedAt.Add(3*time.Hour), payload.RetryAt, time.Second)
}

func TestBypassTakesUserIDFromBody(t *testing.T) {
	app, db := setupApp(t)
	student, _ := createStudent(t, db)

	super := models.User{
		Name:     "Root",
		Email:    "root@example.com",
		Password: "hashed",
		Role:     models.RoleSuperAdmin,
	}
	require.NoError(t, db.Create(&super).Error)
	superToken, err := middleware.GenerateJWT(super.ID, super.Name, super.Role, super.Email, nil)
	require.NoError(t, err)

	body, err := json.Marshal(fiber.Map{"userId": student.ID})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/admin/verification/bypass", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+superToken)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var updated models.User
	require.NoError(t, db.First(&updated, "id = ?", student.ID).Error)
	assert.True(t, updated.BypassVerified)
	assert.Equal(t, models.VerifiedStatusApproved, updated.VerifiedStatus)

	// Missing user id in the body is rejected
	badReq := httptest.NewRequest(http.MethodPost, "/api/admin/verification/bypass", bytes.NewReader([]byte(`{}`)))
	badReq.Header.Set("Content-Type", "application/json")
	badReq.Header.Set("Authorization", "Bearer "+superToken)
	badResp, err := app.Test(badReq)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, badResp.StatusCode)
}

func TestPendingListForbiddenForStudents(t *testing.T) {
	app, db := setupApp(t)
	_, token := createStudent(t, db)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/verifications/pending", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestPendingListForCollegeAdmin(t *testing.T) {
	app, db := setupApp(t)
	student, token := createStudent(t, db)

	// Open an attempt for the student
	req := multipartRequest(t, "/api/verify/id-upload", "idCard", "id.jpg")
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	admin := models.User{
		Name:      "Dean",
		Email:     "dean@example.com",
		Password:  "hashed",
		Role:      models.RoleCollegeAdmin,
		CollegeID: student.CollegeID,
	}
	require.NoError(t, db.Create(&admin).Error)
	adminToken, err := middleware.GenerateJWT(admin.ID, admin.Name, admin.Role, admin.Email, admin.CollegeID)
	require.NoError(t, err)

	listReq := httptest.NewRequest(http.MethodGet, "/api/admin/verifications/pending", nil)
	listReq.Header.Set("Authorization", "Bearer "+adminToken)
	listResp, err := app.Test(listReq)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, listResp.StatusCode)

	env := decodeEnvelope(t, listResp)
	var records []models.Verification
	require.NoError(t, json.Unmarshal(env.Data, &records))
	require.Len(t, records, 1)
	assert.Equal(t, student.ID, records[0].UserID)
}
