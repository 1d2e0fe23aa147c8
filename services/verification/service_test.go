package verification

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"connectx/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.College{}, &models.Course{}, &models.Verification{},
	))
	return db
}

// seedStudent creates a college with a Computer Science course and a student
// enrolled in it.
func seedStudent(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	college := models.College{Name: "MIT", Slug: "mit"}
	require.NoError(t, db.Create(&college).Error)
	require.NoError(t, db.Create(&models.Course{CollegeID: college.ID, Name: "Computer Science"}).Error)

	user := models.User{
		Name:           "Asha Rao",
		Email:          "asha@example.com",
		Password:       "hashed",
		Role:           models.RoleStudent,
		CollegeID:      &college.ID,
		VerifiedStatus: models.VerifiedStatusNone,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func newTestService(db *gorm.DB, faceScore int, idCardText string) *Service {
	engine := NewEngine(fixedFace{score: faceScore}, fixedText{text: idCardText})
	return NewService(db, engine)
}

func userStatus(t *testing.T, db *gorm.DB, userID uint) string {
	t.Helper()
	var user models.User
	require.NoError(t, db.First(&user, "id = ?", userID).Error)
	return user.VerifiedStatus
}

func TestFaceUploadRequiresIDCard(t *testing.T) {
	db := setupTestDB(t)
	user := seedStudent(t, db)
	svc := newTestService(db, 90, "MIT Computer Science")

	_, err := svc.SubmitFaceImage(user.ID, "/uploads/face.jpg")
	assert.ErrorIs(t, err, ErrNoIDCard)
}

func TestIDCardReuploadReusesPendingRecord(t *testing.T) {
	db := setupTestDB(t)
	user := seedStudent(t, db)
	svc := newTestService(db, 90, "MIT Computer Science")

	first, err := svc.SubmitIDCard(user.ID, "/uploads/id-1.jpg")
	require.NoError(t, err)
	assert.Equal(t, models.VerifiedStatusPending, userStatus(t, db, user.ID))

	second, err := svc.SubmitIDCard(user.ID, "/uploads/id-2.jpg")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "/uploads/id-2.jpg", second.IDCardImage)

	var count int64
	require.NoError(t, db.Model(&models.Verification{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestAutoApproval(t *testing.T) {
	db := setupTestDB(t)
	user := seedStudent(t, db)
	// 90*0.6 + 20 + 20 = 94
	svc := newTestService(db, 90, "MIT Computer Science")

	_, err := svc.SubmitIDCard(user.ID, "/uploads/id.jpg")
	require.NoError(t, err)

	rec, err := svc.SubmitFaceImage(user.ID, "/uploads/face.jpg")
	require.NoError(t, err)

	assert.Equal(t, models.VerificationStatusApproved, rec.Status)
	require.NotNil(t, rec.MatchScore)
	assert.Equal(t, 94, *rec.MatchScore)
	assert.Equal(t, models.ReviewedBySystem, rec.ReviewedBy)
	assert.Contains(t, rec.AnalysisRemarks, "Auto-approved")
	assert.Equal(t, models.VerifiedStatusApproved, userStatus(t, db, user.ID))
	assert.Nil(t, rec.RejectedAt)
}

func TestAutoRejection(t *testing.T) {
	db := setupTestDB(t)
	user := seedStudent(t, db)
	// 50*0.6 with no matches = 30
	svc := newTestService(db, 50, "Stanford Arts")

	_, err := svc.SubmitIDCard(user.ID, "/uploads/id.jpg")
	require.NoError(t, err)

	rec, err := svc.SubmitFaceImage(user.ID, "/uploads/face.jpg")
	require.NoError(t, err)

	assert.Equal(t, models.VerificationStatusRejected, rec.Status)
	require.NotNil(t, rec.MatchScore)
	assert.Equal(t, 30, *rec.MatchScore)
	assert.Contains(t, rec.AnalysisRemarks, "Auto-rejected")
	assert.NotNil(t, rec.RejectedAt)
	assert.Equal(t, models.VerifiedStatusRejected, userStatus(t, db, user.ID))
}

func TestMidScoreHoldsForReview(t *testing.T) {
	db := setupTestDB(t)
	user := seedStudent(t, db)
	// 70*0.6 + 20 (college only) = 62
	svc := newTestService(db, 70, "MIT Fine Arts")

	_, err := svc.SubmitIDCard(user.ID, "/uploads/id.jpg")
	require.NoError(t, err)

	rec, err := svc.SubmitFaceImage(user.ID, "/uploads/face.jpg")
	require.NoError(t, err)

	assert.Equal(t, models.VerificationStatusPending, rec.Status)
	require.NotNil(t, rec.MatchScore)
	assert.Equal(t, 62, *rec.MatchScore)
	assert.Empty(t, rec.ReviewedBy)
	assert.Contains(t, rec.AnalysisRemarks, "Requires admin review")
	assert.Equal(t, models.VerifiedStatusPending, userStatus(t, db, user.ID))

	// Admin approval completes the flow.
	reviewed, err := svc.Approve(rec.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, models.VerificationStatusApproved, reviewed.Status)
	assert.Equal(t, "7", reviewed.ReviewedBy)
	assert.Equal(t, models.VerifiedStatusApproved, userStatus(t, db, user.ID))
}

func TestThresholdBoundaries(t *testing.T) {
	cases := []struct {
		name      string
		faceScore int
		idText    string
		combined  int
		status    string
	}{
		// With both matches: round(face*0.6) + 40.
		{"exactly 80 approves", 67, "MIT Computer Science", 80, models.VerificationStatusApproved},
		{"79 holds for review", 65, "MIT Computer Science", 79, models.VerificationStatusPending},
		// With no matches: round(face*0.6).
		{"exactly 40 holds for review", 67, "Stanford Arts", 40, models.VerificationStatusPending},
		{"39 rejects", 65, "Stanford Arts", 39, models.VerificationStatusRejected},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			db := setupTestDB(t)
			user := seedStudent(t, db)
			svc := newTestService(db, tc.faceScore, tc.idText)

			_, err := svc.SubmitIDCard(user.ID, "/uploads/id.jpg")
			require.NoError(t, err)

			rec, err := svc.SubmitFaceImage(user.ID, "/uploads/face.jpg")
			require.NoError(t, err)
			require.NotNil(t, rec.MatchScore)
			assert.Equal(t, tc.combined, *rec.MatchScore)
			assert.Equal(t, tc.status, rec.Status)
		})
	}
}

func TestRejectionCooldown(t *testing.T) {
	db := setupTestDB(t)
	user := seedStudent(t, db)
	svc := newTestService(db, 50, "Stanford Arts")

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return base }

	_, err := svc.SubmitIDCard(user.ID, "/uploads/id.jpg")
	require.NoError(t, err)
	_, err = svc.SubmitFaceImage(user.ID, "/uploads/face.jpg")
	require.NoError(t, err)

	// One minute before the window closes.
	svc.now = func() time.Time { return base.Add(Cooldown - time.Minute) }
	_, err = svc.SubmitIDCard(user.ID, "/uploads/id-retry.jpg")
	cd, ok := AsCooldown(err)
	require.True(t, ok)
	assert.Equal(t, base.Add(Cooldown), cd.RetryAt)

	report, err := svc.Status(user.ID)
	require.NoError(t, err)
	assert.False(t, report.CanRetry)
	require.NotNil(t, report.RetryAfter)
	assert.Equal(t, base.Add(Cooldown), *report.RetryAfter)

	// Exactly at the boundary the retry goes through on a fresh record.
	svc.now = func() time.Time { return base.Add(Cooldown) }
	rec, err := svc.SubmitIDCard(user.ID, "/uploads/id-retry.jpg")
	require.NoError(t, err)
	assert.Equal(t, models.VerificationStatusPending, rec.Status)

	var count int64
	require.NoError(t, db.Model(&models.Verification{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestApprovedIsTerminal(t *testing.T) {
	db := setupTestDB(t)
	user := seedStudent(t, db)
	svc := newTestService(db, 90, "MIT Computer Science")

	_, err := svc.SubmitIDCard(user.ID, "/uploads/id.jpg")
	require.NoError(t, err)
	_, err = svc.SubmitFaceImage(user.ID, "/uploads/face.jpg")
	require.NoError(t, err)

	_, err = svc.SubmitIDCard(user.ID, "/uploads/id-again.jpg")
	assert.ErrorIs(t, err, ErrAlreadyVerified)
	_, err = svc.SubmitFaceImage(user.ID, "/uploads/face-again.jpg")
	assert.ErrorIs(t, err, ErrAlreadyVerified)
}

func TestStaleDecisionLosesRace(t *testing.T) {
	db := setupTestDB(t)
	user := seedStudent(t, db)
	svc := newTestService(db, 90, "MIT Computer Science")

	rec, err := svc.SubmitIDCard(user.ID, "/uploads/id.jpg")
	require.NoError(t, err)

	// Another writer settles the record between the read and the write.
	require.NoError(t, db.Model(&models.Verification{}).Where("id = ?", rec.ID).
		Update("status", models.VerificationStatusApproved).Error)

	result := MatchResult{FaceScore: 90, CollegeMatch: true, CourseMatch: true}
	err = svc.store.applyDecision(rec, "/uploads/face.jpg", result, 94,
		models.VerificationStatusApproved, "remarks", nil)
	assert.ErrorIs(t, err, ErrAlreadyProcessed)
}

func TestAdminReviewGuards(t *testing.T) {
	db := setupTestDB(t)
	user := seedStudent(t, db)
	svc := newTestService(db, 70, "MIT Fine Arts")

	_, err := svc.Approve(999, 7)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.SubmitIDCard(user.ID, "/uploads/id.jpg")
	require.NoError(t, err)
	rec, err := svc.SubmitFaceImage(user.ID, "/uploads/face.jpg")
	require.NoError(t, err)

	_, err = svc.Approve(rec.ID, 7)
	require.NoError(t, err)

	// A second decision on the same record is refused.
	_, err = svc.Reject(rec.ID, 7)
	assert.ErrorIs(t, err, ErrAlreadyProcessed)
	_, err = svc.Approve(rec.ID, 8)
	assert.ErrorIs(t, err, ErrAlreadyProcessed)
}

func TestAdminRejectStampsRejectedAt(t *testing.T) {
	db := setupTestDB(t)
	user := seedStudent(t, db)
	svc := newTestService(db, 70, "MIT Fine Arts")

	reviewedAt := time.Date(2025, 6, 2, 9, 30, 0, 0, time.UTC)
	svc.now = func() time.Time { return reviewedAt }

	_, err := svc.SubmitIDCard(user.ID, "/uploads/id.jpg")
	require.NoError(t, err)
	rec, err := svc.SubmitFaceImage(user.ID, "/uploads/face.jpg")
	require.NoError(t, err)

	rejected, err := svc.Reject(rec.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, models.VerificationStatusRejected, rejected.Status)
	assert.Equal(t, "7", rejected.ReviewedBy)
	require.NotNil(t, rejected.RejectedAt)
	assert.True(t, rejected.RejectedAt.Equal(reviewedAt))
	assert.Equal(t, models.VerifiedStatusRejected, userStatus(t, db, user.ID))
}

func TestBypass(t *testing.T) {
	db := setupTestDB(t)
	user := seedStudent(t, db)
	svc := newTestService(db, 70, "MIT Fine Arts")

	_, err := svc.SubmitIDCard(user.ID, "/uploads/id.jpg")
	require.NoError(t, err)
	rec, err := svc.SubmitFaceImage(user.ID, "/uploads/face.jpg")
	require.NoError(t, err)
	require.Equal(t, models.VerificationStatusPending, rec.Status)

	require.NoError(t, svc.Bypass(user.ID, 3))

	var refreshed models.User
	require.NoError(t, db.First(&refreshed, "id = ?", user.ID).Error)
	assert.True(t, refreshed.BypassVerified)
	assert.Equal(t, models.VerifiedStatusApproved, refreshed.VerifiedStatus)

	settled, err := svc.store.findByID(rec.ID)
	require.NoError(t, err)
	assert.Equal(t, models.VerificationStatusApproved, settled.Status)
	assert.Equal(t, "3", settled.ReviewedBy)

	assert.ErrorIs(t, svc.Bypass(999, 3), ErrNotFound)
}

func TestListPendingScopedByCollege(t *testing.T) {
	db := setupTestDB(t)

	mit := models.College{Name: "MIT", Slug: "mit"}
	require.NoError(t, db.Create(&mit).Error)
	stanford := models.College{Name: "Stanford", Slug: "stanford"}
	require.NoError(t, db.Create(&stanford).Error)

	mitStudent := models.User{Name: "A", Email: "a@example.com", Password: "x", Role: models.RoleStudent, CollegeID: &mit.ID}
	require.NoError(t, db.Create(&mitStudent).Error)
	stanfordStudent := models.User{Name: "B", Email: "b@example.com", Password: "x", Role: models.RoleStudent, CollegeID: &stanford.ID}
	require.NoError(t, db.Create(&stanfordStudent).Error)

	svc := newTestService(db, 70, "irrelevant")
	_, err := svc.SubmitIDCard(mitStudent.ID, "/uploads/a.jpg")
	require.NoError(t, err)
	_, err = svc.SubmitIDCard(stanfordStudent.ID, "/uploads/b.jpg")
	require.NoError(t, err)

	all, err := svc.ListPending(nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	scoped, err := svc.ListPending(&mit.ID)
	require.NoError(t, err)
	require.Len(t, scoped, 1)
	assert.Equal(t, mitStudent.ID, scoped[0].UserID)
}

func TestEngineFailureLeavesRecordPending(t *testing.T) {
	db := setupTestDB(t)
	user := seedStudent(t, db)
	engine := NewEngine(fixedFace{err: assert.AnError}, fixedText{text: "MIT"})
	svc := NewService(db, engine)

	_, err := svc.SubmitIDCard(user.ID, "/uploads/id.jpg")
	require.NoError(t, err)

	_, err = svc.SubmitFaceImage(user.ID, "/uploads/face.jpg")
	assert.ErrorIs(t, err, ErrEngineFailure)

	rec, err := svc.store.findLatest(user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.VerificationStatusPending, rec.Status)
	assert.Empty(t, rec.FaceImage)
	assert.Nil(t, rec.MatchScore)
}

func TestStatusForFreshUser(t *testing.T) {
	db := setupTestDB(t)
	user := seedStudent(t, db)
	svc := newTestService(db, 90, "MIT Computer Science")

	report, err := svc.Status(user.ID)
	require.NoError(t, err)
	assert.Nil(t, report.Verification)
	assert.True(t, report.CanRetry)
	assert.Nil(t, report.RetryAfter)

	_, err = svc.Status(999)
	assert.ErrorIs(t, err, ErrNotFound)
}
