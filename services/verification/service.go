package verification

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"gorm.io/gorm"

	"connectx/models"
)

// Cooldown is how long a rejected user waits before resubmitting.
const Cooldown = 3 * time.Hour

// Auto-decision cut points over the combined score.
const (
	autoApproveScore = 80
	autoRejectBelow  = 40
)

// Service runs the two-phase verification workflow: ID card upload, face
// upload with automated scoring, and the admin review gateway.
type Service struct {
	store  recordStore
	engine *Engine
	now    func() time.Time
}

func NewService(db *gorm.DB, engine *Engine) *Service {
	return &Service{
		store:  recordStore{db: db},
		engine: engine,
		now:    time.Now,
	}
}

// StatusReport is the student-facing view of the verification state.
type StatusReport struct {
	User         *models.User         `json:"user"`
	Verification *models.Verification `json:"verification"`
	CanRetry     bool                 `json:"canRetry"`
	RetryAfter   *time.Time           `json:"retryAfter,omitempty"`
}

// SubmitIDCard starts or refreshes a verification attempt. Re-uploading
// before the face image lands on the same pending record.
func (s *Service) SubmitIDCard(userID uint, idCardRef string) (*models.Verification, error) {
	if err := s.guardSubmission(userID); err != nil {
		return nil, err
	}
	return s.store.attachIDCard(userID, idCardRef)
}

// SubmitFaceImage scores the submission and applies the threshold policy:
// combined >= 80 auto-approves, >= 40 holds for admin review, below 40
// auto-rejects and starts the cooldown.
func (s *Service) SubmitFaceImage(userID uint, faceRef string) (*models.Verification, error) {
	if err := s.guardSubmission(userID); err != nil {
		return nil, err
	}

	rec, err := s.pendingWithIDCard(userID)
	if err != nil {
		return nil, err
	}

	collegeName, courses, err := s.studentContext(userID)
	if err != nil {
		return nil, err
	}

	result, err := s.engine.Score(rec.IDCardImage, faceRef, collegeName, courses)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEngineFailure, err)
	}
	combined := CombinedScore(result)

	status := models.VerificationStatusPending
	outcome := "Requires admin review"
	var rejectedAt *time.Time
	switch {
	case combined >= autoApproveScore:
		status = models.VerificationStatusApproved
		outcome = "Auto-approved"
	case combined < autoRejectBelow:
		status = models.VerificationStatusRejected
		outcome = "Auto-rejected"
		t := s.now()
		rejectedAt = &t
	}

	remarks := fmt.Sprintf("Face match: %d%%, College match: %s, Course match: %s. %s (Score: %d%%)",
		result.FaceScore, yesNo(result.CollegeMatch), yesNo(result.CourseMatch), outcome, combined)

	if err := s.store.applyDecision(rec, faceRef, result, combined, status, remarks, rejectedAt); err != nil {
		return nil, err
	}

	return s.store.findByID(rec.ID)
}

// Status returns the latest record plus whether the user may retry and when.
func (s *Service) Status(userID uint) (*StatusReport, error) {
	var user models.User
	if err := s.store.db.Preload("College").First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("finding user: %w", err)
	}
	user.Password = ""

	latest, err := s.store.findLatest(userID)
	if err != nil {
		return nil, err
	}

	report := &StatusReport{User: &user, Verification: latest, CanRetry: true}
	if latest != nil && latest.Status == models.VerificationStatusRejected && latest.RejectedAt != nil {
		retryAt := latest.RejectedAt.Add(Cooldown)
		if s.now().Before(retryAt) {
			report.CanRetry = false
			report.RetryAfter = &retryAt
		}
	}
	return report, nil
}

// Approve transitions a pending record via the admin review gateway.
func (s *Service) Approve(recordID, reviewerID uint) (*models.Verification, error) {
	rec, err := s.store.findByID(recordID)
	if err != nil {
		return nil, err
	}
	if rec.Status != models.VerificationStatusPending {
		return nil, ErrAlreadyProcessed
	}
	if err := s.store.applyReview(rec, models.VerificationStatusApproved, reviewerRef(reviewerID), nil); err != nil {
		return nil, err
	}
	return s.store.findByID(recordID)
}

// Reject transitions a pending record and starts the user's cooldown.
func (s *Service) Reject(recordID, reviewerID uint) (*models.Verification, error) {
	rec, err := s.store.findByID(recordID)
	if err != nil {
		return nil, err
	}
	if rec.Status != models.VerificationStatusPending {
		return nil, ErrAlreadyProcessed
	}
	t := s.now()
	if err := s.store.applyReview(rec, models.VerificationStatusRejected, reviewerRef(reviewerID), &t); err != nil {
		return nil, err
	}
	return s.store.findByID(recordID)
}

// Bypass force-approves the user regardless of record state. A pending
// record, when one exists, is marked approved under the reviewer's ID.
func (s *Service) Bypass(userID, reviewerID uint) error {
	tx := s.store.db.Begin()
	if err := tx.Error; err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}

	res := tx.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"bypass_verified": true,
		"verified_status": models.VerifiedStatusApproved,
	})
	if res.Error != nil {
		tx.Rollback()
		return fmt.Errorf("%w: %v", ErrSyncFailure, res.Error)
	}
	if res.RowsAffected == 0 {
		tx.Rollback()
		return ErrNotFound
	}

	err := tx.Model(&models.Verification{}).
		Where("user_id = ? AND status = ?", userID, models.VerificationStatusPending).
		Updates(map[string]interface{}{
			"status":      models.VerificationStatusApproved,
			"reviewed_by": reviewerRef(reviewerID),
		}).Error
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("approving pending record: %w", err)
	}

	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("committing bypass: %w", err)
	}
	return nil
}

// ListPending lists records awaiting admin review, optionally scoped to a
// college for institution-level admins.
func (s *Service) ListPending(collegeID *uint) ([]models.Verification, error) {
	return s.store.listPending(collegeID)
}

// guardSubmission enforces the AlreadyVerified and cooldown rules shared by
// both submission phases.
func (s *Service) guardSubmission(userID uint) error {
	approved, err := s.store.hasApproved(userID)
	if err != nil {
		return err
	}
	if approved {
		return ErrAlreadyVerified
	}

	latest, err := s.store.findLatest(userID)
	if err != nil {
		return err
	}
	if latest != nil && latest.Status == models.VerificationStatusRejected && latest.RejectedAt != nil {
		retryAt := latest.RejectedAt.Add(Cooldown)
		if s.now().Before(retryAt) {
			return &CooldownError{RetryAt: retryAt}
		}
	}
	return nil
}

func (s *Service) pendingWithIDCard(userID uint) (*models.Verification, error) {
	rec, err := s.store.findActive(userID)
	if err != nil {
		return nil, err
	}
	if rec == nil || rec.Status != models.VerificationStatusPending || rec.IDCardImage == "" {
		return nil, ErrNoIDCard
	}
	return rec, nil
}

// studentContext fetches the declared college name and the college's course
// catalogue for the scoring pass.
func (s *Service) studentContext(userID uint) (string, []CourseOption, error) {
	var user models.User
	if err := s.store.db.Preload("College").First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrNotFound
		}
		return "", nil, fmt.Errorf("finding user: %w", err)
	}

	collegeName := ""
	if user.College != nil {
		collegeName = user.College.Name
	}

	var courses []CourseOption
	if user.CollegeID != nil {
		var rows []models.Course
		if err := s.store.db.Where("college_id = ? AND is_deleted = false", *user.CollegeID).Find(&rows).Error; err != nil {
			return "", nil, fmt.Errorf("loading courses: %w", err)
		}
		for _, row := range rows {
			courses = append(courses, CourseOption{ID: row.ID, Name: row.Name})
		}
	}
	return collegeName, courses, nil
}

func reviewerRef(reviewerID uint) string {
	return strconv.FormatUint(uint64(reviewerID), 10)
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
