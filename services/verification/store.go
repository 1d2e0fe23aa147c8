package verification

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"connectx/models"
)

// recordStore owns persistence for verification records and the denormalized
// flag on the user row. Every status transition goes through a conditional
// write guarded on the record still being pending, so a second writer whose
// read was stale loses the race instead of silently overwriting.
type recordStore struct {
	db *gorm.DB
}

func (s recordStore) findLatest(userID uint) (*models.Verification, error) {
	var rec models.Verification
	err := s.db.Where("user_id = ?", userID).Order("id DESC").First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("finding latest verification: %w", err)
	}
	return &rec, nil
}

// findActive returns the most recent pending or approved record, used to
// block duplicate submissions.
func (s recordStore) findActive(userID uint) (*models.Verification, error) {
	var rec models.Verification
	err := s.db.Where("user_id = ? AND status IN ?", userID, []string{
		models.VerificationStatusPending,
		models.VerificationStatusApproved,
	}).Order("id DESC").First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("finding active verification: %w", err)
	}
	return &rec, nil
}

func (s recordStore) hasApproved(userID uint) (bool, error) {
	var count int64
	err := s.db.Model(&models.Verification{}).
		Where("user_id = ? AND status = ?", userID, models.VerificationStatusApproved).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("checking approved verification: %w", err)
	}
	return count > 0, nil
}

func (s recordStore) findByID(id uint) (*models.Verification, error) {
	var rec models.Verification
	err := s.db.Preload("User").First(&rec, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("finding verification: %w", err)
	}
	return &rec, nil
}

// attachIDCard updates the ID card reference on the user's pending record or
// creates a fresh pending record when none exists.
func (s recordStore) attachIDCard(userID uint, idCardRef string) (*models.Verification, error) {
	var rec models.Verification
	err := s.db.Where("user_id = ? AND status = ?", userID, models.VerificationStatusPending).
		Order("id DESC").First(&rec).Error
	switch {
	case err == nil:
		if err := s.db.Model(&rec).Update("id_card_image", idCardRef).Error; err != nil {
			return nil, fmt.Errorf("updating id card: %w", err)
		}
		rec.IDCardImage = idCardRef
		return &rec, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		rec = models.Verification{
			UserID:      userID,
			IDCardImage: idCardRef,
			FaceImage:   "",
			Status:      models.VerificationStatusPending,
		}
		tx := s.db.Begin()
		if err := tx.Error; err != nil {
			return nil, fmt.Errorf("starting transaction: %w", err)
		}
		if err := tx.Create(&rec).Error; err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("creating verification: %w", err)
		}
		if err := syncUserFlag(tx, userID, models.VerificationStatusPending); err != nil {
			tx.Rollback()
			return nil, err
		}
		if err := tx.Commit().Error; err != nil {
			return nil, fmt.Errorf("committing verification: %w", err)
		}
		return &rec, nil
	default:
		return nil, fmt.Errorf("finding pending verification: %w", err)
	}
}

// applyDecision persists a scored outcome. The update only lands while the
// record is still pending; the user's verification flag is written in the
// same transaction.
func (s recordStore) applyDecision(rec *models.Verification, faceRef string, result MatchResult, combined int, status, remarks string, rejectedAt *time.Time) error {
	updates := map[string]interface{}{
		"face_image":       faceRef,
		"face_match_score": result.FaceScore,
		"college_match":    result.CollegeMatch,
		"course_match":     result.CourseMatch,
		"course_detected":  result.CourseDetected,
		"id_card_text":     result.IDCardText,
		"match_score":      combined,
		"analysis_remarks": remarks,
		"status":           status,
		"rejected_at":      rejectedAt,
	}
	if status == models.VerificationStatusApproved {
		updates["reviewed_by"] = models.ReviewedBySystem
	}

	tx := s.db.Begin()
	if err := tx.Error; err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}

	res := tx.Model(&models.Verification{}).
		Where("id = ? AND status = ?", rec.ID, models.VerificationStatusPending).
		Updates(updates)
	if res.Error != nil {
		tx.Rollback()
		return fmt.Errorf("updating verification: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		tx.Rollback()
		return ErrAlreadyProcessed
	}

	if err := syncUserFlag(tx, rec.UserID, status); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("committing decision: %w", err)
	}
	return nil
}

// applyReview persists an admin approve/reject with the same pending guard.
func (s recordStore) applyReview(rec *models.Verification, status, reviewedBy string, rejectedAt *time.Time) error {
	tx := s.db.Begin()
	if err := tx.Error; err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}

	res := tx.Model(&models.Verification{}).
		Where("id = ? AND status = ?", rec.ID, models.VerificationStatusPending).
		Updates(map[string]interface{}{
			"status":      status,
			"reviewed_by": reviewedBy,
			"rejected_at": rejectedAt,
		})
	if res.Error != nil {
		tx.Rollback()
		return fmt.Errorf("updating verification: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		tx.Rollback()
		return ErrAlreadyProcessed
	}

	if err := syncUserFlag(tx, rec.UserID, status); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("committing review: %w", err)
	}
	return nil
}

// listPending returns pending student records, optionally scoped to one
// college for institution-level admins.
func (s recordStore) listPending(collegeID *uint) ([]models.Verification, error) {
	query := s.db.Model(&models.Verification{}).
		Joins("JOIN users ON users.id = verifications.user_id").
		Where("verifications.status = ? AND users.role = ?", models.VerificationStatusPending, models.RoleStudent).
		Preload("User").Preload("User.College").
		Order("verifications.created_at DESC")
	if collegeID != nil {
		query = query.Where("users.college_id = ?", *collegeID)
	}

	var recs []models.Verification
	if err := query.Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("listing pending verifications: %w", err)
	}
	return recs, nil
}

// syncUserFlag keeps the denormalized flag on the user row in step with the
// record status. Callers run it inside the same transaction as the record
// write; a failure is surfaced as ErrSyncFailure and rolls the whole
// transition back.
func syncUserFlag(tx *gorm.DB, userID uint, status string) error {
	res := tx.Model(&models.User{}).Where("id = ?", userID).
		Update("verified_status", status)
	if res.Error != nil {
		return fmt.Errorf("%w: %v", ErrSyncFailure, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: user %d not found", ErrSyncFailure, userID)
	}
	return nil
}
