package models

import (
	"time"

	"gorm.io/gorm"
)

// VerificationStatus values
const (
	VerificationStatusPending  = "pending"
	VerificationStatusApproved = "approved"
	VerificationStatusRejected = "rejected"
)

// ReviewedBySystem marks records decided by the scoring thresholds rather
// than a human admin.
const ReviewedBySystem = "system"

// Verification is one student identity-verification attempt. A user has at
// most one non-terminal record at a time; rejected records stay around as an
// audit trail and gate resubmission through the cooldown window.
type Verification struct {
	gorm.Model
	UserID      uint   `gorm:"not null;index" json:"userId"`
	IDCardImage string `gorm:"type:text;not null" json:"idCardImage"`
	FaceImage   string `gorm:"type:text;default:''" json:"faceImage"`
	Status      string `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`

	// Analysis results, set together once the face image is scored.
	FaceMatchScore  *int   `json:"faceMatchScore,omitempty"`
	CollegeMatch    *bool  `json:"collegeMatch,omitempty"`
	CourseMatch     *bool  `json:"courseMatch,omitempty"`
	CourseDetected  string `gorm:"type:text" json:"courseDetected,omitempty"`
	IDCardText      string `gorm:"type:text" json:"idCardText,omitempty"`
	MatchScore      *int   `json:"matchScore,omitempty"`
	AnalysisRemarks string `gorm:"type:text" json:"analysisRemarks,omitempty"`

	// Admin user ID as a string, or "system" for auto decisions.
	ReviewedBy string     `gorm:"type:varchar(50)" json:"reviewedBy,omitempty"`
	RejectedAt *time.Time `json:"rejectedAt,omitempty"`

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
