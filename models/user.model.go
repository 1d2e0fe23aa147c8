package models

import (
	"time"

	"gorm.io/gorm"
)

// Role values
const (
	RoleStudent      = "student"
	RoleCollegeAdmin = "college_admin"
	RoleSuperAdmin   = "super_admin"
)

// VerifiedStatus mirrors the latest verification record for the user.
const (
	VerifiedStatusNone     = "none"
	VerifiedStatusPending  = "pending"
	VerifiedStatusApproved = "approved"
	VerifiedStatusRejected = "rejected"
)

type User struct {
	gorm.Model
	Name      string `gorm:"not null" json:"name"`
	Username  string `gorm:"size:50;index" json:"username"`
	Email     string `gorm:"unique;not null" json:"email"`
	Phone     string `gorm:"size:15;index" json:"phone"`
	Password  string `gorm:"not null" json:"-"`
	Role      string `gorm:"type:varchar(20);default:'student'" json:"role"`
	Avatar    string `gorm:"default:''" json:"avatar"`
	Banner    string `gorm:"default:''" json:"banner"`
	Batch     string `gorm:"size:20" json:"batch"`
	CollegeID *uint  `gorm:"index" json:"collegeId"`
	CourseID  *uint  `gorm:"index" json:"courseId"`

	// Kept in sync with the latest verification record at every transition.
	VerifiedStatus string `gorm:"type:varchar(20);default:'none'" json:"verifiedStatus"`
	BypassVerified bool   `gorm:"default:false" json:"bypassVerified"`

	IsEmailVerified bool `gorm:"default:false" json:"isEmailVerified"`
	IsPhoneVerified bool `gorm:"default:false" json:"isPhoneVerified"`

	Coins  uint `gorm:"default:0" json:"coins"`
	Points uint `gorm:"default:0" json:"points"`

	IsPremium     bool       `gorm:"default:false" json:"isPremium"`
	PremiumPlan   string     `gorm:"type:varchar(20)" json:"premiumPlan,omitempty"`
	PremiumBadge  string     `gorm:"type:varchar(20)" json:"premiumBadge,omitempty"`
	PremiumExpiry *time.Time `json:"premiumExpiry,omitempty"`

	LastLogin time.Time `gorm:"default:NULL" json:"lastLogin"`
	IsDeleted bool      `gorm:"default:false" json:"-"`

	College *College `gorm:"foreignKey:CollegeID" json:"college,omitempty"`
	Course  *Course  `gorm:"foreignKey:CourseID" json:"course,omitempty"`
}
