package models

import (
	"time"

	"gorm.io/gorm"
)

type OTP struct {
	gorm.Model
	UserID    uint      `gorm:"index" json:"userId"`
	Email     string    `gorm:"size:100;index" json:"email,omitempty"`
	Phone     string    `gorm:"size:15;index" json:"phone,omitempty"`
	Code      string    `gorm:"size:6;not null" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expiresAt"`
	IsUsed    bool      `gorm:"default:false" json:"isUsed"`
	IsDeleted bool      `gorm:"default:false" json:"-"`
}
