package models

import (
	"time"

	"gorm.io/gorm"
)

// Reward is redeemable against a user's points balance.
type Reward struct {
	gorm.Model
	Name           string `gorm:"not null" json:"name"`
	Description    string `gorm:"type:text" json:"description"`
	PointsRequired uint   `gorm:"not null" json:"pointsRequired"`
	Image          string `gorm:"default:''" json:"image"`
	IsDeleted      bool   `gorm:"default:false" json:"-"`
}

// Coupon is a single-use vendor voucher.
type Coupon struct {
	gorm.Model
	Vendor string     `gorm:"not null" json:"vendor"`
	Value  string     `gorm:"not null" json:"value"`
	QRCode string     `gorm:"type:text" json:"qrCode,omitempty"`
	Expiry time.Time  `gorm:"not null" json:"expiry"`
	UsedBy *uint      `gorm:"index" json:"usedBy,omitempty"`
	UsedAt *time.Time `json:"usedAt,omitempty"`
}
