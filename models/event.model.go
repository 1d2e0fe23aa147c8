package models

import (
	"time"

	"gorm.io/gorm"
)

type Event struct {
	gorm.Model
	Title       string    `gorm:"not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Date        time.Time `gorm:"not null;index" json:"date"`
	Image       string    `gorm:"type:text;default:''" json:"image"`
	CollegeID   uint      `gorm:"not null;index" json:"collegeId"`
	IsDeleted   bool      `gorm:"default:false" json:"-"`

	College   College     `gorm:"foreignKey:CollegeID" json:"college,omitempty"`
	Attendees []EventRSVP `gorm:"foreignKey:EventID" json:"-"`
}

// EventRSVP is unique per (user, event).
type EventRSVP struct {
	gorm.Model
	UserID  uint `gorm:"not null;uniqueIndex:idx_rsvp_user_event" json:"userId"`
	EventID uint `gorm:"not null;uniqueIndex:idx_rsvp_user_event" json:"eventId"`

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
