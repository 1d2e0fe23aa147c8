package models

import "gorm.io/gorm"

type Announcement struct {
	gorm.Model
	CollegeID uint   `gorm:"not null;index" json:"collegeId"`
	Title     string `gorm:"not null" json:"title"`
	Message   string `gorm:"type:text;not null" json:"message"`
	CreatedBy uint   `gorm:"not null" json:"createdBy"`
	IsDeleted bool   `gorm:"default:false" json:"-"`

	College College `gorm:"foreignKey:CollegeID" json:"-"`
}
