package models

import "gorm.io/gorm"

type College struct {
	gorm.Model
	Name      string `gorm:"not null" json:"name"`
	Slug      string `gorm:"unique;not null" json:"slug"`
	Logo      string `gorm:"default:''" json:"logo"`
	City      string `gorm:"default:''" json:"city"`
	Website   string `gorm:"default:''" json:"website"`
	CreatedBy uint   `gorm:"default:0" json:"createdBy"`
	IsDeleted bool   `gorm:"default:false" json:"-"`

	Courses []Course `gorm:"foreignKey:CollegeID" json:"courses,omitempty"`
}

// Course is a catalogue entry under a college, matched against ID card text
// during student verification.
type Course struct {
	gorm.Model
	CollegeID uint   `gorm:"not null;index" json:"collegeId"`
	Name      string `gorm:"not null" json:"name"`
	IsDeleted bool   `gorm:"default:false" json:"-"`

	College College `gorm:"foreignKey:CollegeID" json:"-"`
}
