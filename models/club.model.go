package models

import "gorm.io/gorm"

type Club struct {
	gorm.Model
	Name        string `gorm:"not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	CollegeID   uint   `gorm:"not null;index" json:"collegeId"`
	AdminID     *uint  `json:"adminId"`
	IsDeleted   bool   `gorm:"default:false" json:"-"`

	College College      `gorm:"foreignKey:CollegeID" json:"college,omitempty"`
	Members []ClubMember `gorm:"foreignKey:ClubID" json:"-"`
}

// ClubMember is unique per (user, club).
type ClubMember struct {
	gorm.Model
	UserID uint `gorm:"not null;uniqueIndex:idx_member_user_club" json:"userId"`
	ClubID uint `gorm:"not null;uniqueIndex:idx_member_user_club" json:"clubId"`

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
