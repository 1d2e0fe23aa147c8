package models

import "gorm.io/gorm"

type Post struct {
	gorm.Model
	UserID    uint   `gorm:"not null;index" json:"userId"`
	Caption   string `gorm:"type:text" json:"caption"`
	Image     string `gorm:"type:text;default:''" json:"image"`
	IsDeleted bool   `gorm:"default:false" json:"-"`

	User     User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Likes    []Like    `gorm:"foreignKey:PostID" json:"-"`
	Comments []Comment `gorm:"foreignKey:PostID" json:"-"`
}

// Like is unique per (user, post).
type Like struct {
	gorm.Model
	UserID uint `gorm:"not null;uniqueIndex:idx_like_user_post" json:"userId"`
	PostID uint `gorm:"not null;uniqueIndex:idx_like_user_post" json:"postId"`

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

type Comment struct {
	gorm.Model
	UserID uint   `gorm:"not null;index" json:"userId"`
	PostID uint   `gorm:"not null;index" json:"postId"`
	Text   string `gorm:"type:text;not null" json:"text"`

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
