package models

import (
	"time"

	"gorm.io/gorm"
)

// SubscriptionStatus values
const (
	SubscriptionPending   = "pending"
	SubscriptionActive    = "active"
	SubscriptionCancelled = "cancelled"
	SubscriptionExpired   = "expired"
)

// PlanType values
const (
	PlanMonthly = "monthly"
	PlanAnnual  = "annual"
)

// Subscription tracks a premium subscription created at the payment gateway.
type Subscription struct {
	gorm.Model
	UserID           uint       `gorm:"not null;index" json:"userId"`
	GatewaySubID     string     `gorm:"type:varchar(100);uniqueIndex" json:"gatewaySubId"`
	GatewayPlanID    string     `gorm:"type:varchar(100)" json:"gatewayPlanId"`
	PlanType         string     `gorm:"type:varchar(20);not null" json:"planType"`
	Status           string     `gorm:"type:varchar(20);default:'pending'" json:"status"`
	CurrentPeriodEnd time.Time  `json:"currentPeriodEnd"`
	CancelledAt      *time.Time `json:"cancelledAt,omitempty"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}
