package models

import (
	"time"

	"gorm.io/gorm"
)

// PurchaseStatus values
const (
	PurchaseStatusPending = "pending"
	PurchaseStatusSuccess = "success"
	PurchaseStatusFailed  = "failed"
)

// CoinTransactionType values
const (
	CoinTxPurchase = "purchase"
	CoinTxGift     = "gift"
)

// CoinBundle is a purchasable pack of coins, seeded at startup.
type CoinBundle struct {
	gorm.Model
	AmountINR uint `gorm:"not null" json:"amountINR"`
	Coins     uint `gorm:"not null" json:"coins"`
}

// CoinPurchase tracks a payment-gateway order for a bundle.
type CoinPurchase struct {
	gorm.Model
	UserID    uint   `gorm:"not null;index" json:"userId"`
	BundleID  uint   `gorm:"not null" json:"bundleId"`
	Coins     uint   `gorm:"not null" json:"coins"`
	AmountINR uint   `gorm:"not null" json:"amountINR"`
	Status    string `gorm:"type:varchar(20);default:'pending'" json:"status"`
	OrderID   string `gorm:"type:varchar(100);index" json:"orderId"`
	PaymentID string `gorm:"type:varchar(100)" json:"paymentId"`

	User   User       `gorm:"foreignKey:UserID" json:"-"`
	Bundle CoinBundle `gorm:"foreignKey:BundleID" json:"bundle,omitempty"`
}

// CoinTransaction is the ledger of coin movements (purchases and gifts).
type CoinTransaction struct {
	gorm.Model
	FromUser *uint  `gorm:"index" json:"fromUser,omitempty"`
	ToUser   uint   `gorm:"not null;index" json:"toUser"`
	Coins    uint   `gorm:"not null" json:"coins"`
	Type     string `gorm:"type:varchar(20);not null" json:"type"`

	TransactionDate time.Time `gorm:"not null" json:"transactionDate"`

	Sender   *User `gorm:"foreignKey:FromUser" json:"sender,omitempty"`
	Receiver User  `gorm:"foreignKey:ToUser" json:"receiver,omitempty"`
}

func (CoinTransaction) TableName() string {
	return "coin_transactions"
}
