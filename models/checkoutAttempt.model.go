package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ProductType identifies what a payment buys
type ProductType string

const ProductTypeCourse ProductType = "COURSE"

// CheckoutMode is how the browser reaches the payment provider
type CheckoutMode string

const (
	CheckoutModeRedirect CheckoutMode = "redirect"
	CheckoutModeWidget   CheckoutMode = "widget"
)

// CheckoutAttempt records every payment this service initiated, and what became of it
type CheckoutAttempt struct {
	gorm.Model
	Reference     string            `gorm:"type:varchar(120);uniqueIndex;not null" json:"reference"`
	UserID        string            `gorm:"type:varchar(64);not null;index" json:"userId"`
	Email         string            `gorm:"type:varchar(255)" json:"email"`
	ProductType   ProductType       `gorm:"type:varchar(30);not null" json:"productType"`
	ProductID     string            `gorm:"type:varchar(64);not null;index" json:"productId"`
	Mode          CheckoutMode      `gorm:"type:varchar(20)" json:"mode"`
	AmountInCents int64             `gorm:"default:0" json:"amountInCents"` // informative, backend owns the price
	Currency      string            `gorm:"type:varchar(10)" json:"currency"`
	Status        TransactionStatus `gorm:"type:varchar(20);default:'PENDING';index" json:"status"`
	TransactionID string            `gorm:"type:varchar(120);index" json:"transactionId"`
	Verified      bool              `gorm:"default:false" json:"verified"`

	LastCheckedAt   *time.Time     `json:"lastCheckedAt"`
	NotifiedAt      *time.Time     `json:"notifiedAt"`
	ProviderPayload datatypes.JSON `json:"providerPayload"` // last verified transaction, as returned by the backend
}

func (CheckoutAttempt) TableName() string {
	return "checkout_attempts"
}
