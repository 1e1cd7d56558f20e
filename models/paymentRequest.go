package models

import (
	"gorm.io/gorm"
	"time"
)

const (
	PaymentStatusPending  = "pending"
	PaymentStatusSigned   = "signed"
	PaymentStatusRejected = "rejected"
	PaymentStatusExpired  = "expired"
)

// PaymentRequest tracks one wallet-connect payment from creation until the
// participant signs, rejects, or lets it expire.
type PaymentRequest struct {
	gorm.Model
	ID         uint    `gorm:"primaryKey"`
	RequestID  string  `gorm:"uniqueIndex; size:64"`
	PeriodKey  string  `gorm:"index; size:64"`
	Amount     int64
	Status     string  `gorm:"size:16; default:pending"`
	TxID       *string `gorm:"size:128"`
	PayloadURL string
	ExpiresAt  time.Time
	Consumed   bool `gorm:"default:false"`
}

// Terminal reports whether the request can no longer change state.
func (p PaymentRequest) Terminal() bool {
	return p.Status != PaymentStatusPending
}
