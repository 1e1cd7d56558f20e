package models

import "gorm.io/gorm"

const RefundReasonInsufficientEntries = "insufficient_entries"

type RefundRecord struct {
	gorm.Model
	ID         uint   `gorm:"primaryKey"`
	PeriodKey  string `gorm:"index; size:64"`
	EntryID    uint
	Entry      Entry `gorm:"foreignKey:EntryID"`
	Amount     int64
	Reason     string `gorm:"size:32"`
	PaymentRef string `gorm:"size:64"`
}
