package models

import "gorm.io/gorm"

const (
	EntryStatusActive   = "active"
	EntryStatusWon      = "won"
	EntryStatusLost     = "lost"
	EntryStatusRefunded = "refunded"
)

type Entry struct {
	gorm.Model
	ID             uint    `gorm:"primaryKey"`
	EntryID        string  `gorm:"uniqueIndex; size:32"`
	PeriodKey      string  `gorm:"index; size:64"`
	DisplayName    string  `gorm:"size:64"`
	TiebreakerRuns int
	Score          *int
	Status         string  `gorm:"size:16; default:active"`
	PaymentRef     *string `gorm:"size:64"`
	Picks          []Pick
}

type Pick struct {
	ID      uint   `gorm:"primaryKey"`
	EntryID uint   `gorm:"index"`
	GameID  string `gorm:"size:64"`
	Side    string `gorm:"size:8"`
}
