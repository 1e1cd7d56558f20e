package models

import (
	"gorm.io/gorm"
	"time"
)

const (
	ContestKindDaily  = "daily"
	ContestKindWeekly = "weekly"
)

type Contest struct {
	gorm.Model
	ID             uint   `gorm:"primaryKey"`
	PeriodKey      string `gorm:"uniqueIndex; size:64"`
	Kind           string `gorm:"size:16; default:daily"`
	Sport          string `gorm:"size:32"`
	League         string `gorm:"size:64"`
	TiebreakGameID *string `gorm:"size:64"`
	Resolved       bool   `gorm:"default:false"`
	ResolvedAt     *time.Time
}
