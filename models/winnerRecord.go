package models

import "gorm.io/gorm"

// WinnerRecord is a derived view of a resolved period. It can always be
// recomputed from the stored entries and games.
type WinnerRecord struct {
	gorm.Model
	ID        uint   `gorm:"primaryKey"`
	PeriodKey string `gorm:"index; size:64"`
	Rank      int
	EntryID   uint
	Entry     Entry `gorm:"foreignKey:EntryID"`
	Prize     int64
}
