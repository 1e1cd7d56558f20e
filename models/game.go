package models

import (
	"gorm.io/gorm"
	"time"
)

const (
	SideHome = "home"
	SideAway = "away"
)

type Game struct {
	gorm.Model
	ID         uint   `gorm:"primaryKey"`
	GameID     string `gorm:"uniqueIndex; size:64"`
	PeriodKey  string `gorm:"index; size:64"`
	HomeTeam   string
	AwayTeam   string
	StartDate  time.Time
	HomeScore  *int
	AwayScore  *int
	WinnerSide *string `gorm:"size:8"`
}

// Final reports whether the game has a recorded outcome.
func (g Game) Final() bool {
	return g.WinnerSide != nil
}
