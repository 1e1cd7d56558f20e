package storeService

import (
	"errors"
	"pickemPool/models"
)

var ErrNotFound = errors.New("record not found")

// ContestStore is the capability set resolution needs from storage. The gorm
// implementation is injected at startup; tests substitute an in-memory fake.
type ContestStore interface {
	GetContest(periodKey string) (*models.Contest, error)
	GetGamesForPeriod(periodKey string) ([]models.Game, error)
	GetEntries(periodKey string) ([]models.Entry, error)
	UpdateEntry(id uint, fields map[string]any) error
	ClaimResolution(periodKey string) (bool, error)
	SaveWinners(records []models.WinnerRecord) error
	CreateRefundRecord(rec *models.RefundRecord) error
}
