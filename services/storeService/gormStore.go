package storeService

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"pickemPool/models"
)

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) GetContest(periodKey string) (*models.Contest, error) {
	var contest models.Contest
	result := s.db.First(&contest, "period_key = ?", periodKey)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, result.Error
	}
	return &contest, nil
}

func (s *GormStore) GetGamesForPeriod(periodKey string) ([]models.Game, error) {
	var games []models.Game
	result := s.db.Where("period_key = ?", periodKey).Order("start_date asc").Find(&games)
	if result.Error != nil {
		return nil, result.Error
	}
	return games, nil
}

// GetEntries returns the period's active entries in submission order.
func (s *GormStore) GetEntries(periodKey string) ([]models.Entry, error) {
	var entries []models.Entry
	result := s.db.
		Preload("Picks").
		Where("period_key = ? AND status = ?", periodKey, models.EntryStatusActive).
		Order("id asc").
		Find(&entries)
	if result.Error != nil {
		return nil, result.Error
	}
	return entries, nil
}

func (s *GormStore) UpdateEntry(id uint, fields map[string]any) error {
	result := s.db.Model(&models.Entry{}).Where("id = ?", id).Updates(fields)
	return result.Error
}

// ClaimResolution flips the contest's resolved flag with a guarded update so
// two concurrent resolutions of one period cannot both proceed.
func (s *GormStore) ClaimResolution(periodKey string) (bool, error) {
	now := time.Now()
	result := s.db.Model(&models.Contest{}).
		Where("period_key = ? AND resolved = ?", periodKey, false).
		Updates(map[string]any{"resolved": true, "resolved_at": now})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (s *GormStore) SaveWinners(records []models.WinnerRecord) error {
	for _, rec := range records {
		// skip the association so Create does not upsert the entry row
		if err := s.db.Omit("Entry").Create(&rec).Error; err != nil {
			return err
		}
	}
	return nil
}

func (s *GormStore) CreateRefundRecord(rec *models.RefundRecord) error {
	return s.db.Omit("Entry").Create(rec).Error
}
