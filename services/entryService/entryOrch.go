package entryService

import (
	"errors"
	"fmt"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"gorm.io/gorm"

	"pickemPool/models"
)

var (
	ErrContestNotFound    = errors.New("contest not found")
	ErrContestClosed      = errors.New("contest is closed for entries")
	ErrInvalidPick        = errors.New("invalid pick")
	ErrPaymentNotSigned   = errors.New("payment request is not signed")
	ErrPaymentAlreadyUsed = errors.New("payment request already used by another entry")
)

type SubmitRequest struct {
	PeriodKey      string
	DisplayName    string
	TiebreakerRuns int
	PaymentRef     string
	Picks          map[string]string
}

// SubmitEntry validates and records one contest submission. The entry is only
// created when the named payment request is signed and unused; the payment is
// consumed in the same transaction so it cannot fund two entries.
func SubmitEntry(db *gorm.DB, req SubmitRequest, now time.Time) (*models.Entry, error) {
	var contest models.Contest
	result := db.First(&contest, "period_key = ?", req.PeriodKey)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrContestNotFound
		}
		return nil, result.Error
	}
	if contest.Resolved {
		return nil, ErrContestClosed
	}

	var games []models.Game
	if err := db.Where("period_key = ?", req.PeriodKey).Find(&games).Error; err != nil {
		return nil, err
	}

	if err := ValidatePicks(req, games, now); err != nil {
		return nil, err
	}

	entryID, err := gonanoid.New(12)
	if err != nil {
		return nil, err
	}

	entry := models.Entry{
		EntryID:        entryID,
		PeriodKey:      req.PeriodKey,
		DisplayName:    req.DisplayName,
		TiebreakerRuns: req.TiebreakerRuns,
		Status:         models.EntryStatusActive,
		PaymentRef:     &req.PaymentRef,
	}
	for gameID, side := range req.Picks {
		entry.Picks = append(entry.Picks, models.Pick{GameID: gameID, Side: side})
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		var payment models.PaymentRequest
		result := tx.First(&payment, "request_id = ?", req.PaymentRef)
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				return ErrPaymentNotSigned
			}
			return result.Error
		}
		if payment.Status != models.PaymentStatusSigned {
			return ErrPaymentNotSigned
		}

		claim := tx.Model(&models.PaymentRequest{}).
			Where("request_id = ? AND consumed = ?", req.PaymentRef, false).
			Update("consumed", true)
		if claim.Error != nil {
			return claim.Error
		}
		if claim.RowsAffected == 0 {
			return ErrPaymentAlreadyUsed
		}

		return tx.Create(&entry).Error
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// ValidatePicks checks that the submission fits the period: entries close at
// the first game's start, every pick must reference a game in the period with
// a valid side, and no game may be picked twice. Partial pick sets are
// allowed; unpicked games simply cannot score.
func ValidatePicks(req SubmitRequest, games []models.Game, now time.Time) error {
	if len(games) == 0 {
		return fmt.Errorf("%w: period has no games", ErrContestClosed)
	}
	if len(req.Picks) == 0 {
		return fmt.Errorf("%w: no picks submitted", ErrInvalidPick)
	}

	earliest := games[0].StartDate
	gameIDs := make(map[string]bool, len(games))
	for _, game := range games {
		gameIDs[game.GameID] = true
		if game.StartDate.Before(earliest) {
			earliest = game.StartDate
		}
	}
	if !now.Before(earliest) {
		return fmt.Errorf("%w: first game has started", ErrContestClosed)
	}

	for gameID, side := range req.Picks {
		if !gameIDs[gameID] {
			return fmt.Errorf("%w: game %s is not in this period", ErrInvalidPick, gameID)
		}
		if side != models.SideHome && side != models.SideAway {
			return fmt.Errorf("%w: side %q for game %s", ErrInvalidPick, side, gameID)
		}
	}
	return nil
}
