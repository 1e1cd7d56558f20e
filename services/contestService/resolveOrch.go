package contestService

import (
	"errors"
	"fmt"
	"log"

	"pickemPool/models"
	"pickemPool/services/storeService"
)

const (
	OutcomeResolved  = "resolved"
	OutcomeCancelled = "cancelled"
)

var (
	ErrNoEntries       = errors.New("no entries for period")
	ErrNoGames         = errors.New("no games for period")
	ErrAlreadyResolved = errors.New("period already resolved")
	ErrGamesNotFinal   = errors.New("period has games without a final result")
)

type Config struct {
	EntryFee            int64
	PrizeWeights        []int
	MinEntries          int
	AllowPartialResults bool
}

type Result struct {
	Outcome        string
	Winners        []models.WinnerRecord
	Refunds        []models.RefundRecord
	TotalPrizePool int64
	Undistributed  int64
}

// ResolvePeriod settles one contest period: it claims the period, routes to
// the refund path when the entry count is below the minimum, otherwise scores
// (unless manual scores are already present), ranks and pays out the top
// entries. Scoring, ranking and distribution run sequentially over the full
// in-memory dataset.
func ResolvePeriod(store storeService.ContestStore, periodKey string, cfg Config) (*Result, error) {
	contest, err := store.GetContest(periodKey)
	if err != nil {
		return nil, err
	}

	games, err := store.GetGamesForPeriod(periodKey)
	if err != nil {
		return nil, err
	}
	if len(games) == 0 {
		return nil, ErrNoGames
	}

	entries, err := store.GetEntries(periodKey)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, ErrNoEntries
	}

	if !cfg.AllowPartialResults {
		for _, game := range games {
			if !game.Final() {
				return nil, fmt.Errorf("%w: %s has not finished", ErrGamesNotFinal, game.GameID)
			}
		}
	}

	claimed, err := store.ClaimResolution(periodKey)
	if err != nil {
		return nil, err
	}
	if !claimed {
		return nil, ErrAlreadyResolved
	}

	if len(entries) < cfg.MinEntries {
		return cancelPeriod(store, entries, cfg)
	}

	// Two-branch decision, made once for the whole period: any positive
	// pre-set score means an admin corrected results by hand, and those
	// scores are authoritative.
	if !hasManualScores(entries) {
		for i := range entries {
			score := Score(entries[i], games)
			entries[i].Score = &score
			if err := store.UpdateEntry(entries[i].ID, map[string]any{"score": score}); err != nil {
				return nil, err
			}
		}
	} else {
		log.Printf("period %s has manual scores, skipping automatic scoring", periodKey)
	}

	ranked := Rank(entries, actualTiebreakValue(contest, games))
	winners, pool, undistributed := Distribute(ranked, cfg.EntryFee, cfg.PrizeWeights)

	if err := store.SaveWinners(winners); err != nil {
		return nil, err
	}

	wonIDs := make(map[uint]bool, len(winners))
	for _, rec := range winners {
		wonIDs[rec.EntryID] = true
	}
	for _, entry := range entries {
		status := models.EntryStatusLost
		if wonIDs[entry.ID] {
			status = models.EntryStatusWon
		}
		if err := store.UpdateEntry(entry.ID, map[string]any{"status": status}); err != nil {
			return nil, err
		}
	}

	return &Result{
		Outcome:        OutcomeResolved,
		Winners:        winners,
		TotalPrizePool: pool,
		Undistributed:  undistributed,
	}, nil
}

func cancelPeriod(store storeService.ContestStore, entries []models.Entry, cfg Config) (*Result, error) {
	refunds := BuildRefunds(entries, cfg.EntryFee)
	for i := range refunds {
		if err := store.CreateRefundRecord(&refunds[i]); err != nil {
			return nil, err
		}
		if err := store.UpdateEntry(refunds[i].EntryID, map[string]any{"status": models.EntryStatusRefunded}); err != nil {
			return nil, err
		}
	}
	return &Result{Outcome: OutcomeCancelled, Refunds: refunds}, nil
}

func hasManualScores(entries []models.Entry) bool {
	for _, entry := range entries {
		if entry.Score != nil && *entry.Score > 0 {
			return true
		}
	}
	return false
}

// actualTiebreakValue is the observed total score of the designated tiebreak
// game, falling back to the last game of the period when none is designated.
func actualTiebreakValue(contest *models.Contest, games []models.Game) int {
	var tiebreak *models.Game
	if contest.TiebreakGameID != nil {
		for i := range games {
			if games[i].GameID == *contest.TiebreakGameID {
				tiebreak = &games[i]
				break
			}
		}
	}
	if tiebreak == nil {
		for i := range games {
			if tiebreak == nil || games[i].StartDate.After(tiebreak.StartDate) {
				tiebreak = &games[i]
			}
		}
	}
	if tiebreak == nil || tiebreak.HomeScore == nil || tiebreak.AwayScore == nil {
		return 0
	}
	return *tiebreak.HomeScore + *tiebreak.AwayScore
}
