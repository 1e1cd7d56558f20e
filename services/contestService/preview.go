package contestService

import (
	"pickemPool/models"
	"pickemPool/services/storeService"
)

// PreviewStandings ranks the period's entries as they stand right now,
// scoring in memory without persisting anything. Manual scores keep the same
// precedence they have at resolution time.
func PreviewStandings(store storeService.ContestStore, periodKey string) ([]models.Entry, error) {
	contest, err := store.GetContest(periodKey)
	if err != nil {
		return nil, err
	}

	games, err := store.GetGamesForPeriod(periodKey)
	if err != nil {
		return nil, err
	}

	entries, err := store.GetEntries(periodKey)
	if err != nil {
		return nil, err
	}

	if !hasManualScores(entries) {
		for i := range entries {
			score := Score(entries[i], games)
			entries[i].Score = &score
		}
	}

	return Rank(entries, actualTiebreakValue(contest, games)), nil
}
