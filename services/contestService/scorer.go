package contestService

import (
	"log"

	"pickemPool/models"
)

// Score counts how many of the entry's picks match a recorded winning side.
// Games without an outcome contribute nothing. Picks pointing at a game that
// is not in the period are skipped rather than failing the whole entry, since
// schedule data can lag behind submissions.
func Score(entry models.Entry, games []models.Game) int {
	byID := make(map[string]models.Game, len(games))
	for _, g := range games {
		byID[g.GameID] = g
	}

	score := 0
	for _, pick := range entry.Picks {
		game, found := byID[pick.GameID]
		if !found {
			log.Printf("entry %s picked unknown game %s, ignoring", entry.EntryID, pick.GameID)
			continue
		}
		if game.WinnerSide != nil && *game.WinnerSide == pick.Side {
			score++
		}
	}
	return score
}
