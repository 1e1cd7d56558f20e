package contestService

import (
	"sort"

	"pickemPool/models"
)

// Rank sorts entries into final standings without dropping any:
// higher score first, then the tiebreaker prediction closest to the actual
// value, then the higher raw prediction when both are equidistant. Entries
// tied on all three keep submission order so results are reproducible.
func Rank(entries []models.Entry, actualTiebreak int) []models.Entry {
	ranked := make([]models.Entry, len(entries))
	copy(ranked, entries)

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]

		aScore, bScore := scoreOf(a), scoreOf(b)
		if aScore != bScore {
			return aScore > bScore
		}

		aDist := absDiff(a.TiebreakerRuns, actualTiebreak)
		bDist := absDiff(b.TiebreakerRuns, actualTiebreak)
		if aDist != bDist {
			return aDist < bDist
		}

		if a.TiebreakerRuns != b.TiebreakerRuns {
			return a.TiebreakerRuns > b.TiebreakerRuns
		}

		return false
	})

	return ranked
}

func scoreOf(e models.Entry) int {
	if e.Score == nil {
		return 0
	}
	return *e.Score
}

func absDiff(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}
