package contestService

import "pickemPool/models"

// DefaultPrizeWeights is the stock payout split for ranks 1..3, in percent.
var DefaultPrizeWeights = []int{50, 30, 20}

// Distribute splits the prize pool across the top ranked entries. The pool is
// funded by every entry in the period, not just the winners. Each prize is
// truncated to a whole token unit, so the paid total can fall short of the
// pool; the remainder is returned as undistributed rather than silently lost.
// With fewer entries than weights, the missing ranks are simply not paid.
func Distribute(ranked []models.Entry, entryFee int64, weights []int) (records []models.WinnerRecord, pool int64, undistributed int64) {
	pool = int64(len(ranked)) * entryFee

	var paid int64
	for i, weight := range weights {
		if i >= len(ranked) {
			break
		}
		prize := pool * int64(weight) / 100
		records = append(records, models.WinnerRecord{
			PeriodKey: ranked[i].PeriodKey,
			Rank:      i + 1,
			EntryID:   ranked[i].ID,
			Entry:     ranked[i],
			Prize:     prize,
		})
		paid += prize
	}

	return records, pool, pool - paid
}
