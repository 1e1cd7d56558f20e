package scheduler_jobs

import (
	"errors"
	"fmt"
	"log"
	"runtime/debug"

	"github.com/bwmarrin/discordgo"
	"gorm.io/gorm"

	"pickemPool/models"
	"pickemPool/services/common"
	"pickemPool/services/contestService"
	"pickemPool/services/notifyService"
	"pickemPool/services/storeService"
)

// CheckResolution settles every unresolved period whose games all have a
// recorded outcome.
func CheckResolution(s *discordgo.Session, db *gorm.DB, store storeService.ContestStore, cfg contestService.Config, announceChannel string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Println("Recovered in CheckResolution", r)
			debug.PrintStack()
			err = fmt.Errorf("panic recovered in CheckResolution: %v", r)
		}
	}()

	var contests []models.Contest
	result := db.Where("resolved = ?", false).Find(&contests)
	if result.Error != nil {
		return result.Error
	}

	for _, contest := range contests {
		var pending int64
		countResult := db.Model(&models.Game{}).
			Where("period_key = ? AND winner_side IS NULL", contest.PeriodKey).
			Count(&pending)
		if countResult.Error != nil {
			common.LogError(db, "CheckResolution", countResult.Error)
			continue
		}
		if pending > 0 {
			continue
		}

		res, err := contestService.ResolvePeriod(store, contest.PeriodKey, cfg)
		if err != nil {
			if errors.Is(err, contestService.ErrNoEntries) || errors.Is(err, contestService.ErrAlreadyResolved) {
				continue
			}
			common.LogError(db, "CheckResolution", err)
			continue
		}

		log.Printf("resolved period %s: %s", contest.PeriodKey, res.Outcome)
		if err := notifyService.AnnounceResolution(s, announceChannel, contest.PeriodKey, res); err != nil {
			common.LogError(db, "CheckResolution", err)
		}
	}
	return nil
}
