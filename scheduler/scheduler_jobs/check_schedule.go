package scheduler_jobs

import (
	"fmt"
	"log"
	"os"
	"runtime/debug"
	"time"

	"gorm.io/gorm"

	"pickemPool/models"
	"pickemPool/services/common"
	"pickemPool/services/extService"
)

// CheckSchedule makes sure today's contest exists and its games are loaded.
func CheckSchedule(db *gorm.DB) (err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Println("Recovered in CheckSchedule", r)
			debug.PrintStack()
			err = fmt.Errorf("panic recovered in CheckSchedule: %v", r)
		}
	}()

	sport := os.Getenv("CONTEST_SPORT")
	if sport == "" {
		sport = "baseball"
	}
	league := os.Getenv("CONTEST_LEAGUE")
	if league == "" {
		league = "mlb"
	}

	periodKey := time.Now().Format("2006-01-02")

	var contest models.Contest
	result := db.FirstOrCreate(&contest, models.Contest{
		PeriodKey: periodKey,
		Kind:      models.ContestKindDaily,
		Sport:     sport,
		League:    league,
	})
	if result.Error != nil {
		return result.Error
	}

	synced, err := extService.SyncGamesForPeriod(db, contest)
	if err != nil {
		common.LogError(db, "CheckSchedule", err)
		return err
	}

	// designate the last game of the day as the tiebreak game once
	if contest.TiebreakGameID == nil && synced > 0 {
		var last models.Game
		if err := db.Where("period_key = ?", periodKey).Order("start_date desc").First(&last).Error; err == nil {
			db.Model(&contest).Update("tiebreak_game_id", last.GameID)
		}
	}

	log.Printf("schedule sync for %s: %d games", periodKey, synced)
	return nil
}
