package scheduler_jobs

import (
	"fmt"
	"log"
	"runtime/debug"

	"gorm.io/gorm"

	"pickemPool/models"
	"pickemPool/services/common"
	"pickemPool/services/extService"
)

// CheckResults pulls final scores for every unresolved contest period.
func CheckResults(db *gorm.DB) (err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Println("Recovered in CheckResults", r)
			debug.PrintStack()
			err = fmt.Errorf("panic recovered in CheckResults: %v", r)
		}
	}()

	var contests []models.Contest
	result := db.Where("resolved = ?", false).Find(&contests)
	if result.Error != nil {
		return result.Error
	}

	for _, contest := range contests {
		finalized, err := extService.SyncResults(db, contest)
		if err != nil {
			common.LogError(db, "CheckResults", err)
			continue
		}
		if finalized > 0 {
			log.Printf("recorded %d final results for %s", finalized, contest.PeriodKey)
		}
	}
	return nil
}
