package scheduler

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"pickemPool/models"
	"pickemPool/scheduler/scheduler_jobs"
	"pickemPool/services/contestService"
	"pickemPool/services/storeService"
)

func SetupCron(s *discordgo.Session, db *gorm.DB, store storeService.ContestStore, cfg contestService.Config, announceChannel string) {
	cronService := cron.New(cron.WithSeconds())

	_, err := cronService.AddFunc("0 0 7 * * *", func() {
		// Every morning: create today's contest and pull its schedule
		err := scheduler_jobs.CheckSchedule(db)
		if err != nil {
			fmt.Println(err)
		}
	})

	_, err = cronService.AddFunc("0 */30 * * * *", func() {
		// Every 30 minutes: pull final scores for unresolved periods
		err := scheduler_jobs.CheckResults(db)
		if err != nil {
			fmt.Println(err)
		}
	})

	_, err = cronService.AddFunc("0 5 * * * *", func() {
		// Hourly: settle periods whose games are all final
		err := scheduler_jobs.CheckResolution(s, db, store, cfg, announceChannel)
		if err != nil {
			fmt.Println(err)
		}
	})

	_, err = cronService.AddFunc("0 */5 * * * *", func() {
		// Every 5 minutes: expire abandoned payment requests
		err := scheduler_jobs.CheckPayments(db)
		if err != nil {
			fmt.Println(err)
		}
	})

	if err != nil {
		errLog := models.ErrorLog{
			Source:  "CRON ERR",
			Message: fmt.Sprintf("%v", err),
		}
		db.Create(&errLog)
	}

	cronService.Start()
}
