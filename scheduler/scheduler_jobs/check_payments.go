package scheduler_jobs

import (
	"fmt"
	"log"
	"runtime/debug"

	"gorm.io/gorm"

	"pickemPool/services/paymentService"
)

// CheckPayments expires pending payment requests whose TTL has lapsed.
func CheckPayments(db *gorm.DB) (err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Println("Recovered in CheckPayments", r)
			debug.PrintStack()
			err = fmt.Errorf("panic recovered in CheckPayments: %v", r)
		}
	}()

	expired, err := paymentService.ExpireStale(db)
	if err != nil {
		return err
	}
	if expired > 0 {
		log.Printf("expired %d stale payment requests", expired)
	}
	return nil
}
