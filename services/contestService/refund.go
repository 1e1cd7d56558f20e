package contestService

import (
	"log"

	"pickemPool/models"
)

// BuildRefunds produces one refund per entry that actually paid. Entries
// without a payment reference never paid a fee, so they are skipped.
func BuildRefunds(entries []models.Entry, entryFee int64) []models.RefundRecord {
	var records []models.RefundRecord
	for _, entry := range entries {
		if entry.PaymentRef == nil || *entry.PaymentRef == "" {
			log.Printf("entry %s has no payment reference, skipping refund", entry.EntryID)
			continue
		}
		records = append(records, models.RefundRecord{
			PeriodKey:  entry.PeriodKey,
			EntryID:    entry.ID,
			Amount:     entryFee,
			Reason:     models.RefundReasonInsufficientEntries,
			PaymentRef: *entry.PaymentRef,
		})
	}
	return records
}
