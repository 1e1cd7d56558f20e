package paymentService

import (
	"errors"
	"fmt"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"gorm.io/gorm"

	"pickemPool/models"
	"pickemPool/models/external"
)

var ErrRequestNotFound = errors.New("payment request not found")

// Provider is the opaque wallet-payment boundary: it creates a sign request
// and reports whether the participant has signed it. Wire details stay inside
// the implementation.
type Provider interface {
	CreatePayload(amount int64, memo string) (*external.XummPayloadResponse, error)
	PayloadStatus(requestID string) (*external.XummPayloadStatus, error)
}

// CreateRequest asks the wallet provider for a sign request and records it as
// pending until the participant signs, rejects, or the TTL lapses.
func CreateRequest(db *gorm.DB, provider Provider, amount int64, periodKey string, ttl time.Duration) (*models.PaymentRequest, error) {
	memo, err := gonanoid.New(12)
	if err != nil {
		return nil, err
	}

	payload, err := provider.CreatePayload(amount, fmt.Sprintf("pickem-%s-%s", periodKey, memo))
	if err != nil {
		return nil, err
	}

	request := models.PaymentRequest{
		RequestID:  payload.UUID,
		PeriodKey:  periodKey,
		Amount:     amount,
		Status:     models.PaymentStatusPending,
		PayloadURL: payload.Next.Always,
		ExpiresAt:  time.Now().Add(ttl),
	}
	if err := db.Create(&request).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

// CheckRequest advances a pending request by polling the provider once.
// Terminal requests are returned as-is; the state machine only moves
// pending -> signed | rejected | expired.
func CheckRequest(db *gorm.DB, provider Provider, requestID string) (*models.PaymentRequest, error) {
	var request models.PaymentRequest
	result := db.First(&request, "request_id = ?", requestID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, result.Error
	}

	if request.Terminal() {
		return &request, nil
	}

	status, err := provider.PayloadStatus(requestID)
	if err != nil {
		return nil, err
	}

	next, txID := NextStatus(request, status, time.Now())
	if next == request.Status {
		return &request, nil
	}

	updates := map[string]any{"status": next}
	if txID != nil {
		updates["tx_id"] = *txID
	}
	if err := db.Model(&request).Updates(updates).Error; err != nil {
		return nil, err
	}
	request.Status = next
	request.TxID = txID
	return &request, nil
}

// NextStatus decides the request's next state from the provider's answer.
// Expiry is checked first so a stale request can never be revived.
func NextStatus(request models.PaymentRequest, status *external.XummPayloadStatus, now time.Time) (string, *string) {
	if request.Terminal() {
		return request.Status, request.TxID
	}
	if now.After(request.ExpiresAt) {
		return models.PaymentStatusExpired, nil
	}
	if status == nil || !status.Meta.Exists {
		return models.PaymentStatusExpired, nil
	}
	if status.Meta.Signed {
		txID := status.Response.Txid
		return models.PaymentStatusSigned, &txID
	}
	if status.Meta.Cancelled {
		return models.PaymentStatusRejected, nil
	}
	if status.Meta.Expired {
		return models.PaymentStatusExpired, nil
	}
	return models.PaymentStatusPending, nil
}

// ExpireStale sweeps pending requests whose TTL has lapsed. Runs from cron so
// abandoned QR scans do not pile up.
func ExpireStale(db *gorm.DB) (int64, error) {
	result := db.Model(&models.PaymentRequest{}).
		Where("status = ? AND expires_at < ?", models.PaymentStatusPending, time.Now()).
		Update("status", models.PaymentStatusExpired)
	return result.RowsAffected, result.Error
}
