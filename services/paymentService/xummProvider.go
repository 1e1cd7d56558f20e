package paymentService

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"pickemPool/models/external"
	"pickemPool/services/common"
)

const xummPayloadUrl = "https://xumm.app/api/v1/platform/payload"

// XummProvider signs entry fees through the XUMM wallet-connect API. The
// participant scans the QR behind PayloadURL; we only ever read back a
// signed/rejected flag and the transaction id.
type XummProvider struct {
	Destination string
	Currency    string
	Issuer      string
}

func NewXummProvider(destination, currency, issuer string) *XummProvider {
	return &XummProvider{
		Destination: destination,
		Currency:    currency,
		Issuer:      issuer,
	}
}

func (p *XummProvider) CreatePayload(amount int64, memo string) (*external.XummPayloadResponse, error) {
	payload := external.XummPayloadRequest{
		TxJSON: external.XummTxJSON{
			TransactionType: "Payment",
			Destination:     p.Destination,
			Amount: external.XummTokenAmount{
				Currency: p.Currency,
				Issuer:   p.Issuer,
				Value:    strconv.FormatInt(amount, 10),
			},
		},
	}
	payload.Options.Submit = true
	payload.Options.Expire = 15
	payload.CustomMeta.Identifier = memo
	payload.CustomMeta.Instruction = "Pick'em contest entry fee"

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	resp, err := common.XummWrapper("POST", xummPayloadUrl, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var created external.XummPayloadResponse
	err = json.NewDecoder(resp.Body).Decode(&created)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (p *XummProvider) PayloadStatus(requestID string) (*external.XummPayloadStatus, error) {
	resp, err := common.XummWrapper("GET", fmt.Sprintf("%s/%s", xummPayloadUrl, requestID), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var status external.XummPayloadStatus
	err = json.NewDecoder(resp.Body).Decode(&status)
	if err != nil {
		return nil, err
	}
	return &status, nil
}
