package common

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"pickemPool/models"
)

// LogError prints the error and records it so failures inside cron jobs and
// handlers are visible after the fact.
func LogError(db *gorm.DB, source string, err error) {
	log.Printf("[%s] %v", source, err)

	if db == nil {
		return
	}
	errLog := models.ErrorLog{
		Source:  source,
		Message: fmt.Sprintf("%v", err),
	}
	db.Create(&errLog)
}

func ESPNWrapper(requestUrl string) (*http.Response, error) {
	client := &http.Client{}
	req, err := http.NewRequest("GET", requestUrl, nil)
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != 200 {
		resp.Body.Close()
		return nil, fmt.Errorf("ESPN returned status %d", resp.StatusCode)
	}
	return resp, nil
}

func XummWrapper(method string, requestUrl string, body io.Reader) (*http.Response, error) {
	apiKey, ok := os.LookupEnv("XUMM_API_KEY")
	if ok == false {
		return nil, fmt.Errorf("XUMM_API_KEY not set in environment variables")
	}
	apiSecret, ok := os.LookupEnv("XUMM_API_SECRET")
	if ok == false {
		return nil, fmt.Errorf("XUMM_API_SECRET not set in environment variables")
	}

	client := &http.Client{}
	req, err := http.NewRequest(method, requestUrl, body)
	if err != nil {
		return nil, err
	}

	req.Header.Add("X-API-Key", apiKey)
	req.Header.Add("X-API-Secret", apiSecret)
	req.Header.Add("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != 200 {
		resp.Body.Close()
		return nil, fmt.Errorf("wallet provider returned status %d", resp.StatusCode)
	}
	return resp, nil
}

// ParseWeights reads a payout split like "50,30,20" into rank percentages.
func ParseWeights(raw string) ([]int, error) {
	parts := strings.Split(raw, ",")
	if len(parts) != 3 {
		return nil, fmt.Errorf("expected 3 prize weights, got %d", len(parts))
	}

	weights := make([]int, 0, len(parts))
	total := 0
	for _, part := range parts {
		weight, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid prize weight %q: %w", part, err)
		}
		if weight <= 0 {
			return nil, fmt.Errorf("prize weight must be positive, got %d", weight)
		}
		weights = append(weights, weight)
		total += weight
	}
	if total > 100 {
		return nil, fmt.Errorf("prize weights sum to %d%%, must not exceed 100%%", total)
	}
	return weights, nil
}
