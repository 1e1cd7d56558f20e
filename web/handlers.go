package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"gorm.io/gorm"

	"pickemPool/services/common"
	"pickemPool/services/contestService"
	"pickemPool/services/entryService"
	"pickemPool/services/notifyService"
	"pickemPool/services/paymentService"
	"pickemPool/services/storeService"
)

// Handler wires HTTP routes to the contest services.
type Handler struct {
	DB              *gorm.DB
	Store           storeService.ContestStore
	Provider        paymentService.Provider
	Cfg             contestService.Config
	PaymentTTL      time.Duration
	Session         *discordgo.Session
	AnnounceChannel string
}

func NewHandler(db *gorm.DB, store storeService.ContestStore, provider paymentService.Provider, cfg contestService.Config, paymentTTL time.Duration, session *discordgo.Session, announceChannel string) *Handler {
	return &Handler{
		DB:              db,
		Store:           store,
		Provider:        provider,
		Cfg:             cfg,
		PaymentTTL:      paymentTTL,
		Session:         session,
		AnnounceChannel: announceChannel,
	}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type winnerJSON struct {
	Rank        int    `json:"rank"`
	EntryID     string `json:"entryId"`
	DisplayName string `json:"displayName"`
	Prize       int64  `json:"prize"`
}

type resolveResponse struct {
	Outcome        string       `json:"outcome"`
	Winners        []winnerJSON `json:"winners"`
	TotalPrizePool int64        `json:"totalPrizePool"`
	Undistributed  int64        `json:"undistributed"`
	Refunds        int          `json:"refunds,omitempty"`
}

// Resolve triggers resolution for the period named in the query string.
func (h *Handler) Resolve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	periodKey := r.URL.Query().Get("period")
	if periodKey == "" {
		writeError(w, http.StatusBadRequest, "period query parameter is required")
		return
	}

	result, err := contestService.ResolvePeriod(h.Store, periodKey, h.Cfg)
	if err != nil {
		switch {
		case errors.Is(err, storeService.ErrNotFound),
			errors.Is(err, contestService.ErrNoEntries),
			errors.Is(err, contestService.ErrNoGames):
			writeError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, contestService.ErrAlreadyResolved):
			writeError(w, http.StatusConflict, err.Error())
		case errors.Is(err, contestService.ErrGamesNotFinal):
			writeError(w, http.StatusPreconditionFailed, err.Error())
		default:
			common.LogError(h.DB, "Resolve", err)
			writeError(w, http.StatusInternalServerError, "resolution failed")
		}
		return
	}

	if err := notifyService.AnnounceResolution(h.Session, h.AnnounceChannel, periodKey, result); err != nil {
		common.LogError(h.DB, "Resolve", err)
	}

	resp := resolveResponse{
		Outcome:        result.Outcome,
		Winners:        []winnerJSON{},
		TotalPrizePool: result.TotalPrizePool,
		Undistributed:  result.Undistributed,
		Refunds:        len(result.Refunds),
	}
	for _, rec := range result.Winners {
		resp.Winners = append(resp.Winners, winnerJSON{
			Rank:        rec.Rank,
			EntryID:     rec.Entry.EntryID,
			DisplayName: rec.Entry.DisplayName,
			Prize:       rec.Prize,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

type submitEntryRequest struct {
	PeriodKey      string            `json:"periodKey"`
	DisplayName    string            `json:"displayName"`
	TiebreakerRuns int               `json:"tiebreakerRuns"`
	PaymentRef     string            `json:"paymentRef"`
	Picks          map[string]string `json:"picks"`
}

func (h *Handler) SubmitEntry(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req submitEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	entry, err := entryService.SubmitEntry(h.DB, entryService.SubmitRequest{
		PeriodKey:      req.PeriodKey,
		DisplayName:    req.DisplayName,
		TiebreakerRuns: req.TiebreakerRuns,
		PaymentRef:     req.PaymentRef,
		Picks:          req.Picks,
	}, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, entryService.ErrContestNotFound):
			writeError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, entryService.ErrContestClosed),
			errors.Is(err, entryService.ErrInvalidPick):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, entryService.ErrPaymentNotSigned),
			errors.Is(err, entryService.ErrPaymentAlreadyUsed):
			writeError(w, http.StatusPaymentRequired, err.Error())
		default:
			common.LogError(h.DB, "SubmitEntry", err)
			writeError(w, http.StatusInternalServerError, "entry submission failed")
		}
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{
		"entryId": entry.EntryID,
		"status":  entry.Status,
	})
}

type createPaymentRequest struct {
	PeriodKey string `json:"periodKey"`
}

func (h *Handler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req createPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.PeriodKey == "" {
		writeError(w, http.StatusBadRequest, "periodKey is required")
		return
	}

	request, err := paymentService.CreateRequest(h.DB, h.Provider, h.Cfg.EntryFee, req.PeriodKey, h.PaymentTTL)
	if err != nil {
		common.LogError(h.DB, "CreatePayment", err)
		writeError(w, http.StatusBadGateway, "could not create payment request")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"requestId":  request.RequestID,
		"amount":     request.Amount,
		"status":     request.Status,
		"payloadUrl": request.PayloadURL,
		"expiresAt":  request.ExpiresAt.Format(time.RFC3339),
	})
}

// PaymentStatus reads a payment request, advancing pending ones by polling
// the provider once.
func (h *Handler) PaymentStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	requestID := strings.TrimPrefix(r.URL.Path, "/payments/")
	if requestID == "" || strings.Contains(requestID, "/") {
		writeError(w, http.StatusBadRequest, "invalid payment request id")
		return
	}

	request, err := paymentService.CheckRequest(h.DB, h.Provider, requestID)
	if err != nil {
		if errors.Is(err, paymentService.ErrRequestNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		common.LogError(h.DB, "PaymentStatus", err)
		writeError(w, http.StatusBadGateway, "could not check payment request")
		return
	}

	resp := map[string]any{
		"requestId": request.RequestID,
		"status":    request.Status,
	}
	if request.TxID != nil {
		resp["txId"] = *request.TxID
	}
	writeJSON(w, http.StatusOK, resp)
}

// Contest serves /contests/{period} and /contests/{period}/leaderboard.
func (h *Handler) Contest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/contests/")
	periodKey := rest
	leaderboard := false
	if strings.HasSuffix(rest, "/leaderboard") {
		periodKey = strings.TrimSuffix(rest, "/leaderboard")
		leaderboard = true
	}
	if periodKey == "" || strings.Contains(periodKey, "/") {
		writeError(w, http.StatusBadRequest, "invalid period key")
		return
	}

	if leaderboard {
		h.serveLeaderboard(w, periodKey)
		return
	}
	h.serveContest(w, periodKey)
}

func (h *Handler) serveContest(w http.ResponseWriter, periodKey string) {
	contest, err := h.Store.GetContest(periodKey)
	if err != nil {
		if errors.Is(err, storeService.ErrNotFound) {
			writeError(w, http.StatusNotFound, "contest not found")
			return
		}
		common.LogError(h.DB, "Contest", err)
		writeError(w, http.StatusInternalServerError, "could not load contest")
		return
	}

	games, err := h.Store.GetGamesForPeriod(periodKey)
	if err != nil {
		common.LogError(h.DB, "Contest", err)
		writeError(w, http.StatusInternalServerError, "could not load games")
		return
	}

	entries, err := h.Store.GetEntries(periodKey)
	if err != nil {
		common.LogError(h.DB, "Contest", err)
		writeError(w, http.StatusInternalServerError, "could not load entries")
		return
	}

	type gameJSON struct {
		GameID     string  `json:"gameId"`
		HomeTeam   string  `json:"homeTeam"`
		AwayTeam   string  `json:"awayTeam"`
		StartDate  string  `json:"startDate"`
		WinnerSide *string `json:"winnerSide"`
	}
	gamesOut := make([]gameJSON, 0, len(games))
	for _, g := range games {
		gamesOut = append(gamesOut, gameJSON{
			GameID:     g.GameID,
			HomeTeam:   g.HomeTeam,
			AwayTeam:   g.AwayTeam,
			StartDate:  g.StartDate.Format(time.RFC3339),
			WinnerSide: g.WinnerSide,
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"periodKey":  contest.PeriodKey,
		"kind":       contest.Kind,
		"resolved":   contest.Resolved,
		"games":      gamesOut,
		"entryCount": len(entries),
	})
}

func (h *Handler) serveLeaderboard(w http.ResponseWriter, periodKey string) {
	ranked, err := contestService.PreviewStandings(h.Store, periodKey)
	if err != nil {
		if errors.Is(err, storeService.ErrNotFound) {
			writeError(w, http.StatusNotFound, "contest not found")
			return
		}
		common.LogError(h.DB, "Leaderboard", err)
		writeError(w, http.StatusInternalServerError, "could not build leaderboard")
		return
	}

	type standingJSON struct {
		Rank        int    `json:"rank"`
		EntryID     string `json:"entryId"`
		DisplayName string `json:"displayName"`
		Score       *int   `json:"score"`
		Tiebreaker  int    `json:"tiebreaker"`
	}
	out := make([]standingJSON, 0, len(ranked))
	for idx, entry := range ranked {
		out = append(out, standingJSON{
			Rank:        idx + 1,
			EntryID:     entry.EntryID,
			DisplayName: entry.DisplayName,
			Score:       entry.Score,
			Tiebreaker:  entry.TiebreakerRuns,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"periodKey": periodKey,
		"standings": out,
	})
}
