package contestService

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"pickemPool/models"
)

// fakeStore is an in-memory ContestStore for exercising resolution without a
// database.
type fakeStore struct {
	contest  models.Contest
	games    []models.Game
	entries  []models.Entry
	winners  []models.WinnerRecord
	refunds  []models.RefundRecord
	updates  map[uint][]map[string]any
	resolved bool
}

func newFakeStore(contest models.Contest, games []models.Game, entries []models.Entry) *fakeStore {
	return &fakeStore{
		contest: contest,
		games:   games,
		entries: entries,
		updates: make(map[uint][]map[string]any),
	}
}

func (f *fakeStore) GetContest(periodKey string) (*models.Contest, error) {
	contest := f.contest
	return &contest, nil
}

func (f *fakeStore) GetGamesForPeriod(periodKey string) ([]models.Game, error) {
	return f.games, nil
}

func (f *fakeStore) GetEntries(periodKey string) ([]models.Entry, error) {
	entries := make([]models.Entry, len(f.entries))
	copy(entries, f.entries)
	return entries, nil
}

func (f *fakeStore) UpdateEntry(id uint, fields map[string]any) error {
	f.updates[id] = append(f.updates[id], fields)
	for i := range f.entries {
		if f.entries[i].ID != id {
			continue
		}
		if score, ok := fields["score"].(int); ok {
			f.entries[i].Score = &score
		}
		if status, ok := fields["status"].(string); ok {
			f.entries[i].Status = status
		}
	}
	return nil
}

func (f *fakeStore) ClaimResolution(periodKey string) (bool, error) {
	if f.resolved {
		return false, nil
	}
	f.resolved = true
	return true, nil
}

func (f *fakeStore) SaveWinners(records []models.WinnerRecord) error {
	f.winners = append(f.winners, records...)
	return nil
}

func (f *fakeStore) CreateRefundRecord(rec *models.RefundRecord) error {
	f.refunds = append(f.refunds, *rec)
	return nil
}

func (f *fakeStore) statusOf(id uint) string {
	for _, entry := range f.entries {
		if entry.ID == id {
			return entry.Status
		}
	}
	return ""
}

func finalGame(id string, periodKey string, winner string, homeScore, awayScore int, start time.Time) models.Game {
	return models.Game{
		GameID:     id,
		PeriodKey:  periodKey,
		StartDate:  start,
		HomeScore:  intPtr(homeScore),
		AwayScore:  intPtr(awayScore),
		WinnerSide: strPtr(winner),
	}
}

func testConfig() Config {
	return Config{
		EntryFee:     50,
		PrizeWeights: []int{50, 30, 20},
		MinEntries:   4,
	}
}

func TestResolvePeriodEndToEnd(t *testing.T) {
	const periodKey = "2026-08-31"
	base := time.Date(2026, 8, 31, 17, 0, 0, 0, time.UTC)

	// ten home wins; the last game is the tiebreak game with a total of 7
	games := make([]models.Game, 0, 10)
	for i := 0; i < 9; i++ {
		games = append(games, finalGame(fmt.Sprintf("g%d", i+1), periodKey, models.SideHome, 5, 2, base.Add(time.Duration(i)*time.Minute)))
	}
	games = append(games, finalGame("g10", periodKey, models.SideHome, 4, 3, base.Add(9*time.Minute)))

	// picking home on the first n games yields a score of n
	entryScoring := func(id uint, correct int, tiebreaker int) models.Entry {
		ref := fmt.Sprintf("pay-%d", id)
		entry := models.Entry{
			ID:             id,
			EntryID:        fmt.Sprintf("entry-%d", id),
			PeriodKey:      periodKey,
			DisplayName:    fmt.Sprintf("Player %d", id),
			TiebreakerRuns: tiebreaker,
			Status:         models.EntryStatusActive,
			PaymentRef:     &ref,
		}
		for i := 0; i < 10; i++ {
			side := models.SideAway
			if i < correct {
				side = models.SideHome
			}
			entry.Picks = append(entry.Picks, models.Pick{GameID: fmt.Sprintf("g%d", i+1), Side: side})
		}
		return entry
	}

	store := newFakeStore(
		models.Contest{PeriodKey: periodKey, TiebreakGameID: strPtr("g10")},
		games,
		[]models.Entry{
			entryScoring(1, 10, 6), // distance 1 from actual 7
			entryScoring(2, 10, 9), // distance 2, loses the tie
			entryScoring(3, 8, 5),
			entryScoring(4, 6, 5),
			entryScoring(5, 3, 5),
		},
	)

	result, err := ResolvePeriod(store, periodKey, testConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertEqual(t, OutcomeResolved, result.Outcome, "outcome")
	assertEqual(t, int64(250), result.TotalPrizePool, "pool")
	assertEqual(t, int64(0), result.Undistributed, "undistributed")
	assertEqual(t, 3, len(result.Winners), "winner count")

	assertEqual(t, uint(1), result.Winners[0].EntryID, "rank 1 entry")
	assertEqual(t, int64(125), result.Winners[0].Prize, "rank 1 prize")
	assertEqual(t, uint(2), result.Winners[1].EntryID, "rank 2 entry")
	assertEqual(t, int64(75), result.Winners[1].Prize, "rank 2 prize")
	assertEqual(t, uint(3), result.Winners[2].EntryID, "rank 3 entry")
	assertEqual(t, int64(50), result.Winners[2].Prize, "rank 3 prize")

	assertEqual(t, models.EntryStatusWon, store.statusOf(1), "entry 1 status")
	assertEqual(t, models.EntryStatusWon, store.statusOf(2), "entry 2 status")
	assertEqual(t, models.EntryStatusWon, store.statusOf(3), "entry 3 status")
	assertEqual(t, models.EntryStatusLost, store.statusOf(4), "entry 4 status")
	assertEqual(t, models.EntryStatusLost, store.statusOf(5), "entry 5 status")
	assertEqual(t, 3, len(store.winners), "persisted winners")
}

func TestResolvePeriodMinimumEntriesGate(t *testing.T) {
	const periodKey = "2026-08-31"
	start := time.Date(2026, 8, 31, 17, 0, 0, 0, time.UTC)
	games := []models.Game{finalGame("g1", periodKey, models.SideHome, 3, 1, start)}

	paid1, paid2 := "pay-1", "pay-2"
	entries := []models.Entry{
		{ID: 1, EntryID: "entry-1", PeriodKey: periodKey, Status: models.EntryStatusActive, PaymentRef: &paid1},
		{ID: 2, EntryID: "entry-2", PeriodKey: periodKey, Status: models.EntryStatusActive, PaymentRef: &paid2},
		{ID: 3, EntryID: "entry-3", PeriodKey: periodKey, Status: models.EntryStatusActive}, // never paid
	}

	store := newFakeStore(models.Contest{PeriodKey: periodKey}, games, entries)

	result, err := ResolvePeriod(store, periodKey, testConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertEqual(t, OutcomeCancelled, result.Outcome, "outcome")
	assertEqual(t, 0, len(result.Winners), "no winners on cancellation")
	assertEqual(t, 2, len(result.Refunds), "one refund per paid entry")
	for _, refund := range result.Refunds {
		assertEqual(t, int64(50), refund.Amount, "refund amount")
		assertEqual(t, models.RefundReasonInsufficientEntries, refund.Reason, "refund reason")
	}

	assertEqual(t, models.EntryStatusRefunded, store.statusOf(1), "paid entry refunded")
	assertEqual(t, models.EntryStatusRefunded, store.statusOf(2), "paid entry refunded")
	assertEqual(t, models.EntryStatusActive, store.statusOf(3), "unpaid entry untouched")
	assertEqual(t, 0, len(store.winners), "distribution must not run")
}

func TestResolvePeriodManualScorePrecedence(t *testing.T) {
	const periodKey = "2026-08-31"
	start := time.Date(2026, 8, 31, 17, 0, 0, 0, time.UTC)
	games := []models.Game{
		finalGame("g1", periodKey, models.SideHome, 3, 1, start),
	}

	ref := "pay-x"
	entries := []models.Entry{
		{ID: 1, EntryID: "entry-x", PeriodKey: periodKey, Score: intPtr(10), Status: models.EntryStatusActive, PaymentRef: &ref,
			Picks: []models.Pick{{GameID: "g1", Side: models.SideAway}}},
		{ID: 2, EntryID: "entry-y", PeriodKey: periodKey, Status: models.EntryStatusActive, PaymentRef: &ref,
			Picks: []models.Pick{{GameID: "g1", Side: models.SideHome}}},
		{ID: 3, EntryID: "entry-z", PeriodKey: periodKey, Status: models.EntryStatusActive, PaymentRef: &ref},
		{ID: 4, EntryID: "entry-w", PeriodKey: periodKey, Status: models.EntryStatusActive, PaymentRef: &ref},
	}

	store := newFakeStore(models.Contest{PeriodKey: periodKey}, games, entries)

	result, err := ResolvePeriod(store, periodKey, testConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// the scorer must not have run: entry 2's correct pick earns nothing
	for id, updates := range store.updates {
		for _, fields := range updates {
			if _, ok := fields["score"]; ok {
				t.Errorf("entry %d was rescored despite manual scores", id)
			}
		}
	}
	assertEqual(t, uint(1), result.Winners[0].EntryID, "manually scored entry wins")
	if store.entries[1].Score != nil {
		t.Errorf("entry 2 score should stay unset, got %d", *store.entries[1].Score)
	}
}

func TestResolvePeriodAlreadyResolved(t *testing.T) {
	const periodKey = "2026-08-31"
	start := time.Date(2026, 8, 31, 17, 0, 0, 0, time.UTC)
	ref := "pay-1"
	store := newFakeStore(
		models.Contest{PeriodKey: periodKey},
		[]models.Game{finalGame("g1", periodKey, models.SideHome, 3, 1, start)},
		[]models.Entry{
			{ID: 1, PeriodKey: periodKey, Status: models.EntryStatusActive, PaymentRef: &ref},
			{ID: 2, PeriodKey: periodKey, Status: models.EntryStatusActive, PaymentRef: &ref},
			{ID: 3, PeriodKey: periodKey, Status: models.EntryStatusActive, PaymentRef: &ref},
			{ID: 4, PeriodKey: periodKey, Status: models.EntryStatusActive, PaymentRef: &ref},
		},
	)

	if _, err := ResolvePeriod(store, periodKey, testConfig()); err != nil {
		t.Fatalf("first resolution failed: %v", err)
	}

	_, err := ResolvePeriod(store, periodKey, testConfig())
	if !errors.Is(err, ErrAlreadyResolved) {
		t.Errorf("expected ErrAlreadyResolved, got %v", err)
	}
}

func TestResolvePeriodStrictFinals(t *testing.T) {
	const periodKey = "2026-08-31"
	start := time.Date(2026, 8, 31, 17, 0, 0, 0, time.UTC)
	ref := "pay-1"
	games := []models.Game{
		finalGame("g1", periodKey, models.SideHome, 3, 1, start),
		{GameID: "g2", PeriodKey: periodKey, StartDate: start}, // still in progress
	}
	entries := []models.Entry{
		{ID: 1, PeriodKey: periodKey, Status: models.EntryStatusActive, PaymentRef: &ref},
		{ID: 2, PeriodKey: periodKey, Status: models.EntryStatusActive, PaymentRef: &ref},
		{ID: 3, PeriodKey: periodKey, Status: models.EntryStatusActive, PaymentRef: &ref},
		{ID: 4, PeriodKey: periodKey, Status: models.EntryStatusActive, PaymentRef: &ref},
	}

	store := newFakeStore(models.Contest{PeriodKey: periodKey}, games, entries)

	_, err := ResolvePeriod(store, periodKey, testConfig())
	if !errors.Is(err, ErrGamesNotFinal) {
		t.Fatalf("expected ErrGamesNotFinal, got %v", err)
	}
	if store.resolved {
		t.Error("failed precondition must not burn the resolution claim")
	}

	lenient := testConfig()
	lenient.AllowPartialResults = true
	result, err := ResolvePeriod(store, periodKey, lenient)
	if err != nil {
		t.Fatalf("lenient resolution failed: %v", err)
	}
	assertEqual(t, OutcomeResolved, result.Outcome, "lenient outcome")
}

func TestResolvePeriodNotFound(t *testing.T) {
	const periodKey = "2026-08-31"
	start := time.Date(2026, 8, 31, 17, 0, 0, 0, time.UTC)

	noGames := newFakeStore(models.Contest{PeriodKey: periodKey}, nil, []models.Entry{{ID: 1, PeriodKey: periodKey}})
	if _, err := ResolvePeriod(noGames, periodKey, testConfig()); !errors.Is(err, ErrNoGames) {
		t.Errorf("expected ErrNoGames, got %v", err)
	}

	noEntries := newFakeStore(models.Contest{PeriodKey: periodKey},
		[]models.Game{finalGame("g1", periodKey, models.SideHome, 3, 1, start)}, nil)
	if _, err := ResolvePeriod(noEntries, periodKey, testConfig()); !errors.Is(err, ErrNoEntries) {
		t.Errorf("expected ErrNoEntries, got %v", err)
	}
}
