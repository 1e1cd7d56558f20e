package extService

import (
	"testing"

	"pickemPool/models"
	"pickemPool/models/external"
)

func assertEqual(t *testing.T, expected, actual interface{}, msg string) {
	t.Helper()
	if expected != actual {
		t.Errorf("%s: expected %v, got %v", msg, expected, actual)
	}
}

func scoreboardEvent(id, date, homeName, awayName, homeScore, awayScore string, completed bool) external.ESPN_Event {
	event := external.ESPN_Event{ID: id, Date: date}
	event.Status.Type.Completed = completed

	var home, away external.ESPN_Competitor
	home.HomeAway = "home"
	home.Team.DisplayName = homeName
	home.Score = homeScore
	away.HomeAway = "away"
	away.Team.DisplayName = awayName
	away.Score = awayScore

	comp := external.ESPN_Comp{Competitors: []external.ESPN_Competitor{away, home}}
	comp.Status.Type.Completed = completed
	event.Competitions = []external.ESPN_Comp{comp}
	return event
}

func TestEventToGame(t *testing.T) {
	event := scoreboardEvent("401520", "2026-08-31T23:05Z", "Yankees", "Red Sox", "", "", false)

	game, ok := EventToGame(event, "2026-08-31")
	if !ok {
		t.Fatal("expected event to map")
	}

	assertEqual(t, "401520", game.GameID, "game id")
	assertEqual(t, "2026-08-31", game.PeriodKey, "period key")
	assertEqual(t, "Yankees", game.HomeTeam, "home team")
	assertEqual(t, "Red Sox", game.AwayTeam, "away team")
	assertEqual(t, 23, game.StartDate.Hour(), "start hour")
	if game.WinnerSide != nil {
		t.Error("schedule mapping must not set an outcome")
	}
}

func TestEventToGameMissingCompetitor(t *testing.T) {
	event := external.ESPN_Event{ID: "401520", Date: "2026-08-31T23:05Z"}
	event.Competitions = []external.ESPN_Comp{{}}

	if _, ok := EventToGame(event, "2026-08-31"); ok {
		t.Error("expected mapping to fail without home/away competitors")
	}
}

func TestEventFinalScore(t *testing.T) {
	tests := []struct {
		name         string
		event        external.ESPN_Event
		expectedDone bool
		expectedHome int
		expectedAway int
	}{
		{
			name:         "completed game",
			event:        scoreboardEvent("1", "2026-08-31T23:05Z", "Yankees", "Red Sox", "4", "3", true),
			expectedDone: true,
			expectedHome: 4,
			expectedAway: 3,
		},
		{
			name:         "in-progress game",
			event:        scoreboardEvent("2", "2026-08-31T23:05Z", "Yankees", "Red Sox", "2", "1", false),
			expectedDone: false,
		},
		{
			name:         "completed but unparseable score",
			event:        scoreboardEvent("3", "2026-08-31T23:05Z", "Yankees", "Red Sox", "", "3", true),
			expectedDone: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			home, away, done := EventFinalScore(tt.event)
			assertEqual(t, tt.expectedDone, done, "done")
			if done {
				assertEqual(t, tt.expectedHome, home, "home score")
				assertEqual(t, tt.expectedAway, away, "away score")
			}
		})
	}
}

func TestScoreboardDates(t *testing.T) {
	tests := []struct {
		name     string
		contest  models.Contest
		expected string
	}{
		{
			name:     "daily period",
			contest:  models.Contest{PeriodKey: "2026-08-31", Kind: models.ContestKindDaily},
			expected: "20260831",
		},
		{
			name:     "weekly period covers seven days",
			contest:  models.Contest{PeriodKey: "2026-08-31", Kind: models.ContestKindWeekly},
			expected: "20260831-20260906",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertEqual(t, tt.expected, scoreboardDates(tt.contest), "dates param")
		})
	}
}
