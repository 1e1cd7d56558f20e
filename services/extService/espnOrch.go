package extService

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"pickemPool/models"
	"pickemPool/models/external"
	"pickemPool/services/common"
)

const (
	fetchAttempts = 3
	fetchBackoff  = 2 * time.Second

	espnDateLayout = "2006-01-02T15:04Z"
)

// GetScoreboard fetches the ESPN scoreboard for the contest's sport and
// period, retrying transient failures with a short backoff.
func GetScoreboard(contest models.Contest) (external.ESPN_Scoreboard, error) {
	requestUrl := fmt.Sprintf(
		"http://site.api.espn.com/apis/site/v2/sports/%s/%s/scoreboard?dates=%s",
		contest.Sport, contest.League, scoreboardDates(contest),
	)

	var lastErr error
	for attempt := 1; attempt <= fetchAttempts; attempt++ {
		scoreboard, err := fetchScoreboard(requestUrl)
		if err == nil {
			return scoreboard, nil
		}
		lastErr = err

		if attempt < fetchAttempts {
			log.Printf("scoreboard fetch attempt %d/%d failed: %v", attempt, fetchAttempts, err)
			time.Sleep(time.Duration(attempt) * fetchBackoff)
		}
	}
	return external.ESPN_Scoreboard{}, lastErr
}

func fetchScoreboard(requestUrl string) (external.ESPN_Scoreboard, error) {
	resp, err := common.ESPNWrapper(requestUrl)
	if err != nil {
		return external.ESPN_Scoreboard{}, err
	}
	defer resp.Body.Close()

	var scoreboard external.ESPN_Scoreboard
	err = json.NewDecoder(resp.Body).Decode(&scoreboard)
	if err != nil {
		return external.ESPN_Scoreboard{}, err
	}
	return scoreboard, nil
}

// SyncGamesForPeriod upserts the period's games from the schedule provider.
// Outcomes are not written here; that is SyncResults' job.
func SyncGamesForPeriod(db *gorm.DB, contest models.Contest) (int, error) {
	scoreboard, err := GetScoreboard(contest)
	if err != nil {
		return 0, err
	}

	synced := 0
	for _, event := range scoreboard.Events {
		game, ok := EventToGame(event, contest.PeriodKey)
		if !ok {
			log.Printf("skipping event %s: missing home/away competitor", event.ID)
			continue
		}

		var existing models.Game
		result := db.Where("game_id = ?", game.GameID).First(&existing)
		if result.Error != nil {
			if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
				return synced, result.Error
			}
			if err := db.Create(&game).Error; err != nil {
				return synced, err
			}
		} else {
			updates := map[string]any{
				"home_team":  game.HomeTeam,
				"away_team":  game.AwayTeam,
				"start_date": game.StartDate,
			}
			if err := db.Model(&existing).Updates(updates).Error; err != nil {
				return synced, err
			}
		}
		synced++
	}
	return synced, nil
}

// SyncResults writes final scores and the winning side for any game in the
// period that does not have an outcome yet. A game's outcome is written once
// and never touched again.
func SyncResults(db *gorm.DB, contest models.Contest) (int, error) {
	var pending []models.Game
	result := db.Where("period_key = ? AND winner_side IS NULL", contest.PeriodKey).Find(&pending)
	if result.Error != nil {
		return 0, result.Error
	}
	if len(pending) == 0 {
		return 0, nil
	}

	scoreboard, err := GetScoreboard(contest)
	if err != nil {
		return 0, err
	}

	eventsByID := make(map[string]external.ESPN_Event, len(scoreboard.Events))
	for _, event := range scoreboard.Events {
		eventsByID[event.ID] = event
	}

	finalized := 0
	for _, game := range pending {
		event, found := eventsByID[game.GameID]
		if !found {
			continue
		}

		homeScore, awayScore, done := EventFinalScore(event)
		if !done {
			continue
		}

		side := ""
		switch {
		case homeScore > awayScore:
			side = models.SideHome
		case awayScore > homeScore:
			side = models.SideAway
		default:
			log.Printf("game %s finished tied %d-%d, leaving outcome unset", game.GameID, homeScore, awayScore)
			continue
		}

		updates := map[string]any{
			"home_score":  homeScore,
			"away_score":  awayScore,
			"winner_side": side,
		}
		if err := db.Model(&game).Updates(updates).Error; err != nil {
			return finalized, err
		}
		finalized++
	}
	return finalized, nil
}

// EventToGame maps a scoreboard event onto our game record.
func EventToGame(event external.ESPN_Event, periodKey string) (models.Game, bool) {
	if len(event.Competitions) == 0 {
		return models.Game{}, false
	}
	comp := event.Competitions[0]

	var home, away *external.ESPN_Competitor
	for i := range comp.Competitors {
		switch comp.Competitors[i].HomeAway {
		case models.SideHome:
			home = &comp.Competitors[i]
		case models.SideAway:
			away = &comp.Competitors[i]
		}
	}
	if home == nil || away == nil {
		return models.Game{}, false
	}

	startDate, err := time.Parse(espnDateLayout, event.Date)
	if err != nil {
		return models.Game{}, false
	}

	return models.Game{
		GameID:    event.ID,
		PeriodKey: periodKey,
		HomeTeam:  home.Team.DisplayName,
		AwayTeam:  away.Team.DisplayName,
		StartDate: startDate,
	}, true
}

// EventFinalScore returns the final home/away score of a completed event.
func EventFinalScore(event external.ESPN_Event) (homeScore int, awayScore int, done bool) {
	if !event.Status.Type.Completed || len(event.Competitions) == 0 {
		return 0, 0, false
	}

	for _, competitor := range event.Competitions[0].Competitors {
		score, err := strconv.Atoi(competitor.Score)
		if err != nil {
			return 0, 0, false
		}
		switch competitor.HomeAway {
		case models.SideHome:
			homeScore = score
		case models.SideAway:
			awayScore = score
		}
	}
	return homeScore, awayScore, true
}

// scoreboardDates builds the ESPN dates parameter: a single day for daily
// contests, a seven-day range for weekly ones.
func scoreboardDates(contest models.Contest) string {
	day, err := time.Parse("2006-01-02", contest.PeriodKey)
	if err != nil {
		// period keys are dates; fall back to the raw key with dashes removed
		return strings.ReplaceAll(contest.PeriodKey, "-", "")
	}

	if contest.Kind == models.ContestKindWeekly {
		return fmt.Sprintf("%s-%s", day.Format("20060102"), day.AddDate(0, 0, 6).Format("20060102"))
	}
	return day.Format("20060102")
}
