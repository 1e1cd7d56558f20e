package notifyService

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"pickemPool/services/contestService"
)

// AnnounceResolution posts the settled standings for a period to the
// configured channel. Announcement failures are the caller's to log; a missed
// message must never fail a resolution.
func AnnounceResolution(s *discordgo.Session, channelID string, periodKey string, result *contestService.Result) error {
	if s == nil || channelID == "" {
		return nil
	}

	if result.Outcome == contestService.OutcomeCancelled {
		msg := fmt.Sprintf("Contest **%s** was cancelled for too few entries. %d entry fees refunded.", periodKey, len(result.Refunds))
		_, err := s.ChannelMessageSend(channelID, msg)
		return err
	}

	medals := []string{"🥇", "🥈", "🥉"}
	description := ""
	for _, rec := range result.Winners {
		medal := ""
		if rec.Rank-1 < len(medals) {
			medal = medals[rec.Rank-1]
		}
		description += fmt.Sprintf("%s **%d. %s** - %d tokens\n", medal, rec.Rank, rec.Entry.DisplayName, rec.Prize)
	}
	description += fmt.Sprintf("\nPrize pool: %d tokens", result.TotalPrizePool)
	if result.Undistributed > 0 {
		description += fmt.Sprintf(" (%d undistributed)", result.Undistributed)
	}

	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("🏆 Pick'em Results - %s", periodKey),
		Description: description,
		Color:       0x00ff00,
	}

	_, err := s.ChannelMessageSendEmbed(channelID, embed)
	return err
}
