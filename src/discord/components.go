package discord

import (
	"github.com/TendTo/MemeBot/src/moderation"
	"github.com/TendTo/MemeBot/src/shared/meme"
	"github.com/bwmarrin/discordgo"
)

// ControlsRow renders vote controls as a single button row.
func ControlsRow(c moderation.Controls) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.Button{Label: c.Positive.Label(), Style: discordgo.SecondaryButton, CustomID: c.Positive.Action.CustomID()},
			discordgo.Button{Label: c.Negative.Label(), Style: discordgo.SecondaryButton, CustomID: c.Negative.Action.CustomID()},
		}},
	}
}

// ConfirmRow is the yes/no prompt shown before a post goes to review.
func ConfirmRow() []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.Button{Label: "Yes", Style: discordgo.SuccessButton, CustomID: meme.ActionConfirmYes.CustomID()},
			discordgo.Button{Label: "No", Style: discordgo.DangerButton, CustomID: meme.ActionConfirmNo.CustomID()},
		}},
	}
}

// SettingsRow offers the two credit preferences.
func SettingsRow() []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.Button{Label: "Anonymous", Style: discordgo.SecondaryButton, CustomID: meme.ActionSettingsAnonymous.CustomID()},
			discordgo.Button{Label: "With credit", Style: discordgo.PrimaryButton, CustomID: meme.ActionSettingsCredit.CustomID()},
		}},
	}
}
