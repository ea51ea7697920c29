package meme

import (
	"context"
	"errors"
	"fmt"
	"strings"

	shareddiscord "github.com/TendTo/MemeBot/src/discord"
	sharedmeme "github.com/TendTo/MemeBot/src/shared/meme"
	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

func (m *Module) handleCommand(ctx context.Context, ev *event) {
	data := ev.i.ApplicationCommandData()
	switch data.Name {
	case shareddiscord.CommandStart:
		m.respondEphemeral(ev.s, ev.i, msgStart)
	case shareddiscord.CommandHelp:
		if m.inReviewChannel(ev.i) {
			m.respondEphemeral(ev.s, ev.i, msgModeratorHelp)
			return
		}
		m.respondEphemeral(ev.s, ev.i, msgUserHelp)
	case shareddiscord.CommandRules:
		m.respondEphemeral(ev.s, ev.i, msgRules)
	case shareddiscord.CommandPost:
		m.handlePost(ctx, ev)
	case shareddiscord.CommandCancel:
		m.handleCancel(ctx, ev)
	case shareddiscord.CommandSettings:
		m.respond(ev.s, ev.i, &discordgo.InteractionResponseData{
			Content:    msgSettingsPrompt,
			Components: shareddiscord.SettingsRow(),
			Flags:      discordgo.MessageFlagsEphemeral,
		})
	case shareddiscord.CommandSban:
		m.handleSban(ctx, ev, data)
	case shareddiscord.CommandReply:
		m.handleReply(ctx, ev, data)
	case shareddiscord.CommandBanAuthor:
		m.handleBanAuthor(ctx, ev, data)
	}
}

func (m *Module) handlePost(ctx context.Context, ev *event) {
	if ev.i.GuildID != "" {
		m.respondEphemeral(ev.s, ev.i, msgPostInDM)
		return
	}
	userID, err := shareddiscord.ParseID(ev.user.ID)
	if err != nil {
		m.respondEphemeral(ev.s, ev.i, msgSomethingWrong)
		return
	}

	reply, err := m.machine.StartSubmission(ctx, userID)
	if err != nil && !errors.Is(err, sharedmeme.ErrRejectedPrecondition) {
		ev.log.Error("start submission failed", zap.Error(err))
		m.respondEphemeral(ev.s, ev.i, msgSomethingWrong)
		return
	}
	m.respond(ev.s, ev.i, &discordgo.InteractionResponseData{Content: reply.Text})
}

func (m *Module) handleCancel(ctx context.Context, ev *event) {
	userID, err := shareddiscord.ParseID(ev.user.ID)
	if err != nil {
		m.respondEphemeral(ev.s, ev.i, msgSomethingWrong)
		return
	}
	reply, err := m.machine.Cancel(ctx, userID)
	if err != nil && !errors.Is(err, sharedmeme.ErrRejectedPrecondition) {
		ev.log.Error("cancel failed", zap.Error(err))
		m.respondEphemeral(ev.s, ev.i, msgSomethingWrong)
		return
	}
	m.respondEphemeral(ev.s, ev.i, reply.Text)
}

// moderatorGate answers the interaction and returns false when the user may
// not moderate here.
func (m *Module) moderatorGate(ev *event) bool {
	if !m.inReviewChannel(ev.i) {
		m.respondEphemeral(ev.s, ev.i, msgReviewOnly)
		return false
	}
	if !shareddiscord.InteractionHasRole(ev.s, ev.i, m.config.ModeratorRoleID) {
		m.respondEphemeral(ev.s, ev.i, msgNotModerator)
		return false
	}
	return true
}

func (m *Module) inReviewChannel(i *discordgo.InteractionCreate) bool {
	return i.ChannelID == m.config.ReviewChannelID
}

func (m *Module) handleSban(ctx context.Context, ev *event, data discordgo.ApplicationCommandInteractionData) {
	if !m.moderatorGate(ev) {
		return
	}
	ids, err := parseUserIDs(optionString(data, "user_ids"))
	if err != nil || len(ids) == 0 {
		m.respondEphemeral(ev.s, ev.i, "Give one or more numeric user ids.")
		return
	}

	lifted := 0
	for _, id := range ids {
		was, err := m.coord.Unban(ctx, id)
		if err != nil {
			ev.log.Error("unban failed", zap.Int64("target", id), zap.Error(err))
			break
		}
		if !was {
			break
		}
		lifted++
	}
	m.respondEphemeral(ev.s, ev.i, sbanReport(ids, lifted))
}

func (m *Module) handleReply(ctx context.Context, ev *event, data discordgo.ApplicationCommandInteractionData) {
	if !m.moderatorGate(ev) {
		return
	}
	cardID, err := shareddiscord.ParseID(strings.TrimSpace(optionString(data, "card")))
	if err != nil {
		m.respondEphemeral(ev.s, ev.i, msgBadCard)
		return
	}
	text := strings.TrimSpace(optionString(data, "message"))
	if text == "" {
		m.respondEphemeral(ev.s, ev.i, "The message is empty.")
		return
	}

	card := sharedmeme.CardRef{CardID: cardID, ChatID: m.reviewChannel}
	if _, err := m.coord.ReplyToSubmitter(ctx, card, text); err != nil {
		m.respondEphemeral(ev.s, ev.i, m.errorText(ev, "reply", err))
		return
	}
	m.respondEphemeral(ev.s, ev.i, msgReplySent)
}

func (m *Module) handleBanAuthor(ctx context.Context, ev *event, data discordgo.ApplicationCommandInteractionData) {
	if !m.moderatorGate(ev) {
		return
	}
	card, err := shareddiscord.CardOf(ev.i.ChannelID, data.TargetID)
	if err != nil {
		m.respondEphemeral(ev.s, ev.i, msgBadCard)
		return
	}
	user, err := m.coord.BanByCard(ctx, card)
	if err != nil {
		m.respondEphemeral(ev.s, ev.i, m.errorText(ev, "ban", err))
		return
	}
	ev.log.Info("author banned", zap.Int64("target", user), zap.Int64("card", card.CardID))
	m.respondEphemeral(ev.s, ev.i, msgBanned)
}

// errorText maps a core error to what the acting user is told, logging the
// unexpected ones.
func (m *Module) errorText(ev *event, op string, err error) string {
	switch {
	case errors.Is(err, sharedmeme.ErrReviewConcluded):
		return msgReviewConcluded
	case errors.Is(err, sharedmeme.ErrNotPublished):
		return msgNotPublished
	case errors.Is(err, sharedmeme.ErrRejectedPrecondition):
		return err.Error()
	default:
		ev.log.Error(op+" failed", zap.Error(err))
		return msgSomethingWrong
	}
}

func optionString(data discordgo.ApplicationCommandInteractionData, name string) string {
	for _, opt := range data.Options {
		if opt.Name == name {
			return opt.StringValue()
		}
	}
	return ""
}

func parseUserIDs(raw string) ([]int64, error) {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\n' || r == '\t'
	})
	ids := make([]int64, 0, len(fields))
	for _, f := range fields {
		id, err := shareddiscord.ParseID(strings.Trim(f, "<@!>"))
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func sbanReport(ids []int64, lifted int) string {
	if lifted == len(ids) {
		if len(ids) == 1 {
			return "Ban lifted."
		}
		return fmt.Sprintf("Lifted %d bans.", lifted)
	}
	return fmt.Sprintf("Lifted %d of %d bans. User %s was not banned, stopped there.",
		lifted, len(ids), shareddiscord.FormatID(ids[lifted]))
}
