package meme

import (
	"context"
	"errors"

	shareddiscord "github.com/TendTo/MemeBot/src/discord"
	"github.com/TendTo/MemeBot/src/moderation"
	sharedmeme "github.com/TendTo/MemeBot/src/shared/meme"
	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

type actionHandler func(ctx context.Context, ev *event)

// actionTable maps every button action to its handler.
type actionTable [sharedmeme.ActionCount]actionHandler

func (m *Module) buildActionTable() actionTable {
	return actionTable{
		sharedmeme.ActionConfirmYes:        func(ctx context.Context, ev *event) { m.onConfirm(ctx, ev, true) },
		sharedmeme.ActionConfirmNo:         func(ctx context.Context, ev *event) { m.onConfirm(ctx, ev, false) },
		sharedmeme.ActionApproveYes:        m.onAdminVote,
		sharedmeme.ActionApproveNo:         m.onAdminVote,
		sharedmeme.ActionVoteUp:            m.onCommunityVote,
		sharedmeme.ActionVoteDown:          m.onCommunityVote,
		sharedmeme.ActionSettingsAnonymous: func(ctx context.Context, ev *event) { m.onSettings(ctx, ev, false) },
		sharedmeme.ActionSettingsCredit:    func(ctx context.Context, ev *event) { m.onSettings(ctx, ev, true) },
	}
}

func (t *actionTable) dispatch(ctx context.Context, a sharedmeme.Action, ev *event) bool {
	if int(a) >= len(t) || t[a] == nil {
		return false
	}
	t[a](ctx, ev)
	return true
}

func (m *Module) onConfirm(ctx context.Context, ev *event, yes bool) {
	userID, err := shareddiscord.ParseID(ev.user.ID)
	if err != nil {
		m.respondEphemeral(ev.s, ev.i, msgSomethingWrong)
		return
	}
	if !m.ackUpdate(ev.s, ev.i) {
		return
	}

	reply, err := m.machine.Confirm(ctx, userID, yes)
	if err != nil && !errors.Is(err, sharedmeme.ErrRejectedPrecondition) {
		ev.log.Warn("confirm failed", zap.Bool("yes", yes), zap.Error(err))
	}
	if reply.Text == "" {
		reply.Text = msgSomethingWrong
	}

	// The prompt loses its buttons so it cannot be pressed twice.
	components := []discordgo.MessageComponent{}
	_, err = ev.s.InteractionResponseEdit(ev.i.Interaction, &discordgo.WebhookEdit{
		Content:    &reply.Text,
		Components: &components,
	}, discordgo.WithContext(ctx))
	m.logRespondError(err)
}

func (m *Module) onAdminVote(ctx context.Context, ev *event) {
	if !m.inReviewChannel(ev.i) {
		return
	}
	if !shareddiscord.InteractionHasRole(ev.s, ev.i, m.config.ModeratorRoleID) {
		m.respondEphemeral(ev.s, ev.i, msgNotModerator)
		return
	}
	m.castVote(ctx, ev, m.coord.CastAdminVote)
}

func (m *Module) onCommunityVote(ctx context.Context, ev *event) {
	if ev.i.ChannelID != m.config.PublicChannelID {
		return
	}
	m.castVote(ctx, ev, m.coord.CastCommunityVote)
}

type castFunc func(ctx context.Context, voterID int64, card sharedmeme.CardRef, d sharedmeme.Decision) (moderation.VoteResult, error)

func (m *Module) castVote(ctx context.Context, ev *event, cast castFunc) {
	data := ev.i.MessageComponentData()
	action, _ := sharedmeme.ParseAction(data.CustomID)
	decision, ok := action.VoteDecision()
	if !ok || ev.i.Message == nil {
		return
	}
	voterID, err := shareddiscord.ParseID(ev.user.ID)
	if err != nil {
		m.respondEphemeral(ev.s, ev.i, msgSomethingWrong)
		return
	}
	card, err := shareddiscord.CardOf(ev.i.ChannelID, ev.i.Message.ID)
	if err != nil {
		m.respondEphemeral(ev.s, ev.i, msgBadCard)
		return
	}
	if !m.ackUpdate(ev.s, ev.i) {
		return
	}

	// The coordinator redraws the counters itself, under the card lock.
	if _, err := cast(ctx, voterID, card, decision); err != nil {
		m.followupEphemeral(ev.s, ev.i, m.errorText(ev, "vote", err))
	}
}

func (m *Module) onSettings(ctx context.Context, ev *event, credited bool) {
	userID, err := shareddiscord.ParseID(ev.user.ID)
	if err != nil {
		m.respondEphemeral(ev.s, ev.i, msgSomethingWrong)
		return
	}
	prior, err := m.coord.SetCredit(ctx, userID, credited)
	if err != nil {
		ev.log.Error("set credit failed", zap.Error(err))
		m.respondEphemeral(ev.s, ev.i, msgSomethingWrong)
		return
	}
	m.respondEphemeral(ev.s, ev.i, settingsText(prior, credited))
}

func settingsText(prior, credited bool) string {
	switch {
	case credited && prior:
		return msgAlreadyCredited
	case credited:
		return msgNowCredited
	case prior:
		return msgNowAnonymous
	default:
		return msgAlreadyAnonymous
	}
}
