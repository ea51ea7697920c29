package meme

import (
	"errors"

	shareddiscord "github.com/TendTo/MemeBot/src/discord"
	"github.com/TendTo/MemeBot/src/logging"
	sharedmeme "github.com/TendTo/MemeBot/src/shared/meme"
	"github.com/TendTo/MemeBot/src/submission"
	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

// onMessageCreate feeds direct messages to the submission conversation.
func (m *Module) onMessageCreate(s *discordgo.Session, mc *discordgo.MessageCreate) {
	if mc.Author == nil || mc.Author.Bot || mc.GuildID != "" {
		return
	}
	log := m.log.With(zap.String("user", mc.Author.ID), zap.String("message", mc.ID))
	if m.config.LogMessages {
		log.Debug("direct message received", zap.String("content", mc.Content), zap.Int("attachments", len(mc.Attachments)))
	}

	userID, err := shareddiscord.ParseID(mc.Author.ID)
	if err != nil {
		return
	}
	messageID, err := shareddiscord.ParseID(mc.ID)
	if err != nil {
		return
	}

	ctx, cancel := m.eventContext()
	defer cancel()

	reply, err := m.machine.ReceiveContent(ctx, userID, messageID, shareddiscord.ContentFromMessage(mc.Message))
	switch {
	case errors.Is(err, sharedmeme.ErrWrongState) && reply.State == submission.StateIdle:
		// Plain chatter outside a conversation.
		return
	case err != nil && !errors.Is(err, sharedmeme.ErrRejectedPrecondition) && !errors.Is(err, sharedmeme.ErrUnsupportedContent):
		log.Error("receive content failed", zap.Error(err))
		reply.Text = msgSomethingWrong
	}

	msg := &discordgo.MessageSend{
		Content:         reply.Text,
		Reference:       mc.Reference(),
		AllowedMentions: &discordgo.MessageAllowedMentions{},
	}
	if reply.AskConfirm {
		msg.Components = shareddiscord.ConfirmRow()
	}
	if _, err := s.ChannelMessageSendComplex(mc.ChannelID, msg, discordgo.WithContext(ctx)); err != nil {
		if logging.IsRateLimit(err) {
			log.Warn("reply rate limited", zap.Error(err))
			return
		}
		log.Error("reply failed", zap.Error(err))
	}
}
