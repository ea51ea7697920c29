package meme

import (
	"github.com/TendTo/MemeBot/src/logging"
	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

// event is one inbound interaction with its acting user and logger.
type event struct {
	s    *discordgo.Session
	i    *discordgo.InteractionCreate
	user *discordgo.User
	log  *zap.Logger
}

func (m *Module) respondEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, text string) {
	m.respond(s, i, &discordgo.InteractionResponseData{Content: text, Flags: discordgo.MessageFlagsEphemeral})
}

func (m *Module) respond(s *discordgo.Session, i *discordgo.InteractionCreate, data *discordgo.InteractionResponseData) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
	m.logRespondError(err)
}

// ackUpdate acknowledges a button press without changing the message yet.
func (m *Module) ackUpdate(s *discordgo.Session, i *discordgo.InteractionCreate) bool {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredMessageUpdate,
	})
	m.logRespondError(err)
	return err == nil
}

// followupEphemeral tells only the acting user something after an ack.
func (m *Module) followupEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, text string) {
	_, err := s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
		Content: text,
		Flags:   discordgo.MessageFlagsEphemeral,
	})
	m.logRespondError(err)
}

func (m *Module) logRespondError(err error) {
	if err == nil {
		return
	}
	if logging.IsRateLimit(err) {
		m.log.Warn("interaction response rate limited", zap.Error(err))
		return
	}
	m.log.Error("interaction response failed", zap.Error(err))
}
