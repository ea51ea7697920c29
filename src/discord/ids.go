package discord

import (
	"fmt"
	"strconv"

	"github.com/TendTo/MemeBot/src/shared/meme"
)

// ParseID converts a snowflake to the numeric id used by the registries.
func ParseID(id string) (int64, error) {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("discord: bad snowflake %q: %w", id, err)
	}
	return n, nil
}

func FormatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

// CardOf identifies a message as a card.
func CardOf(channelID, messageID string) (meme.CardRef, error) {
	chat, err := ParseID(channelID)
	if err != nil {
		return meme.CardRef{}, err
	}
	card, err := ParseID(messageID)
	if err != nil {
		return meme.CardRef{}, err
	}
	return meme.CardRef{CardID: card, ChatID: chat}, nil
}

// ChannelMention renders a channel reference users can click.
func ChannelMention(channelID string) string {
	if channelID == "" {
		return ""
	}
	return "<#" + channelID + ">"
}
