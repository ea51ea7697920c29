package discord

import (
	"testing"
	"time"

	"github.com/TendTo/MemeBot/src/moderation"
	"github.com/TendTo/MemeBot/src/shared/meme"
	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentFromMessage(t *testing.T) {
	attachment := func(name, ct string) []*discordgo.MessageAttachment {
		return []*discordgo.MessageAttachment{{Filename: name, ContentType: ct, URL: "https://cdn.example/" + name}}
	}

	tests := []struct {
		name string
		msg  *discordgo.Message
		want meme.Kind
	}{
		{"text", &discordgo.Message{Content: "hello"}, meme.KindText},
		{"photo", &discordgo.Message{Attachments: attachment("a.png", "image/png")}, meme.KindPhoto},
		{"gif", &discordgo.Message{Attachments: attachment("a.gif", "image/gif")}, meme.KindAnimation},
		{"video", &discordgo.Message{Attachments: attachment("a.mp4", "video/mp4")}, meme.KindVideo},
		{"audio", &discordgo.Message{Attachments: attachment("a.mp3", "audio/mpeg")}, meme.KindAudio},
		{"voice", &discordgo.Message{Attachments: attachment("voice-message.ogg", "audio/ogg"), Flags: voiceMessageFlag}, meme.KindVoice},
		{"sticker", &discordgo.Message{StickerItems: []*discordgo.StickerItem{{ID: "99"}}}, meme.KindSticker},
		{"document", &discordgo.Message{Attachments: attachment("a.pdf", "application/pdf")}, "document"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ContentFromMessage(tt.msg).Kind)
		})
	}
}

func TestContentFromMessageKeepsCaption(t *testing.T) {
	c := ContentFromMessage(&discordgo.Message{
		Content:     " look at this ",
		Attachments: []*discordgo.MessageAttachment{{Filename: "a.png", ContentType: "image/png", URL: "https://cdn/a.png"}},
	})
	assert.Equal(t, "look at this", c.Caption)
	assert.Equal(t, "https://cdn/a.png", c.MediaURL)
	require.NoError(t, c.Validate())

	empty := ContentFromMessage(&discordgo.Message{})
	assert.ErrorIs(t, empty.Validate(), meme.ErrUnsupportedContent)
}

func TestControlsRow(t *testing.T) {
	rows := ControlsRow(moderation.ReviewControls(2, 1))
	require.Len(t, rows, 1)
	row, ok := rows[0].(discordgo.ActionsRow)
	require.True(t, ok)
	require.Len(t, row.Components, 2)

	approve := row.Components[0].(discordgo.Button)
	reject := row.Components[1].(discordgo.Button)
	assert.Equal(t, "🟢 2", approve.Label)
	assert.Equal(t, meme.ActionApproveYes.CustomID(), approve.CustomID)
	assert.Equal(t, "🔴 1", reject.Label)
}

func TestCardOf(t *testing.T) {
	card, err := CardOf("123", "456")
	require.NoError(t, err)
	assert.Equal(t, meme.CardRef{CardID: 456, ChatID: 123}, card)

	_, err = CardOf("abc", "456")
	assert.Error(t, err)
	assert.Equal(t, "<#123>", ChannelMention("123"))
}

func TestLimiter(t *testing.T) {
	l := NewLimiter(1, 2)
	now := time.Now()
	l.now = func() time.Time { return now }

	assert.True(t, l.Allow("u"))
	assert.True(t, l.Allow("u"))
	assert.False(t, l.Allow("u"))
	assert.True(t, l.Allow("other"))

	now = now.Add(time.Second)
	assert.True(t, l.Allow("u"))

	now = now.Add(time.Hour)
	l.Sweep()
	assert.Empty(t, l.m)
}
