package discord

import (
	"strings"

	"github.com/TendTo/MemeBot/src/shared/meme"
	"github.com/bwmarrin/discordgo"
)

// voiceMessageFlag marks a message recorded with the voice message button.
const voiceMessageFlag discordgo.MessageFlags = 1 << 13

// ContentFromMessage extracts a submission from a user message. Messages that
// carry nothing publishable come back with an unsupported kind so the state
// machine can refuse them.
func ContentFromMessage(m *discordgo.Message) meme.Content {
	if m == nil {
		return meme.Content{}
	}
	text := strings.TrimSpace(m.Content)

	if len(m.StickerItems) > 0 && m.StickerItems[0] != nil {
		return meme.Content{Kind: meme.KindSticker, StickerID: m.StickerItems[0].ID}
	}

	if len(m.Attachments) > 0 && m.Attachments[0] != nil {
		a := m.Attachments[0]
		return meme.Content{
			Kind:     attachmentKind(a, m.Flags&voiceMessageFlag != 0),
			Caption:  text,
			MediaURL: a.URL,
			FileName: a.Filename,
		}
	}

	if text == "" {
		return meme.Content{Kind: "empty"}
	}
	return meme.Content{Kind: meme.KindText, Text: text}
}

func attachmentKind(a *discordgo.MessageAttachment, voice bool) meme.Kind {
	ct := strings.ToLower(a.ContentType)
	name := strings.ToLower(a.Filename)
	switch {
	case voice:
		return meme.KindVoice
	case ct == "image/gif" || strings.HasSuffix(name, ".gif"):
		return meme.KindAnimation
	case strings.HasPrefix(ct, "image/"):
		return meme.KindPhoto
	case strings.HasPrefix(ct, "video/"):
		return meme.KindVideo
	case strings.HasPrefix(ct, "audio/"):
		return meme.KindAudio
	default:
		return meme.Kind("document")
	}
}
