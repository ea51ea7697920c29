package discord

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/TendTo/MemeBot/src/moderation"
	"github.com/TendTo/MemeBot/src/shared/meme"
	"github.com/bwmarrin/discordgo"
)

// maxUploadBytes is the largest attachment re-uploaded without boost tiers.
const maxUploadBytes = 25 << 20

var _ moderation.Gateway = (*Gateway)(nil)

// Gateway implements moderation.Gateway over a discordgo session. Every call
// honours the context deadline.
type Gateway struct {
	s *discordgo.Session
}

func NewGateway(s *discordgo.Session) *Gateway {
	return &Gateway{s: s}
}

func unavailable(op string, err error) error {
	return fmt.Errorf("discord: %s: %w: %w", op, meme.ErrGatewayUnavailable, err)
}

// Relay posts content to dest. Media is downloaded and uploaded again since
// attachment links of the source message expire.
func (g *Gateway) Relay(ctx context.Context, c meme.Content, dest int64, controls *moderation.Controls) (meme.CardRef, error) {
	msg := &discordgo.MessageSend{
		AllowedMentions: &discordgo.MessageAllowedMentions{},
	}
	switch c.Kind {
	case meme.KindText:
		msg.Content = c.Text
	case meme.KindSticker:
		msg.StickerIDs = []string{c.StickerID}
	default:
		body, contentType, err := g.download(ctx, c.MediaURL)
		if err != nil {
			return meme.CardRef{}, unavailable("fetch media", err)
		}
		defer body.Close()
		name := c.FileName
		if name == "" {
			name = string(c.Kind)
		}
		msg.Content = c.Caption
		msg.Files = []*discordgo.File{{Name: name, ContentType: contentType, Reader: body}}
	}
	if controls != nil {
		msg.Components = ControlsRow(*controls)
	}

	sent, err := g.s.ChannelMessageSendComplex(FormatID(dest), msg, discordgo.WithContext(ctx))
	if err != nil {
		return meme.CardRef{}, unavailable("relay", err)
	}
	card, err := CardOf(sent.ChannelID, sent.ID)
	if err != nil {
		return meme.CardRef{}, unavailable("relay", err)
	}
	return card, nil
}

func (g *Gateway) download(ctx context.Context, url string) (io.ReadCloser, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", err
	}
	resp, err := g.s.Client.Do(req)
	if err != nil {
		return nil, "", err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, "", fmt.Errorf("media fetch returned %s", resp.Status)
	}
	if resp.ContentLength > maxUploadBytes {
		resp.Body.Close()
		return nil, "", fmt.Errorf("media is %d bytes, limit is %d", resp.ContentLength, maxUploadBytes)
	}
	body := struct {
		io.Reader
		io.Closer
	}{io.LimitReader(resp.Body, maxUploadBytes), resp.Body}
	return body, resp.Header.Get("Content-Type"), nil
}

func (g *Gateway) EditText(ctx context.Context, card meme.CardRef, text string, controls *moderation.Controls) error {
	components := []discordgo.MessageComponent{}
	if controls != nil {
		components = ControlsRow(*controls)
	}
	_, err := g.s.ChannelMessageEditComplex(&discordgo.MessageEdit{
		ID:         FormatID(card.CardID),
		Channel:    FormatID(card.ChatID),
		Content:    &text,
		Components: &components,
	}, discordgo.WithContext(ctx))
	if err != nil {
		return unavailable("edit text", err)
	}
	return nil
}

func (g *Gateway) EditControls(ctx context.Context, card meme.CardRef, controls moderation.Controls) error {
	components := ControlsRow(controls)
	_, err := g.s.ChannelMessageEditComplex(&discordgo.MessageEdit{
		ID:         FormatID(card.CardID),
		Channel:    FormatID(card.ChatID),
		Components: &components,
	}, discordgo.WithContext(ctx))
	if err != nil {
		return unavailable("edit controls", err)
	}
	return nil
}

func (g *Gateway) Delete(ctx context.Context, card meme.CardRef) error {
	if err := g.s.ChannelMessageDelete(FormatID(card.ChatID), FormatID(card.CardID), discordgo.WithContext(ctx)); err != nil {
		return unavailable("delete", err)
	}
	return nil
}

func (g *Gateway) Notify(ctx context.Context, userID int64, text string) error {
	ch, err := g.s.UserChannelCreate(FormatID(userID), discordgo.WithContext(ctx))
	if err != nil {
		return unavailable("open dm", err)
	}
	if _, err := g.s.ChannelMessageSend(ch.ID, text, discordgo.WithContext(ctx)); err != nil {
		return unavailable("notify", err)
	}
	return nil
}

// ResolveDisplayName returns "@username" for the user.
func (g *Gateway) ResolveDisplayName(ctx context.Context, userID int64) (string, bool, error) {
	u, err := g.s.User(FormatID(userID), discordgo.WithContext(ctx))
	if err != nil {
		return "", false, unavailable("resolve user", err)
	}
	if u.Username == "" {
		return "", false, nil
	}
	return "@" + u.Username, true, nil
}
