package meme

import (
	"fmt"
	"html"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
)

// Kind is the media kind of a submission.
type Kind string

const (
	KindText      Kind = "text"
	KindPhoto     Kind = "photo"
	KindVoice     Kind = "voice"
	KindAudio     Kind = "audio"
	KindVideo     Kind = "video"
	KindAnimation Kind = "animation"
	KindSticker   Kind = "sticker"
)

// MaxTextLength is the longest text or caption the transport accepts in one message.
const MaxTextLength = 2000

var supportedKinds = map[Kind]struct{}{
	KindText:      {},
	KindPhoto:     {},
	KindVoice:     {},
	KindAudio:     {},
	KindVideo:     {},
	KindAnimation: {},
	KindSticker:   {},
}

// Supported reports whether k can be relayed.
func (k Kind) Supported() bool {
	_, ok := supportedKinds[k]
	return ok
}

// Content is a submission payload, detached from the message that carried it.
type Content struct {
	Kind      Kind   `json:"kind"`
	Text      string `json:"text,omitempty"`
	Caption   string `json:"caption,omitempty"`
	MediaURL  string `json:"media_url,omitempty"`
	FileName  string `json:"file_name,omitempty"`
	StickerID string `json:"sticker_id,omitempty"`
}

// Validate checks that the content carries what its kind needs.
func (c Content) Validate() error {
	if !c.Kind.Supported() {
		return fmt.Errorf("meme: kind %q: %w", c.Kind, ErrUnsupportedContent)
	}
	switch c.Kind {
	case KindText:
		if strings.TrimSpace(c.Text) == "" {
			return fmt.Errorf("meme: empty text: %w", ErrUnsupportedContent)
		}
		if utf8.RuneCountInString(c.Text) > MaxTextLength {
			return fmt.Errorf("meme: text longer than %d characters: %w", MaxTextLength, ErrUnsupportedContent)
		}
	case KindSticker:
		if c.StickerID == "" {
			return fmt.Errorf("meme: sticker without id: %w", ErrUnsupportedContent)
		}
	default:
		if c.MediaURL == "" {
			return fmt.Errorf("meme: %s without media: %w", c.Kind, ErrUnsupportedContent)
		}
	}
	if utf8.RuneCountInString(c.Caption) > MaxTextLength {
		return fmt.Errorf("meme: caption longer than %d characters: %w", MaxTextLength, ErrUnsupportedContent)
	}
	return nil
}

var strict = bluemonday.StrictPolicy()

// Sanitized returns a copy with markup stripped from text and caption.
func (c Content) Sanitized() Content {
	c.Text = cleanText(c.Text)
	c.Caption = cleanText(c.Caption)
	return c
}

func cleanText(s string) string {
	if s == "" {
		return s
	}
	// StrictPolicy escapes what it keeps; the transport renders plain text.
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(s)))
}
