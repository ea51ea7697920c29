package submission

import (
	"context"
	"time"

	"github.com/TendTo/MemeBot/src/shared/meme"
)

// State is where a user stands in the submission conversation.
type State uint8

const (
	StateIdle State = iota
	StateAwaitingContent
	StateAwaitingConfirmation
	// StateClosed is reported by the transition that ends a conversation. It
	// is never stored; the next interaction sees StateIdle.
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingContent:
		return "awaiting_content"
	case StateAwaitingConfirmation:
		return "awaiting_confirmation"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Conversation is the stored per-user state.
type Conversation struct {
	UserID          int64         `json:"user_id"`
	State           State         `json:"state"`
	Content         *meme.Content `json:"content,omitempty"`
	OriginMessageID int64         `json:"origin_message_id,omitempty"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// ConversationStore keeps conversations between events. Load returns an idle
// conversation when nothing is stored for the user.
type ConversationStore interface {
	Load(ctx context.Context, userID int64) (Conversation, error)
	Save(ctx context.Context, c Conversation) error
	Clear(ctx context.Context, userID int64) error
}
