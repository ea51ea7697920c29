package moderation

import (
	"context"

	"github.com/TendTo/MemeBot/src/shared/meme"
)

// Gateway is the messaging transport. Failed or timed out calls return an
// error matching meme.ErrGatewayUnavailable.
type Gateway interface {
	// Relay posts content to dest and returns the new card. Controls may be nil.
	Relay(ctx context.Context, content meme.Content, dest int64, controls *Controls) (meme.CardRef, error)
	EditText(ctx context.Context, card meme.CardRef, text string, controls *Controls) error
	EditControls(ctx context.Context, card meme.CardRef, controls Controls) error
	Delete(ctx context.Context, card meme.CardRef) error
	// Notify sends text to the user privately.
	Notify(ctx context.Context, userID int64, text string) error
	// ResolveDisplayName returns the user's public name, ok=false when none.
	ResolveDisplayName(ctx context.Context, userID int64) (string, bool, error)
}
