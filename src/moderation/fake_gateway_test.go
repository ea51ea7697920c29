package moderation_test

import (
	"context"
	"errors"
	"sync"

	"github.com/TendTo/MemeBot/src/moderation"
	"github.com/TendTo/MemeBot/src/shared/meme"
)

type relayed struct {
	Card     meme.CardRef
	Content  meme.Content
	Controls *moderation.Controls
}

type edit struct {
	Card     meme.CardRef
	Controls moderation.Controls
}

type notice struct {
	UserID int64
	Text   string
}

// fakeGateway records every call. failRelay makes the next relays to the
// given destination fail.
type fakeGateway struct {
	mu        sync.Mutex
	nextID    int64
	relays    []relayed
	deleted   []meme.CardRef
	notices   []notice
	edits     []edit
	names     map[int64]string
	failRelay map[int64]int
	// beforeRelay, when set, runs before each relay without the mutex held.
	beforeRelay func(dest int64)
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{nextID: 1000, names: map[int64]string{}, failRelay: map[int64]int{}}
}

var errTimeout = errors.New("fake: timed out")

func (g *fakeGateway) Relay(_ context.Context, c meme.Content, dest int64, controls *moderation.Controls) (meme.CardRef, error) {
	if g.beforeRelay != nil {
		g.beforeRelay(dest)
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.failRelay[dest] > 0 {
		g.failRelay[dest]--
		return meme.CardRef{}, errTimeout
	}
	g.nextID++
	card := meme.CardRef{CardID: g.nextID, ChatID: dest}
	g.relays = append(g.relays, relayed{Card: card, Content: c, Controls: controls})
	return card, nil
}

func (g *fakeGateway) EditText(context.Context, meme.CardRef, string, *moderation.Controls) error {
	return nil
}

func (g *fakeGateway) EditControls(_ context.Context, card meme.CardRef, controls moderation.Controls) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.edits = append(g.edits, edit{Card: card, Controls: controls})
	return nil
}

// lastEdit returns the most recent controls drawn on card.
func (g *fakeGateway) lastEdit(card meme.CardRef) (moderation.Controls, int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	var last moderation.Controls
	n := 0
	for _, e := range g.edits {
		if e.Card == card {
			last = e.Controls
			n++
		}
	}
	return last, n
}

func (g *fakeGateway) Delete(_ context.Context, card meme.CardRef) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.deleted = append(g.deleted, card)
	return nil
}

func (g *fakeGateway) Notify(_ context.Context, userID int64, text string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.notices = append(g.notices, notice{UserID: userID, Text: text})
	return nil
}

func (g *fakeGateway) ResolveDisplayName(_ context.Context, userID int64) (string, bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	name, ok := g.names[userID]
	return name, ok, nil
}

func (g *fakeGateway) relaysTo(dest int64) []relayed {
	g.mu.Lock()
	defer g.mu.Unlock()
	var out []relayed
	for _, r := range g.relays {
		if r.Card.ChatID == dest {
			out = append(out, r)
		}
	}
	return out
}

func (g *fakeGateway) noticesFor(userID int64) []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	var out []string
	for _, n := range g.notices {
		if n.UserID == userID {
			out = append(out, n.Text)
		}
	}
	return out
}
