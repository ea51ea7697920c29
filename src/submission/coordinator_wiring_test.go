package submission_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/TendTo/MemeBot/src/data"
	"github.com/TendTo/MemeBot/src/moderation"
	"github.com/TendTo/MemeBot/src/shared/keylock"
	"github.com/TendTo/MemeBot/src/shared/meme"
	"github.com/TendTo/MemeBot/src/submission"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// relayGateway hands out card ids and ignores everything else.
type relayGateway struct {
	next atomic.Int64
}

func (g *relayGateway) Relay(_ context.Context, _ meme.Content, dest int64, _ *moderation.Controls) (meme.CardRef, error) {
	return meme.CardRef{CardID: g.next.Add(1), ChatID: dest}, nil
}

func (g *relayGateway) EditText(context.Context, meme.CardRef, string, *moderation.Controls) error {
	return nil
}

func (g *relayGateway) EditControls(context.Context, meme.CardRef, moderation.Controls) error {
	return nil
}

func (g *relayGateway) Delete(context.Context, meme.CardRef) error { return nil }

func (g *relayGateway) Notify(context.Context, int64, string) error { return nil }

func (g *relayGateway) ResolveDisplayName(context.Context, int64) (string, bool, error) {
	return "", false, nil
}

func newCoordinator(t *testing.T, locks *keylock.Table) (*moderation.Coordinator, *data.Store) {
	t.Helper()
	db, err := data.Connect("sqlite:file:"+uuid.NewString()+"?mode=memory&cache=shared", nil)
	require.NoError(t, err)
	require.NoError(t, data.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	store := data.NewStore(db)
	coord, err := moderation.New(moderation.Config{
		Quorum:         2,
		ReviewChannel:  -100,
		PublicChannel:  -200,
		GatewayTimeout: time.Second,
	}, store, &relayGateway{}, moderation.WithLocks(locks))
	require.NoError(t, err)
	return coord, store
}

// A single stripe makes the conversation key and the coordinator's submit
// key collide for every user.
func TestConfirmWithCoordinatorOnSharedStripe(t *testing.T) {
	locks := keylock.New(1)
	coord, store := newCoordinator(t, locks)
	machine := submission.NewMachine(submission.Config{PublicChannel: "#memes"},
		submission.NewMemoryStore(time.Hour), coord, locks, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		if _, err := machine.StartSubmission(ctx, 81); err != nil {
			done <- err
			return
		}
		if _, err := machine.ReceiveContent(ctx, 81, 7, meme.Content{Kind: meme.KindText, Text: "hello"}); err != nil {
			done <- err
			return
		}
		_, err := machine.Confirm(ctx, 81, true)
		done <- err
	}()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("confirm did not return")
	}

	p, err := store.Pending().FindBySubmitter(context.Background(), 81)
	require.NoError(t, err)
	assert.Equal(t, "hello", p.Content.Text)

	// The stripe is free again for unrelated work.
	unlock := locks.Lock(keylock.CardKey("review", p.Review.CardID, p.Review.ChatID))
	unlock()
}

func TestConfirmWithCoordinatorOnSeparateTables(t *testing.T) {
	coord, store := newCoordinator(t, keylock.New(0))
	machine := submission.NewMachine(submission.Config{}, submission.NewMemoryStore(time.Hour), coord, nil, nil)
	ctx := context.Background()

	for user := int64(1); user <= 300; user++ {
		_, err := machine.StartSubmission(ctx, user)
		require.NoError(t, err)
		_, err = machine.ReceiveContent(ctx, user, user, meme.Content{Kind: meme.KindText, Text: "post"})
		require.NoError(t, err)
		reply, err := machine.Confirm(ctx, user, true)
		require.NoError(t, err)
		assert.Equal(t, submission.StateClosed, reply.State)
	}

	n, err := store.Pending().Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 300, n)
}
