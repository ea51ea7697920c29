package data

import (
	"context"
	"errors"
	"testing"

	"github.com/TendTo/MemeBot/src/shared/meme"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := Connect("sqlite:file:"+uuid.NewString()+"?mode=memory&cache=shared", nil)
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return NewStore(db)
}

var review = meme.CardRef{CardID: 10, ChatID: -100}

func TestPendingRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, err := s.Pending().Get(ctx, review)
	assert.ErrorIs(t, err, meme.ErrNotFound)

	p := meme.PendingSubmission{
		SubmitterID:     1,
		OriginMessageID: 5,
		Review:          review,
		Content:         meme.Content{Kind: meme.KindPhoto, MediaURL: "https://cdn/a.png", Caption: "cap"},
	}
	require.NoError(t, s.Pending().Upsert(ctx, p))

	got, err := s.Pending().Get(ctx, review)
	require.NoError(t, err)
	assert.Equal(t, p, got)

	bySubmitter, err := s.Pending().FindBySubmitter(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, review, bySubmitter.Review)

	n, err := s.Pending().CountBySubmitter(ctx, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	require.NoError(t, s.Pending().Delete(ctx, review))
	n, err = s.Pending().Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestVoteUpsertReplacesDecision(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	ledger := s.AdminVotes()

	require.NoError(t, ledger.Upsert(ctx, meme.Vote{VoterID: 1, Card: review, Decision: meme.DecisionApprove}))
	require.NoError(t, ledger.Upsert(ctx, meme.Vote{VoterID: 2, Card: review, Decision: meme.DecisionApprove}))

	approve, err := ledger.Count(ctx, review, meme.DecisionApprove)
	require.NoError(t, err)
	assert.EqualValues(t, 2, approve)

	require.NoError(t, ledger.Upsert(ctx, meme.Vote{VoterID: 1, Card: review, Decision: meme.DecisionReject}))

	approve, err = ledger.Count(ctx, review, meme.DecisionApprove)
	require.NoError(t, err)
	reject, err := ledger.Count(ctx, review, meme.DecisionReject)
	require.NoError(t, err)
	assert.EqualValues(t, 1, approve)
	assert.EqualValues(t, 1, reject)

	perVoter, err := ledger.CountByVoter(ctx, 1, review)
	require.NoError(t, err)
	assert.EqualValues(t, 1, perVoter)

	v, err := ledger.Get(ctx, 1, review)
	require.NoError(t, err)
	assert.Equal(t, meme.DecisionReject, v.Decision)
}

func TestVoteLedgersAreSeparate(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.AdminVotes().Upsert(ctx, meme.Vote{VoterID: 1, Card: review, Decision: meme.DecisionApprove}))

	_, err := s.CommunityVotes().Get(ctx, 1, review)
	assert.ErrorIs(t, err, meme.ErrNotFound)

	require.NoError(t, s.AdminVotes().DeleteCard(ctx, review))
	_, err = s.AdminVotes().Get(ctx, 1, review)
	assert.ErrorIs(t, err, meme.ErrNotFound)
}

func TestPublishedUpsertIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	card := meme.CardRef{CardID: 77, ChatID: -200}

	require.NoError(t, s.Published().Upsert(ctx, meme.PublishedPost{Card: card}))
	require.NoError(t, s.Published().Upsert(ctx, meme.PublishedPost{Card: card}))

	n, err := s.Published().Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	got, err := s.Published().Get(ctx, card)
	require.NoError(t, err)
	assert.Equal(t, card, got.Card)
}

func TestUsers(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	users := s.Users()

	require.NoError(t, users.Ban(ctx, 9))
	require.NoError(t, users.Ban(ctx, 9))
	banned, err := users.IsBanned(ctx, 9)
	require.NoError(t, err)
	assert.True(t, banned)

	was, err := users.Unban(ctx, 9)
	require.NoError(t, err)
	assert.True(t, was)
	was, err = users.Unban(ctx, 9)
	require.NoError(t, err)
	assert.False(t, was)

	prior, err := users.SetCredited(ctx, 9, true)
	require.NoError(t, err)
	assert.False(t, prior)
	prior, err = users.SetCredited(ctx, 9, true)
	require.NoError(t, err)
	assert.True(t, prior)
	prior, err = users.SetCredited(ctx, 9, false)
	require.NoError(t, err)
	assert.True(t, prior)
	credited, err := users.IsCredited(ctx, 9)
	require.NoError(t, err)
	assert.False(t, credited)
}

func TestAtomicRollsBack(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	boom := errors.New("boom")

	err := s.Atomic(ctx, func(r meme.Registries) error {
		if err := r.AdminVotes().Upsert(ctx, meme.Vote{VoterID: 1, Card: review, Decision: meme.DecisionApprove}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	n, err := s.AdminVotes().Count(ctx, review, meme.DecisionApprove)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestResetDropsModerationTables(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	require.NoError(t, s.Users().Ban(ctx, 1))
	require.NoError(t, SaveSetting(ctx, s.DB(), "meme_n_votes", "3"))

	require.NoError(t, Reset(s.DB()))

	banned, err := s.Users().IsBanned(ctx, 1)
	require.NoError(t, err)
	assert.False(t, banned)

	require.NoError(t, LoadSettings(s.DB()))
	assert.Equal(t, "3", GetSetting("meme_n_votes"))
}
