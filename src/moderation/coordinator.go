// Package moderation runs a submission from review card to publication.
//
// Every vote on a card is processed under that card's lock: the ledger upsert
// and the tally share one transaction, and a quorum-reaching vote resolves the
// post before the lock is released. A second vote racing the first therefore
// finds the review concluded and cannot publish again.
package moderation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/TendTo/MemeBot/src/logging"
	"github.com/TendTo/MemeBot/src/metrics"
	"github.com/TendTo/MemeBot/src/shared/keylock"
	"github.com/TendTo/MemeBot/src/shared/meme"
	"go.uber.org/zap"
)

// Config is the moderation policy and its destinations.
type Config struct {
	// Quorum is the number of same-side moderator votes that settles a post.
	Quorum int64
	// ReviewChannel receives cards for moderators.
	ReviewChannel int64
	// PublicChannel receives approved posts.
	PublicChannel int64
	// GatewayTimeout bounds each gateway call. Zero leaves calls unbounded.
	GatewayTimeout time.Duration
}

type Option func(*Coordinator)

func WithEventSink(sink meme.EventSink) Option {
	return func(c *Coordinator) { c.events = sink }
}

// WithLocks shares a lock table with other components.
func WithLocks(t *keylock.Table) Option {
	return func(c *Coordinator) { c.locks = t }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Coordinator) { c.log = logging.Resolve(l, "moderation") }
}

type Coordinator struct {
	cfg    Config
	store  meme.Store
	gw     Gateway
	locks  *keylock.Table
	events meme.EventSink
	log    *zap.Logger
	now    func() time.Time
}

func New(cfg Config, store meme.Store, gw Gateway, opts ...Option) (*Coordinator, error) {
	if cfg.Quorum < 1 {
		return nil, fmt.Errorf("moderation: quorum must be at least 1, got %d", cfg.Quorum)
	}
	if store == nil || gw == nil {
		return nil, errors.New("moderation: store and gateway are required")
	}
	c := &Coordinator{
		cfg:   cfg,
		store: store,
		gw:    gw,
		log:   logging.Resolve(nil, "moderation"),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.locks == nil {
		c.locks = keylock.New(0)
	}
	return c, nil
}

func (c *Coordinator) Config() Config { return c.cfg }

// CheckEligible fails with meme.ErrBanned or meme.ErrAlreadyPending.
func (c *Coordinator) CheckEligible(ctx context.Context, userID int64) error {
	return checkEligible(ctx, c.store, userID)
}

func checkEligible(ctx context.Context, r meme.Registries, userID int64) error {
	banned, err := r.Users().IsBanned(ctx, userID)
	if err != nil {
		return fmt.Errorf("moderation: check ban: %w", err)
	}
	if banned {
		return meme.ErrBanned
	}
	pending, err := r.Pending().CountBySubmitter(ctx, userID)
	if err != nil {
		return fmt.Errorf("moderation: check pending: %w", err)
	}
	if pending > 0 {
		return meme.ErrAlreadyPending
	}
	return nil
}

// SubmitForReview relays content to the review channel and records it as
// pending. Nothing is recorded when the relay fails.
func (c *Coordinator) SubmitForReview(ctx context.Context, userID, originMessageID int64, content meme.Content) (meme.PendingSubmission, error) {
	unlock := c.locks.Lock(keylock.UserKey("submit", userID))
	defer unlock()

	if err := c.CheckEligible(ctx, userID); err != nil {
		metrics.Submissions.WithLabelValues("refused").Inc()
		return meme.PendingSubmission{}, err
	}

	content = content.Sanitized()
	if err := content.Validate(); err != nil {
		metrics.Submissions.WithLabelValues("refused").Inc()
		return meme.PendingSubmission{}, err
	}

	controls := ReviewControls(0, 0)
	card, err := c.relay(ctx, "relay_review", content, c.cfg.ReviewChannel, &controls)
	if err != nil {
		metrics.Submissions.WithLabelValues("failed").Inc()
		return meme.PendingSubmission{}, err
	}

	pending := meme.PendingSubmission{
		SubmitterID:     userID,
		OriginMessageID: originMessageID,
		Review:          card,
		Content:         content,
	}
	if err := c.store.Pending().Upsert(ctx, pending); err != nil {
		c.deleteQuietly(ctx, card)
		metrics.Submissions.WithLabelValues("failed").Inc()
		return meme.PendingSubmission{}, fmt.Errorf("moderation: record pending: %w", err)
	}

	metrics.Submissions.WithLabelValues("accepted").Inc()
	c.log.Info("submission under review",
		zap.Int64("user", userID),
		zap.Int64("card", card.CardID),
		zap.String("kind", string(content.Kind)))
	c.emit(ctx, meme.Event{Type: meme.EventSubmitted, SubmitterID: userID, Review: card})
	return pending, nil
}

// CastAdminVote records a moderator decision and settles the post when a
// side reaches quorum. A vote on a concluded review is meme.ErrReviewConcluded.
func (c *Coordinator) CastAdminVote(ctx context.Context, voterID int64, card meme.CardRef, d meme.Decision) (VoteResult, error) {
	if !d.Admin() {
		return VoteResult{}, fmt.Errorf("moderation: %s is not a moderator decision", d)
	}

	unlock := c.locks.Lock(keylock.CardKey("review", card.CardID, card.ChatID))
	defer unlock()

	res := VoteResult{Decision: d}
	var pending meme.PendingSubmission
	err := c.store.Atomic(ctx, func(r meme.Registries) error {
		p, err := r.Pending().Get(ctx, card)
		if errors.Is(err, meme.ErrNotFound) {
			return meme.ErrReviewConcluded
		}
		if err != nil {
			return err
		}
		pending = p

		ledger := r.AdminVotes()
		if res.Outcome, err = recordVote(ctx, ledger, voterID, card, d); err != nil {
			return err
		}
		if err := countBoth(ctx, ledger, card, &res); err != nil {
			return err
		}

		approve, reject := res.Tally, res.Other
		if d == meme.DecisionReject {
			approve, reject = reject, approve
		}
		res.Verdict = quorumVerdict(c.cfg.Quorum, approve, reject)
		return nil
	})
	if err != nil {
		metrics.VotesCast.WithLabelValues(d.String(), "refused").Inc()
		if errors.Is(err, meme.ErrRejectedPrecondition) {
			return VoteResult{}, err
		}
		return VoteResult{}, fmt.Errorf("moderation: admin vote: %w", err)
	}
	metrics.VotesCast.WithLabelValues(d.String(), res.Outcome.String()).Inc()

	log := c.log.With(zap.Int64("card", card.CardID), zap.Int64("voter", voterID))
	log.Debug("admin vote",
		zap.Stringer("decision", d),
		zap.Stringer("outcome", res.Outcome),
		zap.Int64("tally", res.Tally))

	switch res.Verdict {
	case VerdictNone:
		if !res.NoOp() {
			c.refreshControls(ctx, card, res)
		}
	case VerdictApproved:
		public, err := c.approve(ctx, pending)
		if err != nil {
			return VoteResult{}, err
		}
		res.Published = public
	case VerdictRejected:
		if err := c.reject(ctx, pending); err != nil {
			return VoteResult{}, err
		}
	}
	return res, nil
}

// CastCommunityVote records an up or down vote on a published post.
func (c *Coordinator) CastCommunityVote(ctx context.Context, voterID int64, card meme.CardRef, d meme.Decision) (VoteResult, error) {
	if d != meme.DecisionUp && d != meme.DecisionDown {
		return VoteResult{}, fmt.Errorf("moderation: %s is not a community decision", d)
	}

	unlock := c.locks.Lock(keylock.CardKey("public", card.CardID, card.ChatID))
	defer unlock()

	res := VoteResult{Decision: d}
	err := c.store.Atomic(ctx, func(r meme.Registries) error {
		if _, err := r.Published().Get(ctx, card); err != nil {
			if errors.Is(err, meme.ErrNotFound) {
				return meme.ErrNotPublished
			}
			return err
		}
		ledger := r.CommunityVotes()
		var err error
		if res.Outcome, err = recordVote(ctx, ledger, voterID, card, d); err != nil {
			return err
		}
		if res.Outcome == OutcomeUnchanged {
			return nil
		}
		return countBoth(ctx, ledger, card, &res)
	})
	if err != nil {
		metrics.VotesCast.WithLabelValues(d.String(), "refused").Inc()
		if errors.Is(err, meme.ErrRejectedPrecondition) {
			return VoteResult{}, err
		}
		return VoteResult{}, fmt.Errorf("moderation: community vote: %w", err)
	}
	metrics.VotesCast.WithLabelValues(d.String(), res.Outcome.String()).Inc()
	if !res.NoOp() {
		c.refreshControls(ctx, card, res)
	}
	return res, nil
}

// countBoth reads both sides of the card into res.
func countBoth(ctx context.Context, ledger meme.VoteLedger, card meme.CardRef, res *VoteResult) error {
	var err error
	if res.Tally, err = ledger.Count(ctx, card, res.Decision); err != nil {
		return err
	}
	res.Other, err = ledger.Count(ctx, card, res.Decision.Opposite())
	return err
}

func recordVote(ctx context.Context, ledger meme.VoteLedger, voterID int64, card meme.CardRef, d meme.Decision) (Outcome, error) {
	existing, err := ledger.Get(ctx, voterID, card)
	found := err == nil
	if err != nil && !errors.Is(err, meme.ErrNotFound) {
		return 0, err
	}
	outcome := ClassifyVote(existing.Decision, found, d)
	if outcome == OutcomeUnchanged {
		return outcome, nil
	}
	if err := ledger.Upsert(ctx, meme.Vote{VoterID: voterID, Card: card, Decision: d}); err != nil {
		return 0, err
	}
	return outcome, nil
}

// Tally counts decision d on card in the ledger d belongs to.
func (c *Coordinator) Tally(ctx context.Context, card meme.CardRef, d meme.Decision) (int64, error) {
	ledger := c.store.CommunityVotes()
	if d.Admin() {
		ledger = c.store.AdminVotes()
	}
	n, err := ledger.Count(ctx, card, d)
	if err != nil {
		return 0, fmt.Errorf("moderation: tally: %w", err)
	}
	return n, nil
}

// Ban bars a user from submitting.
func (c *Coordinator) Ban(ctx context.Context, userID int64) error {
	if err := c.store.Users().Ban(ctx, userID); err != nil {
		return fmt.Errorf("moderation: ban: %w", err)
	}
	c.log.Info("user banned", zap.Int64("user", userID))
	c.emit(ctx, meme.Event{Type: meme.EventBanned, SubmitterID: userID})
	return nil
}

// BanByCard bans the submitter of a pending post and discards the post.
func (c *Coordinator) BanByCard(ctx context.Context, card meme.CardRef) (int64, error) {
	unlock := c.locks.Lock(keylock.CardKey("review", card.CardID, card.ChatID))
	defer unlock()

	var submitter int64
	err := c.store.Atomic(ctx, func(r meme.Registries) error {
		p, err := r.Pending().Get(ctx, card)
		if errors.Is(err, meme.ErrNotFound) {
			return meme.ErrReviewConcluded
		}
		if err != nil {
			return err
		}
		submitter = p.SubmitterID
		if err := r.Users().Ban(ctx, submitter); err != nil {
			return err
		}
		return purge(ctx, r, card)
	})
	if err != nil {
		if errors.Is(err, meme.ErrRejectedPrecondition) {
			return 0, err
		}
		return 0, fmt.Errorf("moderation: ban by card: %w", err)
	}

	c.deleteQuietly(ctx, card)
	metrics.Resolutions.WithLabelValues("banned").Inc()
	c.log.Info("submitter banned from review card", zap.Int64("user", submitter), zap.Int64("card", card.CardID))
	c.emit(ctx, meme.Event{Type: meme.EventBanned, SubmitterID: submitter, Review: card})
	return submitter, nil
}

// Unban lifts a ban and reports whether the user was banned.
func (c *Coordinator) Unban(ctx context.Context, userID int64) (bool, error) {
	was, err := c.store.Users().Unban(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("moderation: unban: %w", err)
	}
	if was {
		c.log.Info("user unbanned", zap.Int64("user", userID))
	}
	return was, nil
}

// SetCredit stores the credit preference and returns the previous one.
func (c *Coordinator) SetCredit(ctx context.Context, userID int64, credited bool) (bool, error) {
	prior, err := c.store.Users().SetCredited(ctx, userID, credited)
	if err != nil {
		return false, fmt.Errorf("moderation: set credit: %w", err)
	}
	return prior, nil
}

// ToggleCredit flips the credit preference and returns the previous one.
func (c *Coordinator) ToggleCredit(ctx context.Context, userID int64) (bool, error) {
	unlock := c.locks.Lock(keylock.UserKey("credit", userID))
	defer unlock()

	current, err := c.store.Users().IsCredited(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("moderation: toggle credit: %w", err)
	}
	return c.SetCredit(ctx, userID, !current)
}

// ReplyToSubmitter forwards a moderator message to the author of a pending post.
// It waits for any resolution in progress on the card.
func (c *Coordinator) ReplyToSubmitter(ctx context.Context, card meme.CardRef, text string) (int64, error) {
	unlock := c.locks.Lock(keylock.CardKey("review", card.CardID, card.ChatID))
	defer unlock()

	p, err := c.store.Pending().Get(ctx, card)
	if errors.Is(err, meme.ErrNotFound) {
		return 0, meme.ErrReviewConcluded
	}
	if err != nil {
		return 0, fmt.Errorf("moderation: reply: %w", err)
	}

	gctx, cancel := c.gatewayContext(ctx)
	defer cancel()
	if err := c.gw.Notify(gctx, p.SubmitterID, adminReplyHeader+text); err != nil {
		return 0, c.gatewayFailure("notify", err)
	}
	return p.SubmitterID, nil
}

// PendingCount reports how many posts await a verdict.
func (c *Coordinator) PendingCount(ctx context.Context) (int64, error) {
	return c.store.Pending().Count(ctx)
}

func (c *Coordinator) emit(ctx context.Context, ev meme.Event) {
	if c.events == nil {
		return
	}
	if ev.At.IsZero() {
		ev.At = c.now()
	}
	if err := c.events.Publish(ctx, ev); err != nil {
		c.log.Warn("event publish failed", zap.String("type", string(ev.Type)), zap.Error(err))
	}
}
