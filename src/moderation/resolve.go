package moderation

import (
	"context"
	"errors"
	"fmt"

	"github.com/TendTo/MemeBot/src/metrics"
	"github.com/TendTo/MemeBot/src/shared/meme"
	"go.uber.org/zap"
)

// approve publishes the post and retires the review. The registries are purged
// as soon as the public card exists; later gateway failures are only logged.
func (c *Coordinator) approve(ctx context.Context, p meme.PendingSubmission) (meme.CardRef, error) {
	log := c.log.With(zap.Int64("card", p.Review.CardID), zap.Int64("user", p.SubmitterID))

	credit, err := c.announceCredit(ctx, p.SubmitterID)
	if err != nil {
		return meme.CardRef{}, err
	}

	controls := PublicControls(0, 0)
	public, err := c.relay(ctx, "relay_public", p.Content, c.cfg.PublicChannel, &controls)
	if err != nil {
		if !credit.IsZero() {
			c.deleteQuietly(ctx, credit)
		}
		return meme.CardRef{}, err
	}

	err = c.store.Atomic(ctx, func(r meme.Registries) error {
		if err := r.Published().Upsert(ctx, meme.PublishedPost{Card: public}); err != nil {
			return err
		}
		return purge(ctx, r, p.Review)
	})
	if err != nil {
		c.deleteQuietly(ctx, public)
		if !credit.IsZero() {
			c.deleteQuietly(ctx, credit)
		}
		return meme.CardRef{}, fmt.Errorf("moderation: record publication: %w", err)
	}

	c.notifyQuietly(ctx, p.SubmitterID, MsgApproved)
	c.deleteQuietly(ctx, p.Review)

	metrics.Resolutions.WithLabelValues(VerdictApproved.String()).Inc()
	log.Info("post approved", zap.Int64("public_card", public.CardID))
	c.emit(ctx, meme.Event{Type: meme.EventApproved, SubmitterID: p.SubmitterID, Review: p.Review, Public: public})
	return public, nil
}

// reject retires the review without publishing.
func (c *Coordinator) reject(ctx context.Context, p meme.PendingSubmission) error {
	err := c.store.Atomic(ctx, func(r meme.Registries) error {
		return purge(ctx, r, p.Review)
	})
	if err != nil {
		return fmt.Errorf("moderation: purge rejected: %w", err)
	}

	c.deleteQuietly(ctx, p.Review)
	c.notifyQuietly(ctx, p.SubmitterID, MsgRejected)

	metrics.Resolutions.WithLabelValues(VerdictRejected.String()).Inc()
	c.log.Info("post rejected", zap.Int64("card", p.Review.CardID), zap.Int64("user", p.SubmitterID))
	c.emit(ctx, meme.Event{Type: meme.EventRejected, SubmitterID: p.SubmitterID, Review: p.Review})
	return nil
}

// announceCredit posts the credit line when the submitter asked for it and
// has a public name. It returns the zero card when nothing was posted.
func (c *Coordinator) announceCredit(ctx context.Context, userID int64) (meme.CardRef, error) {
	credited, err := c.store.Users().IsCredited(ctx, userID)
	if err != nil {
		return meme.CardRef{}, fmt.Errorf("moderation: check credit: %w", err)
	}
	if !credited {
		return meme.CardRef{}, nil
	}

	gctx, cancel := c.gatewayContext(ctx)
	name, ok, err := c.gw.ResolveDisplayName(gctx, userID)
	cancel()
	if err != nil || !ok {
		if err != nil {
			c.log.Warn("display name lookup failed, publishing without credit", zap.Int64("user", userID), zap.Error(err))
		}
		return meme.CardRef{}, nil
	}

	line := meme.Content{Kind: meme.KindText, Text: fmt.Sprintf(creditFormat, name)}
	return c.relay(ctx, "relay_credit", line, c.cfg.PublicChannel, nil)
}

// purge removes a pending post and its moderator votes.
func purge(ctx context.Context, r meme.Registries, review meme.CardRef) error {
	if err := r.Pending().Delete(ctx, review); err != nil {
		return err
	}
	return r.AdminVotes().DeleteCard(ctx, review)
}

func (c *Coordinator) gatewayContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.cfg.GatewayTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.cfg.GatewayTimeout)
}

func (c *Coordinator) relay(ctx context.Context, op string, content meme.Content, dest int64, controls *Controls) (meme.CardRef, error) {
	gctx, cancel := c.gatewayContext(ctx)
	defer cancel()
	card, err := c.gw.Relay(gctx, content, dest, controls)
	if err != nil {
		return meme.CardRef{}, c.gatewayFailure(op, err)
	}
	return card, nil
}

// refreshControls redraws the counters of card. Callers hold the card lock so
// edits land in vote order.
func (c *Coordinator) refreshControls(ctx context.Context, card meme.CardRef, res VoteResult) {
	gctx, cancel := c.gatewayContext(ctx)
	defer cancel()
	if err := c.gw.EditControls(gctx, card, res.Controls()); err != nil {
		c.log.Warn("refresh controls failed", zap.Int64("card", card.CardID), zap.Error(c.gatewayFailure("edit_controls", err)))
	}
}

func (c *Coordinator) deleteQuietly(ctx context.Context, card meme.CardRef) {
	gctx, cancel := c.gatewayContext(ctx)
	defer cancel()
	if err := c.gw.Delete(gctx, card); err != nil {
		c.log.Warn("delete card failed", zap.Int64("card", card.CardID), zap.Error(c.gatewayFailure("delete", err)))
	}
}

func (c *Coordinator) notifyQuietly(ctx context.Context, userID int64, text string) {
	gctx, cancel := c.gatewayContext(ctx)
	defer cancel()
	if err := c.gw.Notify(gctx, userID, text); err != nil {
		c.log.Warn("notify failed", zap.Int64("user", userID), zap.Error(c.gatewayFailure("notify", err)))
	}
}

// gatewayFailure counts the failure and makes sure it matches ErrGatewayUnavailable.
func (c *Coordinator) gatewayFailure(op string, err error) error {
	metrics.GatewayFailures.WithLabelValues(op).Inc()
	if errors.Is(err, meme.ErrGatewayUnavailable) {
		return fmt.Errorf("moderation: %s: %w", op, err)
	}
	return fmt.Errorf("moderation: %s: %w: %w", op, meme.ErrGatewayUnavailable, err)
}
