// Package submission drives the per-user conversation that turns a /post
// command into a post under review.
package submission

import (
	"context"
	"errors"
	"fmt"

	"github.com/TendTo/MemeBot/src/logging"
	"github.com/TendTo/MemeBot/src/shared/keylock"
	"github.com/TendTo/MemeBot/src/shared/meme"
	"go.uber.org/zap"
)

// Reviewer is the moderation side of the conversation.
type Reviewer interface {
	// CheckEligible fails with a precondition error when the user may not submit.
	CheckEligible(ctx context.Context, userID int64) error
	SubmitForReview(ctx context.Context, userID, originMessageID int64, content meme.Content) (meme.PendingSubmission, error)
}

// Reply is what the transport should tell the user after a transition.
type Reply struct {
	Text  string
	State State
	// AskConfirm asks the transport to attach the yes/no controls.
	AskConfirm bool
}

type Config struct {
	// PublicChannel is how the public channel is shown to users, e.g. a mention.
	PublicChannel string
}

type Machine struct {
	cfg      Config
	store    ConversationStore
	reviewer Reviewer
	locks    *keylock.Table
	log      *zap.Logger
}

// NewMachine builds a state machine. A nil locks table gets a private one.
func NewMachine(cfg Config, store ConversationStore, reviewer Reviewer, locks *keylock.Table, log *zap.Logger) *Machine {
	if locks == nil {
		locks = keylock.New(0)
	}
	return &Machine{
		cfg:      cfg,
		store:    store,
		reviewer: reviewer,
		locks:    locks,
		log:      logging.Resolve(log, "submission"),
	}
}

func (m *Machine) lock(userID int64) func() {
	return m.locks.Lock(keylock.UserKey("conv", userID))
}

// State returns the stored state for the user.
func (m *Machine) State(ctx context.Context, userID int64) (State, error) {
	c, err := m.store.Load(ctx, userID)
	if err != nil {
		return StateIdle, fmt.Errorf("submission: load: %w", err)
	}
	return c.State, nil
}

// StartSubmission opens a conversation. An in-flight conversation is replaced.
func (m *Machine) StartSubmission(ctx context.Context, userID int64) (Reply, error) {
	unlock := m.lock(userID)
	defer unlock()

	if err := m.reviewer.CheckEligible(ctx, userID); err != nil {
		return Reply{Text: preconditionText(err), State: StateIdle}, err
	}

	conv := Conversation{UserID: userID, State: StateAwaitingContent}
	if err := m.store.Save(ctx, conv); err != nil {
		return Reply{}, fmt.Errorf("submission: save: %w", err)
	}
	return Reply{Text: MsgAskContent, State: StateAwaitingContent}, nil
}

// ReceiveContent takes the post. Unsupported content ends the conversation.
func (m *Machine) ReceiveContent(ctx context.Context, userID, originMessageID int64, content meme.Content) (Reply, error) {
	unlock := m.lock(userID)
	defer unlock()

	conv, err := m.store.Load(ctx, userID)
	if err != nil {
		return Reply{}, fmt.Errorf("submission: load: %w", err)
	}
	if conv.State != StateAwaitingContent {
		return Reply{Text: MsgWrongState, State: conv.State}, meme.ErrWrongState
	}

	if err := content.Validate(); err != nil {
		if clearErr := m.store.Clear(ctx, userID); clearErr != nil {
			return Reply{}, fmt.Errorf("submission: clear: %w", clearErr)
		}
		return Reply{Text: MsgUnsupported, State: StateClosed}, err
	}

	conv.State = StateAwaitingConfirmation
	conv.Content = &content
	conv.OriginMessageID = originMessageID
	if err := m.store.Save(ctx, conv); err != nil {
		return Reply{}, fmt.Errorf("submission: save: %w", err)
	}
	return Reply{Text: MsgAskConfirm, State: StateAwaitingConfirmation, AskConfirm: true}, nil
}

// Confirm settles the conversation. The conversation closes whatever the outcome.
// The reviewer is called without the conversation lock held, since it takes
// locks of its own.
func (m *Machine) Confirm(ctx context.Context, userID int64, yes bool) (Reply, error) {
	conv, reply, err := m.takeConfirmation(ctx, userID)
	if err != nil {
		return reply, err
	}

	if !yes {
		return Reply{Text: MsgCancelled, State: StateClosed}, nil
	}

	pending, err := m.reviewer.SubmitForReview(ctx, userID, conv.OriginMessageID, *conv.Content)
	if err != nil {
		m.log.Warn("submit for review failed", zap.Int64("user", userID), zap.Error(err))
		text := MsgSubmitFailed
		if errors.Is(err, meme.ErrRejectedPrecondition) {
			text = preconditionText(err)
		}
		return Reply{Text: text, State: StateClosed}, err
	}

	m.log.Info("post under review",
		zap.Int64("user", userID),
		zap.Int64("card", pending.Review.CardID))
	return Reply{Text: underReview(m.cfg.PublicChannel), State: StateClosed}, nil
}

// takeConfirmation closes a conversation awaiting confirmation and returns it.
func (m *Machine) takeConfirmation(ctx context.Context, userID int64) (Conversation, Reply, error) {
	unlock := m.lock(userID)
	defer unlock()

	conv, err := m.store.Load(ctx, userID)
	if err != nil {
		return conv, Reply{}, fmt.Errorf("submission: load: %w", err)
	}
	if conv.State != StateAwaitingConfirmation || conv.Content == nil {
		return conv, Reply{Text: MsgWrongState, State: conv.State}, meme.ErrWrongState
	}
	if err := m.store.Clear(ctx, userID); err != nil {
		return conv, Reply{}, fmt.Errorf("submission: clear: %w", err)
	}
	return conv, Reply{}, nil
}

// Cancel aborts the conversation. Cancelling while idle is a precondition failure.
func (m *Machine) Cancel(ctx context.Context, userID int64) (Reply, error) {
	unlock := m.lock(userID)
	defer unlock()

	conv, err := m.store.Load(ctx, userID)
	if err != nil {
		return Reply{}, fmt.Errorf("submission: load: %w", err)
	}
	if conv.State == StateIdle {
		return Reply{Text: MsgNothingToCancel, State: StateIdle}, meme.ErrWrongState
	}
	if err := m.store.Clear(ctx, userID); err != nil {
		return Reply{}, fmt.Errorf("submission: clear: %w", err)
	}
	return Reply{Text: MsgCancelled, State: StateClosed}, nil
}

func preconditionText(err error) string {
	switch {
	case errors.Is(err, meme.ErrBanned):
		return MsgBanned
	case errors.Is(err, meme.ErrAlreadyPending):
		return MsgAlreadyPending
	case errors.Is(err, meme.ErrRejectedPrecondition):
		return MsgWrongState
	default:
		return MsgSubmitFailed
	}
}
