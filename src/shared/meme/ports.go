package meme

import "context"

// PendingRegistry stores posts under review, keyed by their review card.
// Lookups that find nothing return ErrNotFound.
type PendingRegistry interface {
	Get(ctx context.Context, review CardRef) (PendingSubmission, error)
	FindBySubmitter(ctx context.Context, userID int64) (PendingSubmission, error)
	Upsert(ctx context.Context, p PendingSubmission) error
	Delete(ctx context.Context, review CardRef) error
	Count(ctx context.Context) (int64, error)
	CountBySubmitter(ctx context.Context, userID int64) (int64, error)
}

// VoteLedger stores one decision per (voter, card).
type VoteLedger interface {
	Get(ctx context.Context, voterID int64, card CardRef) (Vote, error)
	Upsert(ctx context.Context, v Vote) error
	DeleteCard(ctx context.Context, card CardRef) error
	Count(ctx context.Context, card CardRef, d Decision) (int64, error)
	CountByVoter(ctx context.Context, voterID int64, card CardRef) (int64, error)
}

// PublicationRegistry stores posts that reached the public channel.
type PublicationRegistry interface {
	Get(ctx context.Context, card CardRef) (PublishedPost, error)
	Upsert(ctx context.Context, p PublishedPost) error
	Delete(ctx context.Context, card CardRef) error
	Count(ctx context.Context) (int64, error)
}

// UserRegistry stores ban records and credit preferences.
type UserRegistry interface {
	IsBanned(ctx context.Context, userID int64) (bool, error)
	Ban(ctx context.Context, userID int64) error
	// Unban reports whether the user was banned before the call.
	Unban(ctx context.Context, userID int64) (bool, error)
	IsCredited(ctx context.Context, userID int64) (bool, error)
	// SetCredited reports the preference held before the call.
	SetCredited(ctx context.Context, userID int64, credited bool) (bool, error)
}

// Registries groups every store the moderation flow touches.
type Registries interface {
	Pending() PendingRegistry
	AdminVotes() VoteLedger
	CommunityVotes() VoteLedger
	Published() PublicationRegistry
	Users() UserRegistry
}

// Store is a Registries that can run a group of operations atomically.
type Store interface {
	Registries
	Atomic(ctx context.Context, fn func(Registries) error) error
}
