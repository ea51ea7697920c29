package data

import (
	"context"
	"errors"
	"fmt"

	"github.com/TendTo/MemeBot/src/shared/meme"
	"gorm.io/gorm"
)

var _ meme.Store = (*Store)(nil)

// Store implements meme.Store on gorm. Inside Atomic every registry shares the
// transaction handle.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// DB exposes the underlying handle for read-only reporting queries.
func (s *Store) DB() *gorm.DB { return s.db }

func (s *Store) Pending() meme.PendingRegistry { return pendingRepo{db: s.db} }

func (s *Store) AdminVotes() meme.VoteLedger { return voteLedger{db: s.db, table: tableAdminVotes} }

func (s *Store) CommunityVotes() meme.VoteLedger {
	return voteLedger{db: s.db, table: tableCommunityVotes}
}

func (s *Store) Published() meme.PublicationRegistry { return publishedRepo{db: s.db} }

func (s *Store) Users() meme.UserRegistry { return userRepo{db: s.db} }

func (s *Store) Atomic(ctx context.Context, fn func(meme.Registries) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}

func notFound(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("data: %s: %w", what, meme.ErrNotFound)
	}
	return fmt.Errorf("data: %s: %w", what, err)
}
