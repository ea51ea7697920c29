package data

import (
	"context"
	"fmt"

	"github.com/TendTo/MemeBot/src/shared/meme"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type publishedRepo struct {
	db *gorm.DB
}

func (r publishedRepo) Get(ctx context.Context, card meme.CardRef) (meme.PublishedPost, error) {
	var row PublishedRow
	err := r.db.WithContext(ctx).
		Where("card_id = ? AND chat_id = ?", card.CardID, card.ChatID).
		Take(&row).Error
	if err != nil {
		return meme.PublishedPost{}, notFound(err, "get published")
	}
	return meme.PublishedPost{Card: meme.CardRef{CardID: row.CardID, ChatID: row.ChatID}}, nil
}

// Upsert records the post; a post has no mutable fields, so a repeat is a no-op.
func (r publishedRepo) Upsert(ctx context.Context, p meme.PublishedPost) error {
	row := PublishedRow{CardID: p.Card.CardID, ChatID: p.Card.ChatID}
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error; err != nil {
		return fmt.Errorf("data: upsert published: %w", err)
	}
	return nil
}

func (r publishedRepo) Delete(ctx context.Context, card meme.CardRef) error {
	err := r.db.WithContext(ctx).
		Where("card_id = ? AND chat_id = ?", card.CardID, card.ChatID).
		Delete(&PublishedRow{}).Error
	if err != nil {
		return fmt.Errorf("data: delete published: %w", err)
	}
	return nil
}

func (r publishedRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&PublishedRow{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("data: count published: %w", err)
	}
	return n, nil
}
