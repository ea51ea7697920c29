package data

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/TendTo/MemeBot/src/shared/meme"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type pendingRepo struct {
	db *gorm.DB
}

func (r pendingRepo) Get(ctx context.Context, review meme.CardRef) (meme.PendingSubmission, error) {
	var row PendingRow
	err := r.db.WithContext(ctx).
		Where("review_card_id = ? AND review_chat_id = ?", review.CardID, review.ChatID).
		Take(&row).Error
	if err != nil {
		return meme.PendingSubmission{}, notFound(err, "get pending")
	}
	return row.toDomain()
}

func (r pendingRepo) FindBySubmitter(ctx context.Context, userID int64) (meme.PendingSubmission, error) {
	var row PendingRow
	err := r.db.WithContext(ctx).
		Where("submitter_id = ?", userID).
		Order("created_at").
		Take(&row).Error
	if err != nil {
		return meme.PendingSubmission{}, notFound(err, "find pending by submitter")
	}
	return row.toDomain()
}

func (r pendingRepo) Upsert(ctx context.Context, p meme.PendingSubmission) error {
	content, err := json.Marshal(p.Content)
	if err != nil {
		return fmt.Errorf("data: encode pending content: %w", err)
	}
	row := PendingRow{
		ReviewCardID:    p.Review.CardID,
		ReviewChatID:    p.Review.ChatID,
		SubmitterID:     p.SubmitterID,
		OriginMessageID: p.OriginMessageID,
		Content:         string(content),
	}
	err = r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "review_card_id"}, {Name: "review_chat_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"submitter_id", "origin_message_id", "content"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("data: upsert pending: %w", err)
	}
	return nil
}

func (r pendingRepo) Delete(ctx context.Context, review meme.CardRef) error {
	err := r.db.WithContext(ctx).
		Where("review_card_id = ? AND review_chat_id = ?", review.CardID, review.ChatID).
		Delete(&PendingRow{}).Error
	if err != nil {
		return fmt.Errorf("data: delete pending: %w", err)
	}
	return nil
}

func (r pendingRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&PendingRow{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("data: count pending: %w", err)
	}
	return n, nil
}

func (r pendingRepo) CountBySubmitter(ctx context.Context, userID int64) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&PendingRow{}).Where("submitter_id = ?", userID).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("data: count pending by submitter: %w", err)
	}
	return n, nil
}

func (row PendingRow) toDomain() (meme.PendingSubmission, error) {
	p := meme.PendingSubmission{
		SubmitterID:     row.SubmitterID,
		OriginMessageID: row.OriginMessageID,
		Review:          meme.CardRef{CardID: row.ReviewCardID, ChatID: row.ReviewChatID},
	}
	if row.Content != "" {
		if err := json.Unmarshal([]byte(row.Content), &p.Content); err != nil {
			return meme.PendingSubmission{}, fmt.Errorf("data: decode pending content: %w", err)
		}
	}
	return p, nil
}
