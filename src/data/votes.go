package data

import (
	"context"
	"fmt"

	"github.com/TendTo/MemeBot/src/shared/meme"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// voteLedger is a meme.VoteLedger over one of the vote tables.
type voteLedger struct {
	db    *gorm.DB
	table string
}

func (l voteLedger) Get(ctx context.Context, voterID int64, card meme.CardRef) (meme.Vote, error) {
	var row VoteRow
	err := l.db.WithContext(ctx).Table(l.table).
		Where("card_id = ? AND chat_id = ? AND voter_id = ?", card.CardID, card.ChatID, voterID).
		Take(&row).Error
	if err != nil {
		return meme.Vote{}, notFound(err, "get "+l.table)
	}
	return meme.Vote{
		VoterID:  row.VoterID,
		Card:     meme.CardRef{CardID: row.CardID, ChatID: row.ChatID},
		Decision: meme.Decision(row.Decision),
	}, nil
}

// Upsert inserts the vote or replaces the decision of the existing row.
func (l voteLedger) Upsert(ctx context.Context, v meme.Vote) error {
	row := VoteRow{
		CardID:   v.Card.CardID,
		ChatID:   v.Card.ChatID,
		VoterID:  v.VoterID,
		Decision: uint8(v.Decision),
	}
	err := l.db.WithContext(ctx).Table(l.table).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "card_id"}, {Name: "chat_id"}, {Name: "voter_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"decision", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("data: upsert %s: %w", l.table, err)
	}
	return nil
}

func (l voteLedger) DeleteCard(ctx context.Context, card meme.CardRef) error {
	err := l.db.WithContext(ctx).Table(l.table).
		Where("card_id = ? AND chat_id = ?", card.CardID, card.ChatID).
		Delete(&VoteRow{}).Error
	if err != nil {
		return fmt.Errorf("data: delete %s: %w", l.table, err)
	}
	return nil
}

func (l voteLedger) Count(ctx context.Context, card meme.CardRef, d meme.Decision) (int64, error) {
	var n int64
	err := l.db.WithContext(ctx).Table(l.table).
		Where("card_id = ? AND chat_id = ? AND decision = ?", card.CardID, card.ChatID, uint8(d)).
		Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("data: count %s: %w", l.table, err)
	}
	return n, nil
}

func (l voteLedger) CountByVoter(ctx context.Context, voterID int64, card meme.CardRef) (int64, error) {
	var n int64
	err := l.db.WithContext(ctx).Table(l.table).
		Where("card_id = ? AND chat_id = ? AND voter_id = ?", card.CardID, card.ChatID, voterID).
		Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("data: count %s by voter: %w", l.table, err)
	}
	return n, nil
}
