package data

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type userRepo struct {
	db *gorm.DB
}

func (r userRepo) IsBanned(ctx context.Context, userID int64) (bool, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&BannedUser{}).Where("user_id = ?", userID).Count(&n).Error; err != nil {
		return false, fmt.Errorf("data: is banned: %w", err)
	}
	return n > 0, nil
}

func (r userRepo) Ban(ctx context.Context, userID int64) error {
	row := BannedUser{UserID: userID}
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error; err != nil {
		return fmt.Errorf("data: ban: %w", err)
	}
	return nil
}

func (r userRepo) Unban(ctx context.Context, userID int64) (bool, error) {
	res := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&BannedUser{})
	if res.Error != nil {
		return false, fmt.Errorf("data: unban: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r userRepo) IsCredited(ctx context.Context, userID int64) (bool, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&CreditedUser{}).Where("user_id = ?", userID).Count(&n).Error; err != nil {
		return false, fmt.Errorf("data: is credited: %w", err)
	}
	return n > 0, nil
}

func (r userRepo) SetCredited(ctx context.Context, userID int64, credited bool) (bool, error) {
	var prior bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		prior, err = userRepo{db: tx}.IsCredited(ctx, userID)
		if err != nil || prior == credited {
			return err
		}
		if credited {
			return tx.Create(&CreditedUser{UserID: userID}).Error
		}
		return tx.Where("user_id = ?", userID).Delete(&CreditedUser{}).Error
	})
	if err != nil {
		return false, fmt.Errorf("data: set credited: %w", err)
	}
	return prior, nil
}
