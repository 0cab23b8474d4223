package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"interno-chat/internal/model"
)

type RatingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) *RatingRepository {
	return &RatingRepository{db: db}
}

// Upsert stores the rating for (message_id, user_id) in a single statement,
// overwriting any previous value, and returns the stored row.
func (r *RatingRepository) Upsert(ctx context.Context, messageID, userID uint, value int) (*model.MessageRating, error) {
	now := time.Now()
	rating := &model.MessageRating{
		MessageID: messageID,
		UserID:    userID,
		Rating:    value,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "message_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"rating", "updated_at"}),
	}).Create(rating).Error
	if err != nil {
		return nil, fmt.Errorf("upsert message rating failed: %w", err)
	}

	// the id reported back on the update path is not reliable across drivers
	stored, err := r.GetByMessageAndUser(ctx, messageID, userID)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, fmt.Errorf("upsert message rating failed: row for message %d missing after write", messageID)
	}
	return stored, nil
}

func (r *RatingRepository) GetByMessageAndUser(ctx context.Context, messageID, userID uint) (*model.MessageRating, error) {
	var rating model.MessageRating
	if err := r.db.WithContext(ctx).
		Where("message_id = ? AND user_id = ?", messageID, userID).
		First(&rating).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get message rating failed: %w", err)
	}
	return &rating, nil
}
