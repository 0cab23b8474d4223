package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"interno-chat/internal/model"
)

type FavoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

func (r *FavoriteRepository) Create(ctx context.Context, favorite *model.FavoriteQuestion) error {
	if err := r.db.WithContext(ctx).Create(favorite).Error; err != nil {
		return fmt.Errorf("create favorite failed: %w", err)
	}
	return nil
}

func (r *FavoriteRepository) ListByUserID(ctx context.Context, userID uint) ([]model.FavoriteQuestion, error) {
	favorites := make([]model.FavoriteQuestion, 0)
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&favorites).Error; err != nil {
		return nil, fmt.Errorf("list favorites failed: %w", err)
	}
	return favorites, nil
}

func (r *FavoriteRepository) GetByIDAndUserID(ctx context.Context, favoriteID, userID uint) (*model.FavoriteQuestion, error) {
	var favorite model.FavoriteQuestion
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", favoriteID, userID).
		First(&favorite).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get favorite failed: %w", err)
	}
	return &favorite, nil
}

func (r *FavoriteRepository) GetByConversationAndUserID(ctx context.Context, conversationID string, userID uint) (*model.FavoriteQuestion, error) {
	var favorite model.FavoriteQuestion
	if err := r.db.WithContext(ctx).
		Where("conversation_id = ? AND user_id = ?", conversationID, userID).
		Order("created_at DESC").
		Order("id DESC").
		First(&favorite).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get favorite by conversation failed: %w", err)
	}
	return &favorite, nil
}

// Update writes only the given columns and reloads the row.
func (r *FavoriteRepository) Update(ctx context.Context, favorite *model.FavoriteQuestion, updates map[string]any) error {
	if len(updates) > 0 {
		if err := r.db.WithContext(ctx).Model(favorite).Updates(updates).Error; err != nil {
			return fmt.Errorf("update favorite failed: %w", err)
		}
	}
	if err := r.db.WithContext(ctx).First(favorite, favorite.ID).Error; err != nil {
		return fmt.Errorf("reload favorite failed: %w", err)
	}
	return nil
}

// MarkUsed bumps usage_count and last_used_at in one statement. It reports
// false when the favorite does not belong to the user.
func (r *FavoriteRepository) MarkUsed(ctx context.Context, favoriteID, userID uint, at time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&model.FavoriteQuestion{}).
		Where("id = ? AND user_id = ?", favoriteID, userID).
		Updates(map[string]any{
			"usage_count":  gorm.Expr("usage_count + ?", 1),
			"last_used_at": at,
		})
	if result.Error != nil {
		return false, fmt.Errorf("mark favorite used failed: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *FavoriteRepository) DeleteByIDAndUserID(ctx context.Context, favoriteID, userID uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", favoriteID, userID).
		Delete(&model.FavoriteQuestion{})
	if result.Error != nil {
		return false, fmt.Errorf("delete favorite failed: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}
