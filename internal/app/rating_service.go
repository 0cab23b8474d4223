package app

import (
	"context"
	"fmt"

	"interno-chat/internal/model"
	"interno-chat/internal/repository"
)

const ratingStatusSuccess = "success"

type RatingService struct {
	messageRepo *repository.MessageRepository
	ratingRepo  *repository.RatingRepository
	minRating   int
	maxRating   int
}

type RatingResult struct {
	MessageID uint   `json:"message_id"`
	Rating    int    `json:"rating"`
	UserID    uint   `json:"user_id"`
	Status    string `json:"status"`
}

func NewRatingService(
	messageRepo *repository.MessageRepository,
	ratingRepo *repository.RatingRepository,
	minRating, maxRating int,
) *RatingService {
	if minRating <= 0 || maxRating < minRating {
		minRating, maxRating = 1, 5
	}
	return &RatingService{
		messageRepo: messageRepo,
		ratingRepo:  ratingRepo,
		minRating:   minRating,
		maxRating:   maxRating,
	}
}

// RateMessage creates or replaces the user's rating of a message.
func (s *RatingService) RateMessage(ctx context.Context, messageID, userID uint, rating int) (*RatingResult, error) {
	if userID == 0 {
		return nil, ErrInvalidInput
	}
	if messageID == 0 {
		return nil, fieldError("message_id", "must be a positive integer")
	}
	if rating < s.minRating || rating > s.maxRating {
		return nil, fieldError("rating", fmt.Sprintf("must be between %d and %d", s.minRating, s.maxRating))
	}

	exists, err := s.messageRepo.Exists(ctx, messageID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrMessageNotFound
	}

	stored, err := s.ratingRepo.Upsert(ctx, messageID, userID, rating)
	if err != nil {
		return nil, err
	}
	return &RatingResult{
		MessageID: stored.MessageID,
		Rating:    stored.Rating,
		UserID:    stored.UserID,
		Status:    ratingStatusSuccess,
	}, nil
}

func (s *RatingService) GetRating(ctx context.Context, messageID, userID uint) (*model.MessageRating, error) {
	if messageID == 0 || userID == 0 {
		return nil, ErrInvalidInput
	}
	rating, err := s.ratingRepo.GetByMessageAndUser(ctx, messageID, userID)
	if err != nil {
		return nil, err
	}
	if rating == nil {
		return nil, ErrRatingNotFound
	}
	return rating, nil
}
