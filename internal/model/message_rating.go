package model

import "time"

type MessageRating struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	MessageID uint      `gorm:"not null;uniqueIndex:uniq_message_rating_user,priority:1" json:"message_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:uniq_message_rating_user,priority:2;index" json:"user_id"`
	Rating    int       `gorm:"not null" json:"rating"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
