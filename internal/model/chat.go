package model

import "time"

type Chat struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ExternalID string    `gorm:"size:36;not null;uniqueIndex" json:"external_id"`
	DBID       string    `gorm:"column:db_id;size:64;not null;default:primo" json:"db_id"`
	UserID     uint      `gorm:"not null;index" json:"user_id"`
	Title      string    `gorm:"size:255" json:"title"`
	CreatedAt  time.Time `json:"created_at"`
}

// ConversationSummary is a chat row plus its derived message count.
type ConversationSummary struct {
	ID           uint      `json:"id"`
	UserID       uint      `json:"user_id"`
	DBID         string    `json:"db_id"`
	Title        string    `json:"title"`
	CreatedAt    time.Time `json:"created_at"`
	MessageCount int64     `json:"message_count"`
}
