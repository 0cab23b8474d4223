package model

import (
	"time"

	"gorm.io/datatypes"
)

const (
	DialectMySQL    = "mysql"
	DialectPostgres = "postgres"
)

type FavoriteQuestion struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	UserID         uint           `gorm:"not null;index" json:"user_id"`
	Title          string         `gorm:"size:255;not null" json:"title"`
	QuestionText   string         `gorm:"type:text;not null" json:"question_text"`
	SQLCorrect     string         `gorm:"column:sql_correct;type:text;not null" json:"sql_correct"`
	Dialect        string         `gorm:"size:16;not null;default:mysql" json:"dialect"`
	Tags           datatypes.JSON `json:"tags,omitempty"`
	IsPinned       bool           `gorm:"not null;default:false" json:"is_pinned"`
	UsageCount     int            `gorm:"not null;default:0" json:"usage_count"`
	LastUsedAt     *time.Time     `json:"last_used_at"`
	ConversationID *string        `gorm:"size:36;index:idx_favorite_questions_conversation_id" json:"conversation_id"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

func (FavoriteQuestion) TableName() string { return "favorite_questions" }

func IsValidDialect(dialect string) bool {
	return dialect == DialectMySQL || dialect == DialectPostgres
}
