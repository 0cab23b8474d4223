package model

import (
	"time"

	"gorm.io/datatypes"
)

const (
	RoleUser = "user"
	RoleBot  = "bot"
)

type Message struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	ChatID         uint           `gorm:"not null;index" json:"chat_id"`
	UserID         uint           `gorm:"not null;index" json:"user_id"`
	Role           string         `gorm:"size:16;not null;index" json:"role"`
	Content        string         `gorm:"type:text;not null" json:"content"`
	Output         datatypes.JSON `json:"output,omitempty"`
	SQLText        *string        `gorm:"column:sql_text;type:text" json:"sql_text,omitempty"`
	SQLDialect     *string        `gorm:"column:sql_dialect;size:32" json:"sql_dialect,omitempty"`
	ConversationID *string        `gorm:"size:36;index:idx_messages_conversation_id" json:"conversation_id,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
}

func IsValidRole(role string) bool {
	return role == RoleUser || role == RoleBot
}
