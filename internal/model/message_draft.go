package model

import "gorm.io/datatypes"

// MessageDraft is an unsaved message as clients submit it. It is also the
// payload carried on the ingestion queue.
type MessageDraft struct {
	ChatID         uint           `json:"chat_id"`
	Role           string         `json:"role"`
	Content        string         `json:"content"`
	Output         datatypes.JSON `json:"output,omitempty"`
	SQL            *string        `json:"sql,omitempty"`
	Dialect        *string        `json:"dialect,omitempty"`
	ConversationID *string        `json:"conversation_id,omitempty"`
}
