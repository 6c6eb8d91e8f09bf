package model

type ChatRole string

const (
	RoleUser      ChatRole = "user"
	RoleAssistant ChatRole = "assistant"
)

// ChatMessage is an append-only log row; history is both displayed and fed
// back into the AI client as conversation context.
type ChatMessage struct {
	UUIDBase
	UserID  string   `gorm:"index;type:varchar(36);not null" json:"userId"`
	Role    ChatRole `gorm:"size:20;not null" json:"role"`
	Content string   `gorm:"type:text;not null" json:"content"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
