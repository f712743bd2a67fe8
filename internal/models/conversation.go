package models

import (
	"time"
)

// 消息角色，每条消息恰好属于其中之一
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Conversation 对话表
// 每个对话恰好属于一个用户
type Conversation struct {
	ID        uint      `gorm:"primaryKey;column:id" json:"id"`
	UserID    uint      `gorm:"column:user_id;not null;index" json:"user_id"`
	CreatedAt time.Time `gorm:"column:created_at;not null" json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (Conversation) TableName() string {
	return "conversations"
}

// Message 对话消息表
// 消息写入后不可变，排序键为(created_at, id)
type Message struct {
	ID             uint      `gorm:"primaryKey;column:id" json:"id"`
	ConversationID uint      `gorm:"column:conversation_id;not null;index:idx_messages_conversation_created,priority:1" json:"conversation_id"`
	Role           string    `gorm:"column:role;size:20;not null" json:"role"`
	Content        string    `gorm:"type:text;not null" json:"content"`
	CreatedAt      time.Time `gorm:"column:created_at;not null;index:idx_messages_conversation_created,priority:2" json:"created_at"`

	Conversation Conversation `gorm:"foreignKey:ConversationID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Message) TableName() string {
	return "messages"
}
