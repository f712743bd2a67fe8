package services

import (
	"context"
	"time"

	"github.com/ecomai/backend-go/internal/database"
	"github.com/ecomai/backend-go/internal/repository"
)

// ConversationService 对话查询服务
type ConversationService struct {
	repo repository.ChatRepository
}

// MessageView 对话历史中一条消息的投影
type MessageView struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// NewConversationService 创建对话查询服务
func NewConversationService() *ConversationService {
	return NewConversationServiceWith(repository.NewChatRepository(database.DB))
}

// NewConversationServiceWith 使用显式依赖创建对话查询服务
func NewConversationServiceWith(repo repository.ChatRepository) *ConversationService {
	return &ConversationService{repo: repo}
}

// ListUserConversations 返回用户的全部对话历史
// 结果为对话ID到有序消息列表的映射；用户不存在时返回NotFound
func (s *ConversationService) ListUserConversations(ctx context.Context, userID uint) (map[uint][]MessageView, error) {
	if _, err := s.repo.GetUser(ctx, userID); err != nil {
		return nil, err
	}

	conversations, err := s.repo.ListConversations(ctx, userID)
	if err != nil {
		return nil, err
	}

	history := make(map[uint][]MessageView, len(conversations))
	for _, conversation := range conversations {
		messages, err := s.repo.ListMessages(ctx, conversation.ID)
		if err != nil {
			return nil, err
		}
		views := make([]MessageView, len(messages))
		for i, msg := range messages {
			views[i] = MessageView{
				Role:      msg.Role,
				Content:   msg.Content,
				Timestamp: msg.CreatedAt,
			}
		}
		history[conversation.ID] = views
	}

	return history, nil
}
