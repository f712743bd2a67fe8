package repository

import (
	"context"
	"errors"
	"time"

	apperrors "github.com/ecomai/backend-go/internal/errors"
	"github.com/ecomai/backend-go/internal/models"
	"gorm.io/gorm"
)

// chatRepository 聊天存储层实现
type chatRepository struct {
	db *gorm.DB
}

// NewChatRepository 创建聊天存储层
func NewChatRepository(db *gorm.DB) ChatRepository {
	return &chatRepository{db: db}
}

// GetDB 获取数据库连接
func (r *chatRepository) GetDB() *gorm.DB {
	return r.db
}

// CreateUser 创建用户
func (r *chatRepository) CreateUser(ctx context.Context, user *models.User) error {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return apperrors.NewStorageError("failed to create user", err)
	}
	return nil
}

// GetUser 根据ID获取用户
func (r *chatRepository) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, "user_id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("user")
		}
		return nil, apperrors.NewStorageError("failed to get user", err)
	}
	return &user, nil
}

// ListUsers 获取全部用户
func (r *chatRepository) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).Order("user_id ASC").Find(&users).Error; err != nil {
		return nil, apperrors.NewStorageError("failed to list users", err)
	}
	return users, nil
}

// CreateConversation 为指定用户创建新对话
// 用户不存在时返回NotFound
func (r *chatRepository) CreateConversation(ctx context.Context, userID uint) (*models.Conversation, error) {
	if _, err := r.GetUser(ctx, userID); err != nil {
		return nil, err
	}

	conversation := &models.Conversation{
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}
	if err := r.db.WithContext(ctx).Create(conversation).Error; err != nil {
		return nil, apperrors.NewStorageError("failed to create conversation", err)
	}
	return conversation, nil
}

// GetConversation 根据ID获取对话
func (r *chatRepository) GetConversation(ctx context.Context, id uint) (*models.Conversation, error) {
	var conversation models.Conversation
	err := r.db.WithContext(ctx).First(&conversation, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("conversation")
		}
		return nil, apperrors.NewStorageError("failed to get conversation", err)
	}
	return &conversation, nil
}

// ListConversations 获取用户的全部对话
func (r *chatRepository) ListConversations(ctx context.Context, userID uint) ([]models.Conversation, error) {
	var conversations []models.Conversation
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&conversations).Error
	if err != nil {
		return nil, apperrors.NewStorageError("failed to list conversations", err)
	}
	return conversations, nil
}

// AppendMessage 向对话追加一条消息，时间戳由服务端赋值
// 对话不存在时返回NotFound
func (r *chatRepository) AppendMessage(ctx context.Context, conversationID uint, role, content string) (*models.Message, error) {
	if _, err := r.GetConversation(ctx, conversationID); err != nil {
		return nil, err
	}

	message := &models.Message{
		ConversationID: conversationID,
		Role:           role,
		Content:        content,
		CreatedAt:      time.Now().UTC(),
	}
	if err := r.db.WithContext(ctx).Create(message).Error; err != nil {
		return nil, apperrors.NewStorageError("failed to append message", err)
	}
	return message, nil
}

// ListMessages 按时间升序返回对话的全部消息，时间相同按ID升序
// 没有任何消息时返回空序列而非错误
func (r *chatRepository) ListMessages(ctx context.Context, conversationID uint) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at ASC, id ASC").
		Find(&messages).Error
	if err != nil {
		return nil, apperrors.NewStorageError("failed to list messages", err)
	}
	return messages, nil
}

// Transaction 在同一个事务中执行fn，fn返回错误时整体回滚
func (r *chatRepository) Transaction(ctx context.Context, fn func(ChatRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&chatRepository{db: tx})
	})
}
