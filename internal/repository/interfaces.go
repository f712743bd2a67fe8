package repository

import (
	"context"

	"github.com/ecomai/backend-go/internal/models"
	"gorm.io/gorm"
)

// Repository 基础仓库接口
type Repository interface {
	GetDB() *gorm.DB
}

// ChatRepository 聊天存储层接口
// 每个写操作各自作为一个事务提交；Transaction用于将多个操作合并到
// 同一个事务边界（聊天流水线要求对话创建与两次追加原子提交）
type ChatRepository interface {
	Repository

	CreateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, id uint) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)

	CreateConversation(ctx context.Context, userID uint) (*models.Conversation, error)
	GetConversation(ctx context.Context, id uint) (*models.Conversation, error)
	ListConversations(ctx context.Context, userID uint) ([]models.Conversation, error)

	AppendMessage(ctx context.Context, conversationID uint, role, content string) (*models.Message, error)
	ListMessages(ctx context.Context, conversationID uint) ([]models.Message, error)

	Transaction(ctx context.Context, fn func(ChatRepository) error) error
}

// CatalogRepository 商品目录只读仓库接口
type CatalogRepository interface {
	Repository

	ListOrders(ctx context.Context) ([]models.Order, error)
	GetOrder(ctx context.Context, orderID string) (*models.Order, error)
	ListOrdersByUser(ctx context.Context, userID uint) ([]models.Order, error)
	ListOrderItems(ctx context.Context, orderID string) ([]models.OrderItem, error)
}
