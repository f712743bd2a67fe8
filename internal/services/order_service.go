package services

import (
	"context"

	"github.com/ecomai/backend-go/internal/database"
	"github.com/ecomai/backend-go/internal/models"
	"github.com/ecomai/backend-go/internal/repository"
)

// OrderService 订单查询服务，数据由CSV导入，本服务只读
type OrderService struct {
	catalog repository.CatalogRepository
	chat    repository.ChatRepository
}

// OrderDetail 订单及其明细
type OrderDetail struct {
	Order models.Order       `json:"order"`
	Items []models.OrderItem `json:"items"`
}

// NewOrderService 创建订单查询服务
func NewOrderService() *OrderService {
	return NewOrderServiceWith(
		repository.NewCatalogRepository(database.DB),
		repository.NewChatRepository(database.DB),
	)
}

// NewOrderServiceWith 使用显式依赖创建订单查询服务
func NewOrderServiceWith(catalog repository.CatalogRepository, chat repository.ChatRepository) *OrderService {
	return &OrderService{catalog: catalog, chat: chat}
}

// ListOrders 获取全部订单
func (s *OrderService) ListOrders(ctx context.Context) ([]models.Order, error) {
	return s.catalog.ListOrders(ctx)
}

// GetOrder 获取单个订单及其明细
func (s *OrderService) GetOrder(ctx context.Context, orderID string) (*OrderDetail, error) {
	order, err := s.catalog.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	items, err := s.catalog.ListOrderItems(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return &OrderDetail{Order: *order, Items: items}, nil
}

// ListUserOrders 获取用户的全部订单，用户不存在时返回NotFound
func (s *OrderService) ListUserOrders(ctx context.Context, userID uint) ([]models.Order, error) {
	if _, err := s.chat.GetUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.catalog.ListOrdersByUser(ctx, userID)
}
