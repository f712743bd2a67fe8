package repository

import (
	"context"
	"errors"

	apperrors "github.com/ecomai/backend-go/internal/errors"
	"github.com/ecomai/backend-go/internal/models"
	"gorm.io/gorm"
)

// catalogRepository 商品目录仓库实现
type catalogRepository struct {
	db *gorm.DB
}

// NewCatalogRepository 创建商品目录仓库
func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

// GetDB 获取数据库连接
func (r *catalogRepository) GetDB() *gorm.DB {
	return r.db
}

// ListOrders 获取全部订单
func (r *catalogRepository) ListOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&orders).Error; err != nil {
		return nil, apperrors.NewStorageError("failed to list orders", err)
	}
	return orders, nil
}

// GetOrder 根据外部订单号获取订单
func (r *catalogRepository) GetOrder(ctx context.Context, orderID string) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).First(&order, "order_id = ?", orderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("order")
		}
		return nil, apperrors.NewStorageError("failed to get order", err)
	}
	return &order, nil
}

// ListOrdersByUser 获取用户的全部订单
func (r *catalogRepository) ListOrdersByUser(ctx context.Context, userID uint) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("order_date ASC, id ASC").
		Find(&orders).Error
	if err != nil {
		return nil, apperrors.NewStorageError("failed to list user orders", err)
	}
	return orders, nil
}

// ListOrderItems 获取订单明细
func (r *catalogRepository) ListOrderItems(ctx context.Context, orderID string) ([]models.OrderItem, error) {
	var items []models.OrderItem
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("id ASC").
		Find(&items).Error
	if err != nil {
		return nil, apperrors.NewStorageError("failed to list order items", err)
	}
	return items, nil
}
