package models

import (
	"time"
)

// 商品目录相关表，由cmd/loaddata从CSV批量导入，本服务只读

// Product 商品表
type Product struct {
	ID          uint    `gorm:"primaryKey;column:id" json:"id"`
	ProductID   string  `gorm:"column:product_id;size:64;uniqueIndex;not null" json:"product_id"`
	Name        string  `gorm:"column:name;size:255" json:"name"`
	Category    string  `gorm:"column:category;size:100" json:"category"`
	Price       float64 `gorm:"column:price;type:numeric(12,2)" json:"price"`
	Description string  `gorm:"type:text" json:"description,omitempty"`
}

func (Product) TableName() string {
	return "products"
}

// DistributionCenter 配送中心表
type DistributionCenter struct {
	ID       uint   `gorm:"primaryKey;column:id" json:"id"`
	CenterID string `gorm:"column:center_id;size:64;uniqueIndex;not null" json:"center_id"`
	Name     string `gorm:"column:name;size:255" json:"name"`
	Location string `gorm:"column:location;size:255" json:"location"`
}

func (DistributionCenter) TableName() string {
	return "distribution_centers"
}

// InventoryItem 库存表
type InventoryItem struct {
	ID          uint   `gorm:"primaryKey;column:id" json:"id"`
	InventoryID string `gorm:"column:inventory_id;size:64;uniqueIndex;not null" json:"inventory_id"`
	ProductID   string `gorm:"column:product_id;size:64;index" json:"product_id"`
	CenterID    string `gorm:"column:center_id;size:64;index" json:"center_id"`
	Stock       int    `gorm:"column:stock" json:"stock"`
}

func (InventoryItem) TableName() string {
	return "inventory_items"
}

// Order 订单表
type Order struct {
	ID        uint      `gorm:"primaryKey;column:id" json:"id"`
	OrderID   string    `gorm:"column:order_id;size:64;uniqueIndex;not null" json:"order_id"`
	UserID    uint      `gorm:"column:user_id;index" json:"user_id"`
	OrderDate time.Time `gorm:"column:order_date;type:date" json:"order_date"`
	Status    string    `gorm:"column:status;size:50" json:"status"`
}

func (Order) TableName() string {
	return "orders"
}

// OrderItem 订单明细表
type OrderItem struct {
	ID          uint    `gorm:"primaryKey;column:id" json:"id"`
	OrderItemID string  `gorm:"column:order_item_id;size:64;uniqueIndex;not null" json:"order_item_id"`
	OrderID     string  `gorm:"column:order_id;size:64;index" json:"order_id"`
	ProductID   string  `gorm:"column:product_id;size:64;index" json:"product_id"`
	Quantity    int     `gorm:"column:quantity" json:"quantity"`
	Price       float64 `gorm:"column:price;type:numeric(12,2)" json:"price"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
