package model

import (
	"time"
)

// ==================== 订单状态常量 ====================

// OrderStatus 订单状态
const (
	OrderStatusPending    = "pending"    // 待处理
	OrderStatusProcessing = "processing" // 处理中
	OrderStatusShipped    = "shipped"    // 已发货
	OrderStatusDelivered  = "delivered"  // 已签收
	OrderStatusCancelled  = "cancelled"  // 已取消
)

// OrderStatuses 全部合法状态
var OrderStatuses = []string{
	OrderStatusPending,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

// IsValidOrderStatus 校验订单状态
func IsValidOrderStatus(status string) bool {
	for _, s := range OrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// ==================== Order 订单主表 ====================

// Order 订单
type Order struct {
	ID          int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderNumber string `gorm:"size:64;uniqueIndex;not null" json:"order_number"`

	// 订单日期，归一化为 YYYY-MM-DD
	OrderDate string `gorm:"size:10;not null" json:"order_date"`

	CustomerID int64  `gorm:"index;not null" json:"customer_id"`
	Status     string `gorm:"size:32;index;default:pending" json:"status"`

	// 批次级汇总字段，取自 CSV，不由明细反算
	TotalWeightLb float64 `json:"total_weight_lb"`
	TotalItems    int     `json:"total_items"`
	OrderCurrency string  `gorm:"size:10;default:USD" json:"order_currency"`
	OrderAmount   float64 `json:"order_amount"`

	// 审计
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 关联
	Customer  *Customer   `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Items     []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
	Shipments []Shipment  `gorm:"foreignKey:OrderID" json:"shipments,omitempty"`
}

func (*Order) TableName() string {
	return "orders"
}

// ==================== OrderItem 订单项 ====================

// OrderItem 订单项，CSV 每行对应一条
type OrderItem struct {
	ID      int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID int64 `gorm:"index;not null" json:"order_id"`

	Title    string  `gorm:"size:500;not null" json:"title"`
	SKU      string  `gorm:"size:100;index;column:sku" json:"sku"`
	Quantity int     `gorm:"default:1" json:"quantity"`
	WeightLb float64 `json:"weight_lb"`
	Price    float64 `json:"price"`

	// 审计
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (*OrderItem) TableName() string {
	return "order_items"
}
