package dto

// ==================== 订单请求 ====================

// ListOrdersRequest 订单列表查询参数
type ListOrdersRequest struct {
	Status string `form:"status"`
	Search string `form:"search"`
	Page   int    `form:"page,default=1"`
	Limit  int    `form:"limit,default=25"`
}

// Pagination 分页信息
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int64 `json:"pages"`
}

// CreateOrderRequest 手工建单请求（订单 + 客户 + 明细）
type CreateOrderRequest struct {
	Order    OrderPayload       `json:"order" binding:"required"`
	Customer CustomerPayload    `json:"customer" binding:"required"`
	Items    []OrderItemPayload `json:"items"`
}

// OrderPayload 订单字段
type OrderPayload struct {
	OrderNumber   string  `json:"order_number" binding:"required"`
	OrderDate     string  `json:"order_date" binding:"required"`
	Status        string  `json:"status"`
	TotalWeightLb float64 `json:"total_weight_lb" binding:"required,gt=0"`
	TotalItems    int     `json:"total_items"`
	OrderCurrency string  `json:"order_currency"`
	OrderAmount   float64 `json:"order_amount" binding:"required,gt=0"`
}

// OrderItemPayload 订单项字段
type OrderItemPayload struct {
	Title    string  `json:"title" binding:"required"`
	SKU      string  `json:"sku" binding:"required"`
	Quantity int     `json:"quantity" binding:"required,gte=1"`
	WeightLb float64 `json:"weight_lb" binding:"gte=0"`
	Price    float64 `json:"price" binding:"gte=0"`
}

// UpdateOrderRequest 订单编辑请求（部分字段）
type UpdateOrderRequest struct {
	OrderDate     *string  `json:"order_date"`
	Status        *string  `json:"status"`
	TotalWeightLb *float64 `json:"total_weight_lb"`
	OrderAmount   *float64 `json:"order_amount"`
}

// ==================== 仪表盘 ====================

// DashboardStatsResponse 仪表盘统计
type DashboardStatsResponse struct {
	TotalOrders      int64   `json:"total_orders"`
	TotalAmount      float64 `json:"total_amount"`
	PendingOrders    int64   `json:"pending_orders"`
	ProcessingOrders int64   `json:"processing_orders"`
	ShippedOrders    int64   `json:"shipped_orders"`
	DeliveredOrders  int64   `json:"delivered_orders"`
	CancelledOrders  int64   `json:"cancelled_orders"`
}
