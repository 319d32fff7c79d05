package dto

// ==================== 运单请求 ====================

// ListShipmentsRequest 运单列表查询参数
type ListShipmentsRequest struct {
	OrderID int64  `form:"order_id"`
	Status  string `form:"status"`
}

// CreateShipmentRequest 手工创建运单请求
type CreateShipmentRequest struct {
	OrderID      int64   `json:"order_id" binding:"required"`
	Carrier      string  `json:"carrier" binding:"required"`
	ServiceLevel string  `json:"service_level"`
	PackageType  string  `json:"package_type"`
	WeightLb     float64 `json:"weight_lb" binding:"gte=0"`
	LengthIn     float64 `json:"length_in" binding:"gte=0"`
	WidthIn      float64 `json:"width_in" binding:"gte=0"`
	HeightIn     float64 `json:"height_in" binding:"gte=0"`
	RateAmount   float64 `json:"rate_amount" binding:"gte=0"`
	RateCurrency string  `json:"rate_currency"`
}
