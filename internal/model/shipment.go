package model

import (
	"time"
)

// ==================== 发货状态常量 ====================

// ShipmentStatus 运单状态
const (
	ShipmentStatusPending   = "pending"    // 待购买（报价）
	ShipmentStatusPurchased = "purchased"  // 已购买面单
	ShipmentStatusInTransit = "in_transit" // 运输中
	ShipmentStatusDelivered = "delivered"  // 已签收
)

// Carrier 物流商代码
const (
	CarrierUPS    = "ups"
	CarrierUSPS   = "usps"
	CarrierFedEx  = "fedex"
	CarrierDHL    = "dhl"
	CarrierAramex = "aramex"
)

// Carriers 全部支持的物流商
var Carriers = []string{
	CarrierUPS,
	CarrierUSPS,
	CarrierFedEx,
	CarrierDHL,
	CarrierAramex,
}

// IsValidCarrier 校验物流商代码
func IsValidCarrier(carrier string) bool {
	for _, c := range Carriers {
		if c == carrier {
			return true
		}
	}
	return false
}

// ==================== Shipment 运单 ====================

// Shipment 运单（候选报价 / 已购面单）
// 导入时由报价生成器批量写入 2~4 条候选，购买后填充面单信息
type Shipment struct {
	ID      int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID int64 `gorm:"index;not null" json:"order_id"`

	// 物流商与服务
	Carrier      string `gorm:"size:32;not null" json:"carrier"`
	ServiceLevel string `gorm:"size:128" json:"service_level"`
	PackageType  string `gorm:"size:64" json:"package_type"`

	// 包裹信息
	WeightLb float64 `json:"weight_lb"`
	LengthIn float64 `json:"length_in"`
	WidthIn  float64 `json:"width_in"`
	HeightIn float64 `json:"height_in"`

	// 报价
	RateAmount   float64 `json:"rate_amount"`
	RateCurrency string  `gorm:"size:10;default:USD" json:"rate_currency"`

	// 状态与面单（购买前为空）
	Status         string  `gorm:"size:32;index;default:pending" json:"status"`
	TrackingNumber *string `gorm:"size:64;index" json:"tracking_number"`
	LabelURL       *string `gorm:"size:500" json:"label_url"`

	// 时间
	ShippedDate   *time.Time `json:"shipped_date"`
	DeliveredDate *time.Time `json:"delivered_date"`

	// 审计
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (*Shipment) TableName() string {
	return "shipments"
}

// CanPurchase 检查是否可以购买面单
// 状态只允许单向推进 pending → purchased
func (s *Shipment) CanPurchase() bool {
	return s.Status == ShipmentStatusPending
}
