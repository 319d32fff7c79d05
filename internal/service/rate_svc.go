package service

import (
	"fmt"
	"math"
	"math/rand"
	"sync"

	"github.com/settlelinecompany-commits/shipping-aggregator/internal/model"
)

// ==================== 物流商报价配置 ====================

// CarrierService 物流商的一档服务
type CarrierService struct {
	Name     string  // 服务名
	Days     string  // 预计时效
	BaseRate float64 // 基础运费（美元）
}

// CarrierConfig 物流商配置
type CarrierConfig struct {
	Name     string
	Services []CarrierService
}

// CarrierTable 五家物流商的固定报价表
var CarrierTable = map[string]CarrierConfig{
	model.CarrierUPS: {
		Name: "UPS",
		Services: []CarrierService{
			{Name: "UPS Ground", Days: "1-5", BaseRate: 8.50},
			{Name: "UPS 2nd Day Air", Days: "2", BaseRate: 16.00},
			{Name: "UPS Next Day Air", Days: "1", BaseRate: 25.00},
			{Name: "UPS Express", Days: "1-2", BaseRate: 35.00},
		},
	},
	model.CarrierUSPS: {
		Name: "USPS",
		Services: []CarrierService{
			{Name: "USPS Ground Advantage", Days: "2-5", BaseRate: 7.50},
			{Name: "USPS Priority Mail", Days: "1-3", BaseRate: 8.85},
			{Name: "USPS Priority Mail Express", Days: "1-2", BaseRate: 26.95},
			{Name: "USPS First Class", Days: "1-3", BaseRate: 4.50},
		},
	},
	model.CarrierFedEx: {
		Name: "FedEx",
		Services: []CarrierService{
			{Name: "FedEx Ground", Days: "1-5", BaseRate: 9.25},
			{Name: "FedEx 2Day", Days: "2", BaseRate: 18.50},
			{Name: "FedEx Standard Overnight", Days: "1", BaseRate: 28.75},
			{Name: "FedEx International", Days: "1-3", BaseRate: 45.00},
		},
	},
	model.CarrierDHL: {
		Name: "DHL",
		Services: []CarrierService{
			{Name: "DHL Express", Days: "1-2", BaseRate: 22.00},
			{Name: "DHL Ground", Days: "2-4", BaseRate: 12.50},
			{Name: "DHL International", Days: "2-5", BaseRate: 35.00},
			{Name: "DHL Same Day", Days: "1", BaseRate: 55.00},
		},
	},
	model.CarrierAramex: {
		Name: "Aramex",
		Services: []CarrierService{
			{Name: "Aramex Standard", Days: "2-4", BaseRate: 15.00},
			{Name: "Aramex Express", Days: "1-2", BaseRate: 25.00},
			{Name: "Aramex International", Days: "3-7", BaseRate: 40.00},
			{Name: "Aramex Same Day", Days: "1", BaseRate: 50.00},
		},
	},
}

// trackingPrefixes 各物流商单号前缀
var trackingPrefixes = map[string]string{
	model.CarrierUPS:    "1Z",
	model.CarrierUSPS:   "9400",
	model.CarrierFedEx:  "1234",
	model.CarrierDHL:    "1234567890",
	model.CarrierAramex: "AR",
}

// packageTypes 可选包装类型
var packageTypes = []string{"Express Envelope", "Poly Mailer", "Soft Pack", "Box", "Pouch"}

// ==================== 运费计算 ====================

// CalculateRate 按重量和尺寸计算运费
// 公式：(基础价 + 超1磅加收 2.5/磅 + 体积重超出部分 1.5/磅) × 1.1，保留两位小数
// 体积重 = 长×宽×高 / 139
func CalculateRate(carrier string, serviceIndex int, weight, length, width, height float64) float64 {
	config, ok := CarrierTable[carrier]
	if !ok || serviceIndex < 0 || serviceIndex >= len(config.Services) {
		return 0
	}

	rate := config.Services[serviceIndex].BaseRate

	if weight > 1 {
		rate += (weight - 1) * 2.50
	}

	dimensionalWeight := (length * width * height) / 139
	if dimensionalWeight > weight {
		rate += (dimensionalWeight - weight) * 1.50
	}

	// 距离系数（简化）
	rate *= 1.1

	return math.Round(rate*100) / 100
}

// ==================== RateService 报价生成 ====================

// RateService 模拟报价生成器
// 这是对外部运价服务的替身：每个订单合成 2~4 条候选运单
// 导入与购买面单两条请求路径共用一个实例，rng 必须加锁
type RateService struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRateService 创建报价生成器
func NewRateService(seed int64) *RateService {
	return &RateService{rng: rand.New(rand.NewSource(seed))}
}

// GenerateCandidateShipments 为订单生成 2~4 条候选运单
func (s *RateService) GenerateCandidateShipments(orderID int64, totalWeightLb float64) []model.Shipment {
	s.mu.Lock()
	defer s.mu.Unlock()

	// 随机挑 2~4 家物流商
	numOptions := s.rng.Intn(3) + 2
	carriers := append([]string(nil), model.Carriers...)
	s.rng.Shuffle(len(carriers), func(i, j int) {
		carriers[i], carriers[j] = carriers[j], carriers[i]
	})
	carriers = carriers[:numOptions]

	shipments := make([]model.Shipment, 0, numOptions)
	for _, carrier := range carriers {
		config := CarrierTable[carrier]
		serviceIndex := s.rng.Intn(len(config.Services))

		// 随机包裹尺寸（英寸）
		length := roundTenth(s.rng.Float64()*10 + 8) // 8~18
		width := roundTenth(s.rng.Float64()*8 + 6)   // 6~14
		height := roundTenth(s.rng.Float64()*6 + 2)  // 2~8

		rate := CalculateRate(carrier, serviceIndex, totalWeightLb, length, width, height)

		shipments = append(shipments, model.Shipment{
			OrderID:      orderID,
			Carrier:      carrier,
			ServiceLevel: config.Services[serviceIndex].Name,
			PackageType:  packageTypes[s.rng.Intn(len(packageTypes))],
			WeightLb:     totalWeightLb,
			LengthIn:     length,
			WidthIn:      width,
			HeightIn:     height,
			RateAmount:   rate,
			RateCurrency: "USD",
			Status:       model.ShipmentStatusPending,
		})
	}
	return shipments
}

// GenerateTrackingNumber 按物流商前缀生成模拟运单号
func (s *RateService) GenerateTrackingNumber(carrier string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	prefix, ok := trackingPrefixes[carrier]
	if !ok {
		prefix = "XX"
	}
	digits := make([]byte, 10)
	for i := range digits {
		digits[i] = byte('0' + s.rng.Intn(10))
	}
	return prefix + string(digits)
}

// DeliveryEstimate 服务时效描述
func DeliveryEstimate(carrier, serviceLevel string) string {
	config, ok := CarrierTable[carrier]
	if !ok {
		return "3-5 days"
	}
	for _, svc := range config.Services {
		if svc.Name == serviceLevel {
			return fmt.Sprintf("%s days", svc.Days)
		}
	}
	return "3-5 days"
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
